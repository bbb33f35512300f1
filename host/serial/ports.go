//go:build !tinygo

package serial

import (
	"fmt"

	bugst "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortInfo describes a serial device present on the host
type PortInfo struct {
	Name    string
	IsUSB   bool
	VID     string
	PID     string
	Serial  string
	Product string
}

// enumeration hooks, replaced in tests
var (
	detailedPorts = enumerator.GetDetailedPortsList
	portNames     = bugst.GetPortsList
)

// ListPorts enumerates the serial devices of the host. USB details are
// filled in where the platform reports them.
func ListPorts() ([]PortInfo, error) {
	details, err := detailedPorts()
	if err == nil && len(details) > 0 {
		ports := make([]PortInfo, 0, len(details))
		for _, d := range details {
			ports = append(ports, PortInfo{
				Name:    d.Name,
				IsUSB:   d.IsUSB,
				VID:     d.VID,
				PID:     d.PID,
				Serial:  d.SerialNumber,
				Product: d.Product,
			})
		}
		return ports, nil
	}

	names, err := portNames()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	ports := make([]PortInfo, 0, len(names))
	for _, n := range names {
		ports = append(ports, PortInfo{Name: n})
	}
	return ports, nil
}

func (p PortInfo) String() string {
	if !p.IsUSB {
		return p.Name
	}
	s := p.Name + " [" + p.VID + ":" + p.PID + "]"
	if p.Product != "" {
		s += " " + p.Product
	}
	if p.Serial != "" {
		s += " serial=" + p.Serial
	}
	return s
}
