package core

import "errors"

// Status is the numeric result code reported on the console status line
type Status int

const (
	StatusSuccess        Status = 0
	StatusFailure        Status = 1
	StatusDeviceNotFound Status = 2
	StatusInvalidParam   Status = 3
	StatusUnsupported    Status = 4
)

var (
	ErrDeviceNotFound    = errors.New("device not found")
	ErrInvalidChannel    = errors.New("invalid gpio channel")
	ErrInvalidParam      = errors.New("invalid parameter")
	ErrUnsupported       = errors.New("operation not supported")
	ErrNotConfigured     = errors.New("gpio channel direction not configured")
	ErrAlreadyConfigured = errors.New("gpio channel direction already configured")
	ErrLineOverflow      = errors.New("command line overflow")
	ErrInvalidLEDValue   = errors.New("invalid led value")
)

// StatusOf maps an error to the status code reported to the operator
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrDeviceNotFound):
		return StatusDeviceNotFound
	case errors.Is(err, ErrInvalidChannel), errors.Is(err, ErrInvalidParam):
		return StatusInvalidParam
	case errors.Is(err, ErrUnsupported):
		return StatusUnsupported
	default:
		return StatusFailure
	}
}

// InitError reports a peripheral that could not be brought up
type InitError struct {
	Peripheral  string
	BaseAddress uint32
	Status      Status
	Err         error
}

func (e *InitError) Error() string {
	msg := "init " + e.Peripheral + " at " + hex32(e.BaseAddress) +
		": status " + itoa(int(e.Status))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InitError) Unwrap() error {
	return e.Err
}

func newInitError(peripheral string, base uint32, err error) *InitError {
	return &InitError{
		Peripheral:  peripheral,
		BaseAddress: base,
		Status:      StatusOf(err),
		Err:         err,
	}
}
