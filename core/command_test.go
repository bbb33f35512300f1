package core

import (
	"testing"
)

func TestDispatcherOrder(t *testing.T) {
	d := NewDispatcher()

	want := []string{"led", "button", "switch", "finish"}
	if len(d.commands) != len(want) {
		t.Fatalf("Expected %d commands, got %d", len(want), len(d.commands))
	}
	for i := range want {
		if d.commands[i].Name != want[i] {
			t.Errorf("Command %d: expected %q, got %q", i, want[i], d.commands[i].Name)
		}
	}
}

func TestDispatcherMatch(t *testing.T) {
	d := NewDispatcher()

	tests := []struct {
		line string
		want string // empty means no match
	}{
		{"led 03\r", "led"},
		{"ledbutton\r", "led"}, // led is checked first
		{"button\r", "button"},
		{"switch\r", "switch"},
		{"finish\r", "finish"},
		{"finis\r", ""},
		{"butto\r", ""},
		{"le\r", ""},
		{"\r", ""},
		{"foo\r", ""},
	}

	for _, tt := range tests {
		cmd := ParseCommand([]byte(tt.line))
		got := ""
		for _, entry := range d.commands {
			if entry.Match(&cmd) {
				got = entry.Name
				break
			}
		}
		if got != tt.want {
			t.Errorf("%q: expected match %q, got %q", tt.line, tt.want, got)
		}
	}
}

func TestDispatchFallback(t *testing.T) {
	tb := newTestBoard(t, "")
	c := NewSerialConsole(tb.periph)

	cmd := ParseCommand([]byte("reboot\r"))
	if err := c.dispatch.Dispatch(c, &cmd); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if string(tb.uart.out) != MsgInvalidCommand {
		t.Errorf("Expected %q, got %q", MsgInvalidCommand, tb.uart.out)
	}
	if c.Done() {
		t.Error("Unknown command ended the console")
	}
}
