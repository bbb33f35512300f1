package core

import (
	"errors"
	"testing"
)

func TestChannelDirectionOnce(t *testing.T) {
	block := newFakeBlock()
	ch := NewChannel("buttons", ButtonsBaseAddr, 1, 4, block)

	if _, ok := ch.Direction(); ok {
		t.Fatal("Expected fresh channel to be unconfigured")
	}

	if err := ch.SetDirection(0b1111); err != nil {
		t.Fatalf("SetDirection failed: %v", err)
	}
	if block.dir[1] != 0b1111 {
		t.Errorf("Expected block direction 0b1111, got %b", block.dir[1])
	}

	if err := ch.SetDirection(0); !errors.Is(err, ErrAlreadyConfigured) {
		t.Errorf("Expected ErrAlreadyConfigured on second SetDirection, got %v", err)
	}
	if mask, _ := ch.Direction(); mask != 0b1111 {
		t.Errorf("Direction changed by rejected call: %b", mask)
	}
}

func TestChannelAccessBeforeDirection(t *testing.T) {
	ch := NewChannel("leds", LEDsBaseAddr, 1, 4, newFakeBlock())

	if _, err := ch.Read(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured from Read, got %v", err)
	}
	if err := ch.Write(1); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured from Write, got %v", err)
	}
}

func TestChannelWidth(t *testing.T) {
	block := newFakeBlock()
	ch := NewChannel("switches", SwitchesBaseAddr, 2, 2, block)

	if err := ch.SetDirection(0b111); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("Expected mask wider than channel to be rejected, got %v", err)
	}
	if err := ch.SetDirection(0); err != nil {
		t.Fatalf("SetDirection failed: %v", err)
	}

	// Lines above the channel width are masked off on read
	block.data[2] = 0xff
	v, err := ch.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v != 0b11 {
		t.Errorf("Expected 0b11, got %b", v)
	}

	if err := ch.Write(0b100); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("Expected value wider than channel to be rejected, got %v", err)
	}
	if err := ch.Write(0b10); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if block.data[2] != 0b10 {
		t.Errorf("Expected channel 2 data 0b10, got %b", block.data[2])
	}
}

func TestChannelWidthClamp(t *testing.T) {
	if ch := NewChannel("x", 0, 1, 0, newFakeBlock()); ch.Width != 1 {
		t.Errorf("Expected width 0 clamped to 1, got %d", ch.Width)
	}
	ch := NewChannel("x", 0, 1, 64, newFakeBlock())
	if ch.Width != 32 {
		t.Errorf("Expected width 64 clamped to 32, got %d", ch.Width)
	}
	if ch.lineMask() != 0xffffffff {
		t.Errorf("Expected full mask, got %x", ch.lineMask())
	}
}
