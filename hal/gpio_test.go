package hal

import (
	"testing"
	"time"
)

func TestSignalPinRead(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	pin := newSignalPinWithClock("SIG", 10*time.Second, 2*time.Second, clock)
	if pin == nil {
		t.Fatal("expected pin")
	}

	level, err := pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected high at t=0")
	}

	now = now.Add(3 * time.Second)
	if level, _ = pin.Read(); level {
		t.Fatal("expected low at t=3s")
	}

	now = now.Add(8 * time.Second) // t=11s => phase 1s, high again
	if level, _ = pin.Read(); !level {
		t.Fatal("expected high at t=11s")
	}
}

func TestVirtualPinRequiresConfigure(t *testing.T) {
	p := NewVirtualPin("BTN")
	if _, err := p.Read(); err == nil {
		t.Fatal("expected error reading unconfigured pin")
	}
	if err := p.Configure(GPIOModeOutput, GPIOPullNone); err == nil {
		t.Fatal("expected output mode to be rejected")
	}
	if err := p.Configure(GPIOModeInput, GPIOPullDown); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	p.Drive(true)
	if level, err := p.Read(); err != nil || !level {
		t.Fatalf("Read = %v, %v; want true, nil", level, err)
	}
}

func TestVirtualPinSourceIsOred(t *testing.T) {
	now := time.Unix(0, 0)
	src := newSignalPinWithClock("SIG", 4*time.Second, 1*time.Second, func() time.Time { return now })

	p := NewVirtualPin("BTN")
	if err := p.Configure(GPIOModeInput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	p.Attach(src)

	if level, _ := p.Read(); !level {
		t.Fatal("expected source high at t=0")
	}
	now = now.Add(2 * time.Second)
	if level, _ := p.Read(); level {
		t.Fatal("expected low with source low and nothing driven")
	}
	p.Drive(true)
	if level, _ := p.Read(); !level {
		t.Fatal("expected driven level to win")
	}
	if !p.Driven() {
		t.Fatal("expected Driven to report true")
	}
}

func TestOpenLine(t *testing.T) {
	btn := NewVirtualPin("BTN")
	g := NewGPIOSet([]GPIOPin{btn})

	if _, err := OpenLine(g, 3, GPIOModeInput, GPIOPullNone); err == nil {
		t.Fatal("expected error for missing pin")
	}
	if _, err := OpenLine(nil, 0, GPIOModeInput, GPIOPullNone); err == nil {
		t.Fatal("expected error for nil GPIO")
	}

	line, err := OpenLine(g, 0, GPIOModeInput, GPIOPullUp)
	if err != nil {
		t.Fatalf("OpenLine: %v", err)
	}
	if line.Get() {
		t.Fatal("expected low before drive")
	}
	btn.Drive(true)
	if !line.Get() {
		t.Fatal("expected high after drive")
	}
	// Writes to an input line are dropped silently.
	line.Set(false)
	if !line.Get() {
		t.Fatal("expected Set on input line to be ignored")
	}
}
