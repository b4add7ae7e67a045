//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

// machinePin adapts a machine.Pin. It is also a Line: machine.Pin already
// has infallible Get and Set.
type machinePin struct {
	machine.Pin
	name string
	caps GPIOCaps
}

func newMachinePin(name string, pin machine.Pin, caps GPIOCaps) *machinePin {
	return &machinePin{Pin: pin, name: name, caps: caps}
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return p.caps }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.caps, mode, pull); err != nil {
		return err
	}
	cfg := machine.PinConfig{Mode: machine.PinInput}
	switch {
	case mode == GPIOModeOutput:
		cfg.Mode = machine.PinOutput
	case pull == GPIOPullUp:
		cfg.Mode = machine.PinInputPullup
	case pull == GPIOPullDown:
		cfg.Mode = machine.PinInputPulldown
	}
	p.Pin.Configure(cfg)
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.Pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	if p.caps&GPIOCapOutput == 0 {
		return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
	}
	p.Pin.Set(level)
	return nil
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
