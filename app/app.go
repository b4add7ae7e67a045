package app

import (
	"fmt"
	"time"

	"busmon/hal"
	"busmon/internal/buildinfo"
	"busmon/lcd"
	"busmon/monitor"
	"busmon/shiftreg"
)

// Config selects how the monitor is wired onto a HAL.
type Config struct {
	Layout lcd.Layout

	// ButtonPull is applied to the button line. The reference wiring uses an
	// external resistor, so the default is none.
	ButtonPull hal.GPIOPull

	// BannerHold is how long the start-up banner stays up. Zero skips it.
	BannerHold time.Duration

	PulseWidth time.Duration
	TraceBus   bool
}

// DefaultConfig matches the reference board.
func DefaultConfig() Config {
	return Config{
		Layout:     lcd.DefaultLayout,
		ButtonPull: hal.GPIOPullNone,
		BannerHold: lcd.BannerHold,
		PulseWidth: shiftreg.PulseWidth,
	}
}

// New configures the board behind h and returns a ready Monitor. Every
// fallible step happens here; once New returns, the cycle cannot fail.
func New(h hal.HAL, cfg Config) (*monitor.Monitor, error) {
	g := h.GPIO()

	serialIn, err := hal.OpenLine(g, hal.PinSerialIn, hal.GPIOModeInput, hal.GPIOPullNone)
	if err != nil {
		return nil, fmt.Errorf("busmon: serial in: %w", err)
	}
	clock, err := hal.OpenLine(g, hal.PinSerialClock, hal.GPIOModeOutput, hal.GPIOPullNone)
	if err != nil {
		return nil, fmt.Errorf("busmon: serial clock: %w", err)
	}
	shiftLoad, err := hal.OpenLine(g, hal.PinShiftLoad, hal.GPIOModeOutput, hal.GPIOPullNone)
	if err != nil {
		return nil, fmt.Errorf("busmon: shift/load: %w", err)
	}
	button, err := hal.OpenLine(g, hal.PinButton, hal.GPIOModeInput, cfg.ButtonPull)
	if err != nil {
		return nil, fmt.Errorf("busmon: button: %w", err)
	}

	sampler := shiftreg.NewSampler(shiftreg.Lines{
		SerialIn:  serialIn,
		Clock:     clock,
		ShiftLoad: shiftLoad,
	}, h.Clock())
	sampler.SetPulseWidth(cfg.PulseWidth)
	sampler.Reset()

	disp := h.Display()
	if disp == nil {
		return nil, fmt.Errorf("busmon: display: %w", hal.ErrNotImplemented)
	}
	if err := disp.Init(hal.DisplayOn); err != nil {
		return nil, fmt.Errorf("busmon: display: %w", err)
	}
	if cfg.BannerHold > 0 {
		lcd.Banner(disp, h.Clock(), cfg.BannerHold, lcd.BannerText, buildinfo.Short())
	}

	log := h.Logger()
	if log != nil {
		log.WriteLineString("busmon: started " + buildinfo.String())
	}

	return monitor.New(sampler, button, lcd.NewRefresher(disp, cfg.Layout), log, monitor.Options{
		TraceBus: cfg.TraceBus,
	}), nil
}

// NewStep is New shaped for the host runners: one call per tick.
func NewStep(h hal.HAL, cfg Config) (func() error, *monitor.Monitor, error) {
	m, err := New(h, cfg)
	if err != nil {
		return nil, nil, err
	}
	return func() error {
		m.Step()
		return nil
	}, m, nil
}

// Run starts the monitor and cycles forever (TinyGo entrypoint). Start-up
// errors and panics are reported and halt the board.
func Run(h hal.HAL, cfg Config) {
	defer haltOnPanic(h)

	m, err := New(h, cfg)
	if err != nil {
		halt(h, err.Error(), false)
	}
	for {
		m.Step()
	}
}
