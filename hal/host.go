//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// HostConfig tunes the simulated bench behind the host HAL.
type HostConfig struct {
	// ButtonPeriod, when non-zero, attaches a periodic press to the button
	// line: high for ButtonHigh of every ButtonPeriod.
	ButtonPeriod time.Duration
	ButtonHigh   time.Duration

	// Out receives log lines. Nil means stdout.
	Out io.Writer
}

// Bench exposes the simulated hardware behind the host HAL.
type Bench interface {
	Chain() *HC165Chain
	Button() *VirtualPin
	LCD() *CharGrid
}

type hostHAL struct {
	logger *hostLogger
	gpio   GPIO
	chain  *HC165Chain
	button *VirtualPin
	grid   *CharGrid
	panel  *hostPanel
	clock  SpinClock
}

// New returns a host HAL wired to a simulated four-register 74HC165 chain,
// a pushbutton and a 16x2 character LCD.
func New() HAL {
	return NewHost(HostConfig{})
}

// NewHost is New with explicit bench settings.
func NewHost(cfg HostConfig) HAL {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	chain := NewHC165Chain(4)
	button := NewVirtualPin("BUTTON")
	if cfg.ButtonPeriod > 0 {
		high := cfg.ButtonHigh
		if high <= 0 {
			high = cfg.ButtonPeriod / 2
		}
		button.Attach(NewSignalPin("AUTOPRESS", cfg.ButtonPeriod, high))
	}

	pins := make([]GPIOPin, boardPinCount)
	pins[PinSerialIn] = chain.SerialOutPin()
	pins[PinSerialClock] = chain.ClockPin()
	pins[PinShiftLoad] = chain.ShiftLoadPin()
	pins[PinButton] = button

	grid := NewCharGrid(lcdCols, lcdRows)
	panel := newHostPanel(grid)

	return &hostHAL{
		logger: &hostLogger{w: out, panel: panel},
		gpio:   NewGPIOSet(pins),
		chain:  chain,
		button: button,
		grid:   grid,
		panel:  panel,
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) GPIO() GPIO           { return h.gpio }
func (h *hostHAL) Display() CharDisplay { return h.grid }
func (h *hostHAL) Clock() Clock         { return h.clock }

func (h *hostHAL) Chain() *HC165Chain  { return h.chain }
func (h *hostHAL) Button() *VirtualPin { return h.button }
func (h *hostHAL) LCD() *CharGrid      { return h.grid }

type hostLogger struct {
	mu    sync.Mutex
	w     io.Writer
	panel *hostPanel
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
	if l.panel != nil {
		l.panel.log(s)
	}
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}
