package hal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIO provides access to the board's general-purpose IO pins.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin before configuration.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// Line is a configured digital line. Once configured, reads and writes
// cannot fail.
type Line interface {
	Get() bool
	Set(level bool)
}

// OpenLine configures pin and returns it as a Line. All configuration errors
// surface here, at start-up.
func OpenLine(g GPIO, id int, mode GPIOMode, pull GPIOPull) (Line, error) {
	if g == nil {
		return nil, fmt.Errorf("gpio: pin %d: %w", id, ErrNotImplemented)
	}
	pin := g.Pin(id)
	if pin == nil {
		return nil, fmt.Errorf("gpio: pin %d: not present", id)
	}
	if err := pin.Configure(mode, pull); err != nil {
		return nil, err
	}
	if l, ok := pin.(Line); ok {
		return l, nil
	}
	return pinLine{pin: pin}, nil
}

type pinLine struct {
	pin GPIOPin
}

func (l pinLine) Get() bool {
	level, _ := l.pin.Read()
	return level
}

func (l pinLine) Set(level bool) {
	_ = l.pin.Write(level)
}

type nullGPIO struct{}

func (nullGPIO) PinCount() int      { return 0 }
func (nullGPIO) Pin(id int) GPIOPin { return nil }

type pinSet struct {
	pins []GPIOPin
}

// NewGPIOSet exposes pins as a GPIO, pin id i being pins[i].
func NewGPIOSet(pins []GPIOPin) GPIO {
	if len(pins) == 0 {
		return nullGPIO{}
	}
	return &pinSet{pins: pins}
}

func (g *pinSet) PinCount() int {
	if g == nil {
		return 0
	}
	return len(g.pins)
}

func (g *pinSet) Pin(id int) GPIOPin {
	if g == nil || id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

func checkConfig(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		if caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", name)
		}
	case GPIOModeOutput:
		if caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", name)
		}
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	return nil
}

// VirtualPin is an input pin whose level is driven from outside the board,
// the way a pushbutton drives a real line.
//
// An optional source pin is OR-ed into the driven level.
type VirtualPin struct {
	mu         sync.Mutex
	name       string
	caps       GPIOCaps
	configured bool
	level      bool
	source     GPIOPin
}

func NewVirtualPin(name string) *VirtualPin {
	return &VirtualPin{
		name: name,
		caps: GPIOCapInput | GPIOCapPullUp | GPIOCapPullDown,
	}
}

func (p *VirtualPin) Name() string   { return p.name }
func (p *VirtualPin) Caps() GPIOCaps { return p.caps }

func (p *VirtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.caps, mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configured = true
	return nil
}

func (p *VirtualPin) Read() (bool, error) {
	p.mu.Lock()
	level, src, configured := p.level, p.source, p.configured
	p.mu.Unlock()

	if !configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	if src != nil && !level {
		return src.Read()
	}
	return level, nil
}

func (p *VirtualPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// Drive sets the externally applied level.
func (p *VirtualPin) Drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// Driven reports the externally applied level, ignoring any source.
func (p *VirtualPin) Driven() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Attach OR-s src into the pin level. A nil src detaches.
func (p *VirtualPin) Attach(src GPIOPin) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = src
}

type signalPin struct {
	mu   sync.Mutex
	name string

	configured bool

	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
}

// NewSignalPin returns an input pin that is high for the first high of every
// period, measured from creation.
func NewSignalPin(name string, period, high time.Duration) GPIOPin {
	return newSignalPinWithClock(name, period, high, time.Now)
}

func newSignalPinWithClock(name string, period, high time.Duration, now func() time.Time) GPIOPin {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = 1 * time.Second
	}
	if high < 0 {
		high = 0
	}
	if high > period {
		high = period
	}
	return &signalPin{
		name:   name,
		t0:     now(),
		now:    now,
		period: period,
		high:   high,
		// Sources attached to a VirtualPin are never configured directly.
		configured: true,
	}
}

func (p *signalPin) Name() string   { return p.name }
func (p *signalPin) Caps() GPIOCaps { return GPIOCapInput }

func (p *signalPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: only input supported", p.name)
	}
	if pull != GPIOPullNone {
		return fmt.Errorf("gpio: pin %s: pull unsupported", p.name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configured = true
	return nil
}

func (p *signalPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured for input", p.name)
	}

	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	phase := elapsed % p.period
	return phase < p.high, nil
}

func (p *signalPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}
