package hal

import (
	"fmt"
	"sync"
)

// HC165Chain models cascaded 74HC165 parallel-in/serial-out shift registers.
//
// The chain is addressed as one word: bit width-1 is the first bit presented
// on the serial output after a parallel load, bit 0 the last. The serial input
// of the last register is tied low.
//
// SH/LD is active low and loads asynchronously: while it is held low the
// register contents follow the parallel inputs and clock edges are ignored.
// With SH/LD high, every rising clock edge shifts the word one bit towards the
// serial output.
type HC165Chain struct {
	mu sync.Mutex

	width uint
	mask  uint32

	inputs uint32
	shift  uint32

	loading bool
	clock   bool

	loads  uint64
	shifts uint64
}

// NewHC165Chain returns a chain of n eight-bit registers, 1 <= n <= 4.
func NewHC165Chain(registers int) *HC165Chain {
	if registers < 1 {
		registers = 1
	}
	if registers > 4 {
		registers = 4
	}
	width := uint(registers * 8)
	mask := uint32(1<<width - 1)
	if width == 32 {
		mask = 0xFFFFFFFF
	}
	return &HC165Chain{width: width, mask: mask}
}

// Width reports the chain length in bits.
func (c *HC165Chain) Width() int { return int(c.width) }

// SetInputs drives the parallel input lines.
func (c *HC165Chain) SetInputs(v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputs = v & c.mask
	if c.loading {
		c.shift = c.inputs
	}
}

// Inputs reports the level of the parallel input lines.
func (c *HC165Chain) Inputs() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputs
}

// Counters reports how many parallel loads and shifts the chain has seen.
func (c *HC165Chain) Counters() (loads, shifts uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads, c.shifts
}

func (c *HC165Chain) setShiftLoad(level bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !level {
		if !c.loading {
			c.loads++
		}
		c.loading = true
		c.shift = c.inputs
		return
	}
	c.loading = false
}

func (c *HC165Chain) setClock(level bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rising := level && !c.clock
	c.clock = level
	if !rising || c.loading {
		return
	}
	c.shift = (c.shift << 1) & c.mask
	c.shifts++
}

func (c *HC165Chain) serialOut() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shift&(1<<(c.width-1)) != 0
}

// ShiftLoadPin returns the SH/LD control input of the first register.
func (c *HC165Chain) ShiftLoadPin() GPIOPin {
	return &chainPin{name: "SHLD", caps: GPIOCapOutput, set: c.setShiftLoad, level: true}
}

// ClockPin returns the shared CLK input.
func (c *HC165Chain) ClockPin() GPIOPin {
	return &chainPin{name: "CLK", caps: GPIOCapOutput, set: c.setClock}
}

// SerialOutPin returns the Q7 output of the last register.
func (c *HC165Chain) SerialOutPin() GPIOPin {
	return &chainPin{name: "QH", caps: GPIOCapInput | GPIOCapPullUp | GPIOCapPullDown, get: c.serialOut}
}

type chainPin struct {
	mu         sync.Mutex
	name       string
	caps       GPIOCaps
	configured bool
	level      bool

	set func(level bool)
	get func() bool
}

func (p *chainPin) Name() string   { return p.name }
func (p *chainPin) Caps() GPIOCaps { return p.caps }

func (p *chainPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.caps, mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	p.configured = true
	level := p.level
	p.mu.Unlock()

	if p.set != nil {
		p.set(level)
	}
	return nil
}

func (p *chainPin) Read() (bool, error) {
	p.mu.Lock()
	configured, level := p.configured, p.level
	p.mu.Unlock()

	if !configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	if p.get != nil {
		return p.get(), nil
	}
	return level, nil
}

func (p *chainPin) Write(level bool) error {
	if p.set == nil {
		return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
	}
	p.mu.Lock()
	configured := p.configured
	p.level = level
	p.mu.Unlock()

	if !configured {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.set(level)
	return nil
}

func (p *chainPin) Get() bool {
	level, _ := p.Read()
	return level
}

func (p *chainPin) Set(level bool) {
	_ = p.Write(level)
}
