// Package shiftreg reads the bus through a chain of 74HC165 parallel-in,
// serial-out shift registers.
package shiftreg

import (
	"time"

	"busmon/bus"
	"busmon/hal"
)

// PulseWidth is how long SH/LD and CLK are held. It must exceed the
// register's setup and pulse-width minimums.
const PulseWidth = 5 * time.Microsecond

// Lines are the three control lines of the chain.
type Lines struct {
	SerialIn  hal.Line // QH of the last register, read
	Clock     hal.Line // CLK, driven
	ShiftLoad hal.Line // SH/LD, driven, active low
}

// Sampler performs the serial read protocol.
type Sampler struct {
	lines Lines
	clock hal.Clock
	pulse time.Duration
}

func NewSampler(lines Lines, clock hal.Clock) *Sampler {
	return &Sampler{lines: lines, clock: clock, pulse: PulseWidth}
}

// SetPulseWidth overrides PulseWidth. Non-positive values restore the default.
func (s *Sampler) SetPulseWidth(d time.Duration) {
	if d <= 0 {
		d = PulseWidth
	}
	s.pulse = d
}

// PulseWidth reports the pulse width in use.
func (s *Sampler) PulseWidth() time.Duration { return s.pulse }

// Reset puts the control lines in their idle state: SH/LD high so the chain
// shifts rather than loads, CLK low.
func (s *Sampler) Reset() {
	s.lines.ShiftLoad.Set(true)
	s.lines.Clock.Set(false)
}

// Sample latches the parallel inputs and shifts the word out, most
// significant bit first.
func (s *Sampler) Sample() bus.Value {
	s.lines.ShiftLoad.Set(false)
	s.clock.Delay(s.pulse)
	s.lines.ShiftLoad.Set(true)

	var v bus.Value
	for i := 0; i < bus.Width; i++ {
		if s.lines.SerialIn.Get() {
			v |= 1 << uint(bus.Width-1-i)
		}

		s.lines.Clock.Set(true)
		s.clock.Delay(s.pulse)
		s.lines.Clock.Set(false)
	}
	return v
}
