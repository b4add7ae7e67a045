package shiftreg

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busmon/bus"
	"busmon/hal"
)

type recordingClock struct {
	delays []time.Duration
}

func (c *recordingClock) Delay(d time.Duration) { c.delays = append(c.delays, d) }

func newChainSampler(t *testing.T) (*hal.HC165Chain, *Sampler, *recordingClock) {
	t.Helper()

	chain := hal.NewHC165Chain(bus.Lanes)
	qh := chain.SerialOutPin()
	clk := chain.ClockPin()
	shld := chain.ShiftLoadPin()
	require.NoError(t, qh.Configure(hal.GPIOModeInput, hal.GPIOPullNone))
	require.NoError(t, clk.Configure(hal.GPIOModeOutput, hal.GPIOPullNone))
	require.NoError(t, shld.Configure(hal.GPIOModeOutput, hal.GPIOPullNone))

	clock := &recordingClock{}
	s := NewSampler(Lines{
		SerialIn:  qh.(hal.Line),
		Clock:     clk.(hal.Line),
		ShiftLoad: shld.(hal.Line),
	}, clock)
	s.Reset()
	return chain, s, clock
}

func TestSampleRoundTrip(t *testing.T) {
	chain, s, _ := newChainSampler(t)

	values := []uint32{0, 0xFFFFFFFF, 0xDEADBEEF, 0x80000000, 0x00000001, 0x0F0F0F0F}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 64; i++ {
		values = append(values, rng.Uint32())
	}

	for _, want := range values {
		chain.SetInputs(want)
		got := s.Sample()
		assert.Equal(t, bus.Value(want), got, "inputs %#08x", want)
	}
}

func TestSampleLatchesOncePerCall(t *testing.T) {
	chain, s, clock := newChainSampler(t)

	chain.SetInputs(0x12345678)
	s.Sample()

	loads, shifts := chain.Counters()
	assert.Equal(t, uint64(1), loads)
	assert.Equal(t, uint64(bus.Width), shifts)

	// One load pulse plus one clock pulse per bit, all at the pulse width.
	require.Len(t, clock.delays, bus.Width+1)
	for _, d := range clock.delays {
		assert.Equal(t, PulseWidth, d)
	}
}

func TestFirstBitIsMostSignificant(t *testing.T) {
	chain, s, _ := newChainSampler(t)

	chain.SetInputs(0x80000000)
	v := s.Sample()
	assert.True(t, v.Bit(31))
	assert.Equal(t, byte(0x80), v.Lane(0))
}

// scriptedLines replays a fixed serial bit stream, independent of any chain
// model, and records the control line activity.
type scriptedLines struct {
	bits   []bool
	next   int
	events []string
}

type lineFunc struct {
	get func() bool
	set func(bool)
}

func (l lineFunc) Get() bool      { return l.get() }
func (l lineFunc) Set(level bool) { l.set(level) }

func (s *scriptedLines) lines() Lines {
	return Lines{
		SerialIn: lineFunc{get: func() bool {
			b := s.bits[s.next]
			s.next++
			return b
		}},
		Clock: lineFunc{set: func(l bool) {
			if l {
				s.events = append(s.events, "clk+")
			} else {
				s.events = append(s.events, "clk-")
			}
		}},
		ShiftLoad: lineFunc{set: func(l bool) {
			if l {
				s.events = append(s.events, "ld+")
			} else {
				s.events = append(s.events, "ld-")
			}
		}},
	}
}

func TestSampleProtocolOrder(t *testing.T) {
	sl := &scriptedLines{bits: make([]bool, bus.Width)}
	sl.bits[0] = true
	sl.bits[bus.Width-1] = true

	s := NewSampler(sl.lines(), &recordingClock{})
	v := s.Sample()

	assert.Equal(t, bus.Value(0x80000001), v)
	require.Len(t, sl.events, 2+2*bus.Width)
	assert.Equal(t, []string{"ld-", "ld+", "clk+", "clk-"}, sl.events[:4])
	assert.Equal(t, bus.Width, sl.next, "one read per bit")
}

func TestSetPulseWidth(t *testing.T) {
	_, s, clock := newChainSampler(t)

	s.SetPulseWidth(20 * time.Microsecond)
	assert.Equal(t, 20*time.Microsecond, s.PulseWidth())
	s.Sample()
	assert.Equal(t, 20*time.Microsecond, clock.delays[0])

	s.SetPulseWidth(0)
	assert.Equal(t, PulseWidth, s.PulseWidth())
}
