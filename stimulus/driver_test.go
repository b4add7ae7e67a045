//go:build !tinygo

package stimulus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busmon/hal"
)

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { l.WriteLineString(string(b)) }

func newBench(t *testing.T, src string) (*Driver, *hal.HC165Chain, *hal.VirtualPin, *lines) {
	t.Helper()
	s, err := Load("test.star", src, nil)
	require.NoError(t, err)
	chain := hal.NewHC165Chain(4)
	button := hal.NewVirtualPin("BUTTON")
	log := &lines{}
	return NewDriver(s, chain, button, log), chain, button, log
}

func TestDriverAppliesScript(t *testing.T) {
	assert := assert.New(t)

	d, chain, button, _ := newBench(t, "def bus(tick):\n    return tick * 0x01010101\ndef button(tick):\n    return tick == 1\n")

	d.Tick()
	assert.Equal(uint32(0), chain.Inputs())
	assert.False(button.Driven())

	d.Tick()
	assert.Equal(uint32(0x01010101), chain.Inputs())
	assert.True(button.Driven())

	d.Tick()
	assert.Equal(uint32(0x02020202), chain.Inputs())
	assert.False(button.Driven())
	assert.Equal(uint64(3), d.Status().Tick)
}

func TestDriverPinOverridesScript(t *testing.T) {
	assert := assert.New(t)

	d, chain, _, _ := newBench(t, "def bus(tick):\n    return tick\n")

	d.Pin(0xCAFEF00D)
	assert.Equal(uint32(0xCAFEF00D), chain.Inputs(), "pin applies immediately")
	d.Tick()
	d.Tick()
	assert.Equal(uint32(0xCAFEF00D), chain.Inputs())
	assert.Equal(Status{Tick: 2, Pinned: true, Pin: 0xCAFEF00D}, d.Status())

	d.Unpin()
	d.Tick()
	assert.Equal(uint32(2), chain.Inputs())
	assert.False(d.Status().Pinned)
}

func TestDriverClickSpansTwoTicks(t *testing.T) {
	assert := assert.New(t)

	d, _, button, _ := newBench(t, "def bus(tick):\n    return 0\ndef button(tick):\n    return False\n")

	d.Click()
	assert.True(button.Driven())
	d.Tick()
	assert.True(button.Driven(), "held through the first tick")
	d.Tick()
	assert.False(button.Driven())
	assert.True(d.Status().ManualButton)
}

func TestDriverPressReleaseAuto(t *testing.T) {
	assert := assert.New(t)

	d, _, button, _ := newBench(t, "def bus(tick):\n    return 0\ndef button(tick):\n    return True\n")

	d.Press()
	d.Tick()
	assert.True(button.Driven())
	d.Release()
	d.Tick()
	assert.False(button.Driven(), "manual release wins over the script")

	d.Auto()
	assert.False(d.Status().ManualButton)
	d.Tick()
	assert.True(button.Driven())
}

func TestDriverAutoWithoutButtonScript(t *testing.T) {
	d, _, button, _ := newBench(t, "def bus(tick):\n    return 0\n")

	d.Press()
	d.Auto()
	assert.False(t, button.Driven())
}

func TestDriverKeepsInputsOnScriptError(t *testing.T) {
	assert := assert.New(t)

	d, chain, _, log := newBench(t, "def bus(tick):\n    return 0x55 if tick < 2 else 1 // 0\n")

	d.Tick()
	d.Tick()
	d.Tick()
	d.Tick()
	assert.Equal(uint32(0x55), chain.Inputs())
	if assert.Len(*log, 1, "a run of failures is logged once") {
		assert.Contains((*log)[0], "sim: bus(2)")
	}
}

func TestDriverWithoutScript(t *testing.T) {
	chain := hal.NewHC165Chain(4)
	button := hal.NewVirtualPin("BUTTON")
	d := NewDriver(nil, chain, button, nil)

	d.Tick()
	assert.Equal(t, uint32(0), chain.Inputs())
	d.Pin(7)
	d.Tick()
	assert.Equal(t, uint32(7), chain.Inputs())
}
