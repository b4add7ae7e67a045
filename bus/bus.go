// Package bus holds the value sampled from the monitored 32-bit data bus.
//
// A Value is one word and, equally, four ordered byte lanes. Lane 0 holds
// bits 31..24, the bits shifted in first; lane 3 holds bits 7..0.
package bus

import "fmt"

const (
	// Lanes is the bus width in bytes.
	Lanes = 4
	// Width is the bus width in bits.
	Width = Lanes * 8
)

// Value is one sample of the bus.
type Value uint32

// FromLanes assembles a Value from its lanes, lane 0 first.
func FromLanes(l [Lanes]byte) Value {
	var v Value
	for i := 0; i < Lanes; i++ {
		v |= Value(l[i]) << laneShift(i)
	}
	return v
}

// Word returns the numeric view.
func (v Value) Word() uint32 { return uint32(v) }

// Lane returns lane i. It panics if i is outside [0, Lanes).
func (v Value) Lane(i int) byte {
	if i < 0 || i >= Lanes {
		panic(fmt.Sprintf("bus: lane %d out of range", i))
	}
	return byte(v >> laneShift(i))
}

// Lanes returns the byte view, lane 0 first.
func (v Value) Lanes() [Lanes]byte {
	var l [Lanes]byte
	for i := range l {
		l[i] = byte(v >> laneShift(i))
	}
	return l
}

// Bit reports bit n of the word, 0 being the least significant.
func (v Value) Bit(n int) bool {
	return n >= 0 && n < Width && v&(1<<uint(n)) != 0
}

func (v Value) String() string {
	return fmt.Sprintf("0x%08X", uint32(v))
}

func laneShift(i int) uint {
	return uint(Width - 8 - 8*i)
}
