// Package selector advances the byte-lane selector from the pushbutton line.
//
// There is no debounce window: one raw read per cycle is trusted, so contact
// bounce can advance the selector more than once per physical press. The
// qualifying transition is the literal one, a high read followed by a low
// read; whether that is a press or a release depends on the pull resistor
// wiring.
package selector

import "busmon/bus"

// Index names the lane shown in binary, in [0, Count).
type Index uint8

// Count is the number of selectable lanes.
const Count = bus.Lanes

// Debouncer tracks the last button level and the current selector.
// The zero value starts at selector 0 with the line recorded low.
type Debouncer struct {
	sel  Index
	last bool
}

// Update records level and advances the selector on a high-to-low edge.
func (d *Debouncer) Update(level bool) (Index, bool) {
	advanced := d.last && !level
	if advanced {
		d.sel = (d.sel + 1) % Count
	}
	d.last = level
	return d.sel, advanced
}

// Selector returns the current selector.
func (d *Debouncer) Selector() Index { return d.sel }

// Level returns the last recorded button level.
func (d *Debouncer) Level() bool { return d.last }
