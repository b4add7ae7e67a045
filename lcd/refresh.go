// Package lcd paints the bus on a 16x2 character display.
//
// Row 0 carries the whole word in hex with a marker in front of the lane
// shown in binary; row 1 carries that lane's eight bits. With 0xDEADBEEF on
// the bus and selector 2:
//
//	   DE>AD BE EF
//	    10101101
//
// The marker is never erased on its own. An older marker stays on row 0 until
// the next hex repaint writes over it.
package lcd

import (
	"busmon/bus"
	"busmon/hal"
	"busmon/selector"
)

const hexDigits = "0123456789ABCDEF"

// Layout places the two views on the display.
type Layout struct {
	HexColumn uint8
	HexRow    uint8

	// The marker for selector s sits at MarkerBase - s*MarkerStride.
	MarkerBase   uint8
	MarkerStride uint8
	MarkerRow    uint8
	Marker       byte

	BinaryColumn uint8
	BinaryRow    uint8
}

// DefaultLayout is the 16x2 arrangement shown in the package comment.
var DefaultLayout = Layout{
	HexColumn:    2,
	HexRow:       0,
	MarkerBase:   11,
	MarkerStride: 3,
	MarkerRow:    0,
	Marker:       '>',
	BinaryColumn: 4,
	BinaryRow:    1,
}

// MarkerColumn returns the column of the marker for sel.
func (l Layout) MarkerColumn(sel selector.Index) uint8 {
	return l.MarkerBase - uint8(sel)*l.MarkerStride
}

// Refresher paints bus values onto a display.
type Refresher struct {
	disp   hal.CharDisplay
	layout Layout
}

func NewRefresher(disp hal.CharDisplay, layout Layout) *Refresher {
	return &Refresher{disp: disp, layout: layout}
}

// Layout returns the layout in use.
func (r *Refresher) Layout() Layout { return r.layout }

// Refresh repaints the hex row when dirty, recording v in prev, and always
// repaints the marker and binary row.
func (r *Refresher) Refresh(v bus.Value, prev *bus.Value, sel selector.Index, dirty bool) {
	if dirty {
		r.RenderHex(v)
		*prev = v
	}
	r.RenderBinary(v, sel)
}

// RenderHex writes every lane as a space and two uppercase hex digits.
func (r *Refresher) RenderHex(v bus.Value) {
	r.disp.MoveCursor(r.layout.HexColumn, r.layout.HexRow)
	for _, b := range v.Lanes() {
		r.disp.PutChar(' ')
		r.disp.PutChar(hexDigits[b>>4])
		r.disp.PutChar(hexDigits[b&0x0F])
	}
}

// RenderBinary writes the marker for sel and the bits of its lane, most
// significant first. The selector counts lanes from the least significant
// end, so selector 0 shows lane Lanes-1.
func (r *Refresher) RenderBinary(v bus.Value, sel selector.Index) {
	r.disp.MoveCursor(r.layout.MarkerColumn(sel), r.layout.MarkerRow)
	r.disp.PutChar(r.layout.Marker)

	b := v.Lane(bus.Lanes - 1 - int(sel))
	r.disp.MoveCursor(r.layout.BinaryColumn, r.layout.BinaryRow)
	for i := 7; i >= 0; i-- {
		if b&(1<<uint(i)) != 0 {
			r.disp.PutChar('1')
		} else {
			r.disp.PutChar('0')
		}
	}
}
