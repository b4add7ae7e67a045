//go:build !tinygo

package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// surface is an off-screen RGB565 drawing area with hardware-style vertical
// scrolling. It satisfies drivers.Displayer and the extras tinyterm needs.
//
// Screen row r shows memory row (r+scroll)%h.
type surface struct {
	w, h   int
	pix    []uint16
	scroll int
}

func newSurface(w, h int) *surface {
	return &surface{w: w, h: h, pix: make([]uint16, w*h)}
}

func (s *surface) Size() (x, y int16) { return int16(s.w), int16(s.h) }

func (s *surface) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= s.w || iy < 0 || iy >= s.h {
		return
	}
	s.pix[iy*s.w+ix] = toRGB565(c)
}

func (s *surface) Display() error { return nil }

func (s *surface) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, s.w)
	y0 := clampInt(int(y), 0, s.h)
	x1 := clampInt(int(x)+int(width), 0, s.w)
	y1 := clampInt(int(y)+int(height), 0, s.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	p := toRGB565(c)
	for py := y0; py < y1; py++ {
		row := s.pix[py*s.w : (py+1)*s.w]
		for px := x0; px < x1; px++ {
			row[px] = p
		}
	}
	return nil
}

func (s *surface) SetScroll(line int16) {
	if s.h == 0 {
		return
	}
	n := int(line) % s.h
	if n < 0 {
		n += s.h
	}
	s.scroll = n
}

func (s *surface) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// blit copies the visible surface into fb with its top-left corner at (x0, y0).
func (s *surface) blit(fb *hostFramebuffer, x0, y0 int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	for r := 0; r < s.h; r++ {
		fy := y0 + r
		if fy < 0 || fy >= fb.height {
			continue
		}
		src := s.pix[((r+s.scroll)%s.h)*s.w:]
		off := fy * fb.stride
		for c := 0; c < s.w; c++ {
			fx := x0 + c
			if fx < 0 || fx >= fb.width {
				continue
			}
			p := src[c]
			fb.buf[off+fx*2] = byte(p)
			fb.buf[off+fx*2+1] = byte(p >> 8)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
