//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

// hostFramebuffer is the RGB565 image shown by the desktop window.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) fill(c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := toRGB565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// snapshotRGBA converts the framebuffer into dst, which must hold
// width*height*4 bytes.
func (f *hostFramebuffer) snapshotRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	src := f.buf
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		c := fromRGB565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = c.A
	}
}

// at returns the pixel at (x, y).
func (f *hostFramebuffer) at(x, y int) color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	return fromRGB565(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
}

func toRGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func fromRGB565(p uint16) color.RGBA {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return color.RGBA{
		R: uint8(r * 255 / 31),
		G: uint8(g * 255 / 63),
		B: uint8(b * 255 / 31),
		A: 0xFF,
	}
}
