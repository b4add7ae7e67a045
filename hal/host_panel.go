//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// Host window layout, in framebuffer pixels.
const (
	panelWidth  = 240
	panelHeight = 200

	lcdCols    = 16
	lcdRows    = 2
	lcdCellW   = 8
	lcdCellH   = 14
	lcdBaseY   = 10
	lcdBezel   = 8
	lcdOriginY = 8

	consoleOriginY    = 64
	consoleFontHeight = 13
	consoleFontOffset = 10
	consoleLines      = 10
)

var (
	bezelColor   = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	lcdBackColor = color.RGBA{R: 0x1C, G: 0x3C, B: 0xC8, A: 0xFF}
	lcdTextColor = color.RGBA{R: 0xF0, G: 0xF0, B: 0xFF, A: 0xFF}
)

// hostPanel paints the emulated 16x2 LCD and a scrolling log console into the
// host framebuffer.
type hostPanel struct {
	mu sync.Mutex

	fb   *hostFramebuffer
	grid *CharGrid

	lcd      *surface
	lcdX     int
	rendered uint64
	painted  bool

	console *surface
	term    *tinyterm.Terminal
}

func newHostPanel(grid *CharGrid) *hostPanel {
	fb := newHostFramebuffer(panelWidth, panelHeight)
	fb.fill(bezelColor)

	lcdW := lcdCols*lcdCellW + 2*lcdBezel
	lcdH := lcdRows*lcdCellH + 2*lcdBezel

	p := &hostPanel{
		fb:      fb,
		grid:    grid,
		lcd:     newSurface(lcdW, lcdH),
		lcdX:    (panelWidth - lcdW) / 2,
		console: newSurface(panelWidth, consoleLines*consoleFontHeight),
	}
	_ = p.lcd.FillRectangle(0, 0, int16(lcdW), int16(lcdH), lcdBackColor)

	p.term = tinyterm.NewTerminal(p.console)
	p.term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: consoleFontHeight,
		FontOffset: consoleFontOffset,
	})
	return p
}

// log appends one line to the console.
func (p *hostPanel) log(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = p.term.Write([]byte(s))
	_, _ = p.term.Write([]byte{'\r', '\n'})
}

// present repaints whatever changed since the last call into the framebuffer.
func (p *hostPanel) present() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v := p.grid.Version(); !p.painted || v != p.rendered {
		p.paintLCD()
		p.rendered = v
		p.painted = true
	}
	p.lcd.blit(p.fb, p.lcdX, lcdOriginY)
	p.console.blit(p.fb, 0, consoleOriginY)
}

func (p *hostPanel) paintLCD() {
	font := &proggy.TinySZ8pt7b
	for r, line := range p.grid.Rows() {
		y := int16(lcdBezel + r*lcdCellH)
		for c := 0; c < len(line) && c < lcdCols; c++ {
			x := int16(lcdBezel + c*lcdCellW)
			_ = p.lcd.FillRectangle(x, y, lcdCellW, lcdCellH, lcdBackColor)
			if line[c] == ' ' {
				continue
			}
			tinyfont.DrawChar(p.lcd, font, x, y+lcdBaseY, rune(line[c]), lcdTextColor)
		}
	}
}
