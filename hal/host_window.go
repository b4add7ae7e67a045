//go:build !tinygo && cgo

package hal

import (
	"errors"

	"busmon/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Scale int

	// OnButton is called when the space bar goes down or up. Nil drives the
	// simulated button line directly.
	OnButton func(pressed bool)
}

// RunWindow opens a desktop window showing the emulated LCD and log console.
// The space bar is the pushbutton. It blocks until the window closes.
func RunWindow(h HAL, newApp func(HAL) (func() error, error), cfg WindowConfig) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return errors.New("window mode requires the host HAL")
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	if cfg.OnButton == nil {
		cfg.OnButton = hh.button.Drive
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: hh, step: step, onButton: cfg.OnButton}
	ebiten.SetWindowTitle("Bus display (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(hh.panel.fb.width*cfg.Scale, hh.panel.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h        *hostHAL
	pix      []byte
	fbImg    *ebiten.Image
	step     func() error
	onButton func(pressed bool)
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.onButton(true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		g.onButton(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.panel.fb
	if g.fbImg == nil {
		g.pix = make([]byte, fb.width*fb.height*4)
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	g.h.panel.present()
	fb.snapshotRGBA(g.pix)

	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.fb.width, g.h.panel.fb.height
}
