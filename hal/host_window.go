//go:build cgo

package hal

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title         string
	Width, Height int
	TPS           int
}

// RunWindow opens a resizable desktop window, feeds it input and draws the app into it.
// It blocks until the window closes or the app returns ErrQuit.
func RunWindow(cfg WindowConfig, newApp NewAppFunc) error {
	if cfg.TPS <= 0 {
		cfg.TPS = DefaultTPS
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 960, 600
	}

	h := newHost(os.Stdout)
	a, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, app: a}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h      *hostHAL
	app    App
	target ebitenTarget
}

func (g *hostGame) Update() error {
	g.h.in.poll()
	g.h.t.step()
	if err := g.app.Update(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.target.dst = screen
	g.app.Draw(&g.target)
}

// Layout keeps one logical pixel per window pixel so the viewport follows resizes.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
