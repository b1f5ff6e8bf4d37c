package hal

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"time"

	"quarkview/quarkgl"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Width and Height size the software render target.
	Width, Height int
	// Snapshot, when set, is the PNG path the last frame is written to.
	Snapshot string

	// Log receives the host log; nil means stdout.
	Log io.Writer
}

// RunHeadless runs the app on a ticker without opening a window, rasterizing every
// frame in software.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp NewAppFunc) error {
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultTPS
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 960, 600
	}
	if cfg.Log == nil {
		cfg.Log = os.Stdout
	}

	h := newHost(cfg.Log)
	a, err := newApp(h)
	if err != nil {
		return err
	}
	target := quarkgl.NewRGBATarget(cfg.Width, cfg.Height)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	runErr := func() error {
		var tick uint64
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				h.t.step()
				if err := a.Update(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
				a.Draw(target)
				tick++
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					return nil
				}
			}
		}
	}()

	if cfg.Snapshot != "" {
		if err := WritePNG(cfg.Snapshot, target); err != nil {
			return errors.Join(runErr, err)
		}
		h.logger.WriteLineString(fmt.Sprintf("headless: wrote %s after %d frames", cfg.Snapshot, h.t.Frames()))
	}
	return runErr
}

// WritePNG encodes the target's current image to path.
func WritePNG(path string, t *quarkgl.RGBATarget) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, t.Img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
