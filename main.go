package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"quarkview/app"
	"quarkview/hal"
	"quarkview/internal/buildinfo"
)

func main() {
	var (
		headless    hal.HeadlessConfig
		configPath  string
		texture     string
		mode        string
		console     bool
		noCube      bool
		showVersion bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 0, "Tick rate in headless mode (default: window.tps).")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&headless.Snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.StringVar(&configPath, "config", "", "TOML configuration file.")
	flag.StringVar(&texture, "texture", "", "Image used as the face pattern.")
	flag.StringVar(&mode, "mode", "", "Render mode: points, wireframe or filled.")
	flag.BoolVar(&console, "console", false, "Read console commands from stdin.")
	flag.BoolVar(&noCube, "no-cube", false, "Do not add the built-in cube.")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [mesh.obj ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.String("quarkview"))
		return
	}

	cfg := app.DefaultConfig()
	if configPath != "" {
		var unknown []string
		var err error
		cfg, unknown, err = app.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		for _, k := range unknown {
			fmt.Fprintf(os.Stderr, "config: unknown key %s\n", k)
		}
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "texture":
			cfg.Scene.Texture = texture
		case "mode":
			cfg.Render.Mode = mode
		case "console":
			cfg.Console = console
		case "no-cube":
			cfg.Scene.NoCube = noCube
		}
	})
	cfg.Scene.Meshes = append(cfg.Scene.Meshes, flag.Args()...)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	newApp := func(h hal.Host) (hal.App, error) {
		v, err := app.New(h, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Console {
			v.StartConsole(os.Stdin)
		}
		return v, nil
	}

	if headless.Enabled {
		if headless.Hz == 0 {
			headless.Hz = cfg.Window.TPS
		}
		headless.Width, headless.Height = cfg.Window.Width, cfg.Window.Height

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, headless, newApp); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(hal.WindowConfig{
		Title:  buildinfo.Title(cfg.Window.Title),
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		TPS:    cfg.Window.TPS,
	}, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
