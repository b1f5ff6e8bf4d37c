package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"quarkview/quarkgl"
)

////
//// Config
////
type Config struct {
	// window and tick settings
	// !td:follow
	Window WindowConfig `toml:"window"`

	// drawing settings
	// !td:follow
	Render RenderConfig `toml:"render"`

	// start camera
	// !td:follow
	Camera CameraConfig `toml:"camera"`

	// objects loaded at start
	// !td:follow
	Scene SceneConfig `toml:"scene"`

	// read console commands from stdin
	// !td:unc console = false
	Console bool `toml:"console"`
}

////
//// WindowConfig
////
type WindowConfig struct {
	// !td:unc title = "quarkview"
	Title string `toml:"title"`

	// initial window size in pixels; also the headless target size
	// !td:unc width = 960
	Width int `toml:"width"`
	// !td:unc height = 600
	Height int `toml:"height"`

	// ticks per second of the animation and render loop
	// !td:unc tps = 90
	TPS int `toml:"tps"`

	// use the measured frame time instead of 1/tps as the animation step
	// !td:unc measured_delta = false
	MeasuredDelta bool `toml:"measured_delta"`
}

////
//// RenderConfig
////
type RenderConfig struct {
	// points, wireframe or filled
	// !td:unc mode = "filled"
	Mode string `toml:"mode"`

	// when a filled face with vertices behind the camera is drawn: any or all
	// !td:unc face_policy = "any"
	FacePolicy string `toml:"face_policy"`

	// when a wireframe edge with an endpoint behind the camera is drawn: any or both
	// !td:unc edge_policy = "any"
	EdgePolicy string `toml:"edge_policy"`

	// hide the readout overlay
	// !td:unc hide_hud = false
	HideHUD bool `toml:"hide_hud"`
}

////
//// CameraConfig
////
type CameraConfig struct {
	// start position; unset keeps [0, 0, -2]
	// !td:unc position = [0.0, 0.0, -2.0]
	Position *[3]float64 `toml:"position"`

	// keyboard speed in units per second
	// !td:unc speed = 2.0
	Speed float64 `toml:"speed"`
}

////
//// SceneConfig
////
type SceneConfig struct {
	// OBJ files added at start, in order
	// !td:unc meshes = []
	Meshes []string `toml:"meshes"`

	// image used as the face pattern in filled mode
	// !td:unc texture = ""
	Texture string `toml:"texture"`

	// skip the built-in cube when no mesh is given
	// !td:unc no_cube = false
	NoCube bool `toml:"no_cube"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "quarkview",
			Width:  960,
			Height: 600,
			TPS:    90,
		},
		Render: RenderConfig{
			Mode:       "filled",
			FacePolicy: "any",
			EdgePolicy: "any",
		},
		Camera: CameraConfig{Speed: quarkgl.DefaultMoveSpeed},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys the file sets but Config
// does not know are returned so the caller can warn about them.
func LoadConfig(path string) (Config, []string, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return DefaultConfig(), nil, fmt.Errorf("config %s: %w", path, err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	sort.Strings(unknown)
	return cfg, unknown, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := quarkgl.ParseRenderMode(c.Render.Mode); err != nil {
		return fmt.Errorf("render.mode: %w", err)
	}
	if _, err := parseFacePolicy(c.Render.FacePolicy); err != nil {
		return err
	}
	if _, err := parseEdgePolicy(c.Render.EdgePolicy); err != nil {
		return err
	}
	if c.Window.TPS < 0 {
		return fmt.Errorf("window.tps: negative value %d", c.Window.TPS)
	}
	return nil
}

func parseFacePolicy(s string) (quarkgl.FacePolicy, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return quarkgl.FaceAnyVisible, nil
	case "all":
		return quarkgl.FaceAllVisible, nil
	}
	return 0, fmt.Errorf("render.face_policy: unknown value %q (want any or all)", s)
}

func parseEdgePolicy(s string) (quarkgl.EdgePolicy, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return quarkgl.EdgeAnyVisible, nil
	case "both":
		return quarkgl.EdgeBothVisible, nil
	}
	return 0, fmt.Errorf("render.edge_policy: unknown value %q (want any or both)", s)
}

// tickDelta is the animation step for a fixed tick rate.
func (c Config) tickDelta() float64 {
	tps := c.Window.TPS
	if tps <= 0 {
		tps = 90
	}
	return 1 / float64(tps)
}
