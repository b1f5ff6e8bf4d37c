package app

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"quarkview/hal"
	"quarkview/quarkgl"
)

type fakeInput struct{ ch chan hal.Event }

func (in fakeInput) Events() <-chan hal.Event { return in.ch }

type fakeClock struct{ d time.Duration }

func (c fakeClock) Delta() time.Duration { return c.d }
func (c fakeClock) Frames() uint64       { return 0 }

// syncBuffer is a log sink the test can read while loaders still write to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeHost struct {
	buf   syncBuffer
	log   hal.Logger
	in    fakeInput
	clock fakeClock
}

func newFakeHost() *fakeHost {
	h := &fakeHost{in: fakeInput{ch: make(chan hal.Event, 64)}}
	h.log = hal.NewLogger(&h.buf)
	return h
}

func (h *fakeHost) Logger() hal.Logger { return h.log }
func (h *fakeHost) Input() hal.Input   { return h.in }
func (h *fakeHost) Clock() hal.Clock   { return h.clock }

func newTestViewer(t *testing.T, cfg Config) (*Viewer, *fakeHost) {
	t.Helper()
	h := newFakeHost()
	v, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(v.Close)
	return v, h
}

func mustExec(t *testing.T, v *Viewer, line string) {
	t.Helper()
	if err := v.ExecLine(line); err != nil {
		t.Fatalf("%q: %v", line, err)
	}
}

// waitFor runs ticks until cond holds or a second has passed.
func waitFor(t *testing.T, v *Viewer, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not reached")
		}
		if err := v.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNewAddsDefaultCube(t *testing.T) {
	v, h := newTestViewer(t, DefaultConfig())
	s := v.Scene()
	if s.Len() != 1 {
		t.Fatalf("objects=%d, want 1", s.Len())
	}
	o := s.Active()
	if o.Kind != "cube" || o.Transform.Rotation.X != cubeRotationX {
		t.Fatalf("default object=%+v", o)
	}
	if s.Mode != quarkgl.RenderFilled {
		t.Fatalf("mode=%v", s.Mode)
	}
	if !strings.Contains(h.buf.String(), "viewer: 1 objects") {
		t.Fatalf("log=%q", h.buf.String())
	}
}

func TestNewNoCube(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.NoCube = true
	v, _ := newTestViewer(t, cfg)
	if !v.Scene().Empty() {
		t.Fatalf("scene not empty")
	}
	if err := v.Update(); err != nil {
		t.Fatalf("Update on empty scene: %v", err)
	}
}

func TestNewAppliesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Mode = "wireframe"
	cfg.Render.EdgePolicy = "both"
	cfg.Camera.Position = &[3]float64{1, 2, 3}
	cfg.Camera.Speed = 5
	v, _ := newTestViewer(t, cfg)

	if v.Scene().Mode != quarkgl.RenderWireframe {
		t.Fatalf("mode=%v", v.Scene().Mode)
	}
	if v.renderer.Edges != quarkgl.EdgeBothVisible {
		t.Fatalf("edge policy=%v", v.renderer.Edges)
	}
	if v.Scene().Camera.Position != (mgl64.Vec3{1, 2, 3}) || v.Scene().Camera.BaseSpeed != 5 {
		t.Fatalf("camera=%+v", v.Scene().Camera)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Mode = "solid"
	if _, err := New(newFakeHost(), cfg); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	cfg = DefaultConfig()
	cfg.Scene.Meshes = []string{filepath.Join(t.TempDir(), "missing.obj")}
	if _, err := New(newFakeHost(), cfg); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestUniformScaleFloorCommand(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	before := v.Scene().Active().Transform.Scale

	err := v.ExecLine("uscale -2")
	if !errors.Is(err, quarkgl.ErrScaleFloor) {
		t.Fatalf("expected ErrScaleFloor, got %v", err)
	}
	if v.Scene().Active().Transform.Scale != before {
		t.Fatalf("scale changed: %v", v.Scene().Active().Transform.Scale)
	}

	mustExec(t, v, "uscale 0.1")
	want := 1 + (0.1-1)/3
	if got := v.Scene().Active().Transform.Scale; math.Abs(got[0]-want) > 1e-12 {
		t.Fatalf("scale=%v, want %v", got, want)
	}
}

func TestSetterCommands(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	mustExec(t, v, "pos x 1.5")
	mustExec(t, v, "rot z 90")
	mustExec(t, v, "scale y 2")
	mustExec(t, v, "mode points")

	o := v.Scene().Active()
	if o.Transform.Position[0] != 1.5 {
		t.Fatalf("position=%v", o.Transform.Position)
	}
	if math.Abs(o.Transform.Rotation.Z-math.Pi/2) > 1e-12 {
		t.Fatalf("rotation=%+v", o.Transform.Rotation)
	}
	if o.Transform.Scale[1] != 2 {
		t.Fatalf("scale=%v", o.Transform.Scale)
	}
	if v.Scene().Mode != quarkgl.RenderPoints {
		t.Fatalf("mode=%v", v.Scene().Mode)
	}
}

func TestCommandErrors(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	tests := []struct {
		line string
		want error
	}{
		{"fly away", ErrUnknownCommand},
		{"help nope", ErrUnknownCommand},
		{"pos w 1", quarkgl.ErrInvalidAxis},
		{"select 5", quarkgl.ErrObjectNotFound},
		{"remove 0", quarkgl.ErrObjectNotFound},
		{"pos x NaN", errNotFinite},
	}
	for _, tt := range tests {
		if err := v.ExecLine(tt.line); !errors.Is(err, tt.want) {
			t.Fatalf("%q: expected %v, got %v", tt.line, tt.want, err)
		}
	}
	for _, line := range []string{"mode", "speed warp 1", "anim rot x maybe", "cam speed -1", "cube extra"} {
		if err := v.ExecLine(line); err == nil {
			t.Fatalf("%q: expected an error", line)
		}
	}
}

func TestAnimationAdvancesPerTick(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	mustExec(t, v, "speed angle 0.25")
	mustExec(t, v, "anim rot y on")
	mustExec(t, v, "speed move 9")
	mustExec(t, v, "anim pos x on")

	for i := 0; i < 90; i++ {
		if err := v.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	o := v.Scene().Active()
	if math.Abs(o.Transform.Rotation.Y-math.Pi/2) > 1e-9 {
		t.Fatalf("rotation y=%v after one second, want pi/2", o.Transform.Rotation.Y)
	}
	if math.Abs(o.Transform.Position[0]-9) > 1e-9 {
		t.Fatalf("position x=%v after one second, want 9", o.Transform.Position[0])
	}
}

func TestMeasuredDelta(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.MeasuredDelta = true
	v, h := newTestViewer(t, cfg)
	h.clock.d = 500 * time.Millisecond
	mustExec(t, v, "speed move 2")
	mustExec(t, v, "anim pos y on")
	if err := v.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := v.Scene().Active().Transform.Position[1]; math.Abs(got-1) > 1e-12 {
		t.Fatalf("position y=%v, want 1", got)
	}
}

func TestObjectListCommands(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	mustExec(t, v, "cube")
	mustExec(t, v, "cube")
	s := v.Scene()
	if s.Len() != 3 || s.Active().Name != "cube 3" {
		t.Fatalf("objects=%d active=%q", s.Len(), s.Active().Name)
	}
	mustExec(t, v, "select 1")
	if s.ActiveIndex() != 0 {
		t.Fatalf("active=%d", s.ActiveIndex())
	}
	mustExec(t, v, "remove 2")
	mustExec(t, v, "rm")
	if s.Len() != 1 || s.Active().Name != "cube 3" {
		t.Fatalf("objects=%d active=%q", s.Len(), s.Active().Name)
	}
}

func TestCameraCommands(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	mustExec(t, v, "cam pos 1 2 3")
	mustExec(t, v, "cam speed 4")
	cam := v.Scene().Camera
	if cam.Position != (mgl64.Vec3{1, 2, 3}) || cam.BaseSpeed != 4 {
		t.Fatalf("camera=%+v", cam)
	}
	mustExec(t, v, "cam reset")
	if v.Scene().Camera.Position != (mgl64.Vec3{0, 0, -2}) {
		t.Fatalf("reset position=%v", v.Scene().Camera.Position)
	}
}

func TestStatusAndHelpLog(t *testing.T) {
	v, h := newTestViewer(t, DefaultConfig())
	mustExec(t, v, "status")
	mustExec(t, v, "help")
	mustExec(t, v, "help rm")
	out := h.buf.String()
	for _, want := range []string{"console: cam pos [0.00, 0.00, -2.00]", "console: obj 1/1 cube", "console: uscale", "aliases: rm"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log lacks %q:\n%s", want, out)
		}
	}
}

func TestKeyboardInput(t *testing.T) {
	v, h := newTestViewer(t, DefaultConfig())
	send := func(evs ...hal.Event) {
		for _, ev := range evs {
			h.in.ch <- ev
		}
		if err := v.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	send(hal.Event{Kind: hal.EventKey, Code: hal.KeyW, Press: true})
	want := -2 + 2.0/90
	if got := v.Scene().Camera.Position.Z(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("z=%v, want %v", got, want)
	}
	send(hal.Event{Kind: hal.EventKey, Code: hal.KeyW, Press: false})
	send()
	if got := v.Scene().Camera.Position.Z(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("camera moved after release: z=%v", got)
	}

	send(hal.Event{Kind: hal.EventKey, Code: hal.KeyShift, Press: true},
		hal.Event{Kind: hal.EventKey, Code: hal.KeyShift, Press: false})
	if !v.Scene().Camera.Boost {
		t.Fatalf("shift did not toggle boost")
	}

	send(hal.Event{Kind: hal.EventKey, Code: hal.Key2, Press: true})
	if v.Scene().Mode != quarkgl.RenderWireframe {
		t.Fatalf("mode=%v", v.Scene().Mode)
	}

	send(hal.Event{Kind: hal.EventKey, Code: hal.KeyC, Press: true})
	if v.Scene().Len() != 2 {
		t.Fatalf("C did not add a cube")
	}
	send(hal.Event{Kind: hal.EventKey, Code: hal.KeyTab, Press: true})
	if v.Scene().ActiveIndex() != 0 {
		t.Fatalf("tab did not wrap to the first object: %d", v.Scene().ActiveIndex())
	}
	send(hal.Event{Kind: hal.EventKey, Code: hal.KeyDelete, Press: true})
	if v.Scene().Len() != 1 || v.Scene().Active().Name != "cube 2" {
		t.Fatalf("delete removed the wrong object")
	}

	h.in.ch <- hal.Event{Kind: hal.EventKey, Code: hal.KeyEscape, Press: true}
	if err := v.Update(); !errors.Is(err, hal.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

func TestMouseInput(t *testing.T) {
	v, h := newTestViewer(t, DefaultConfig())
	v.Draw(quarkgl.NewRGBATarget(200, 100))

	h.in.ch <- hal.Event{Kind: hal.EventDrag, DX: 20, DY: -10}
	if err := v.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	s := v.Scene()
	if s.Camera.Rotation == mgl64.QuatIdent() {
		t.Fatalf("drag did not rotate the camera")
	}
	if s.Grid.OffsetX != -20 || s.Grid.OffsetY != 10 {
		t.Fatalf("grid=%+v", s.Grid)
	}

	mustExec(t, v, "cam reset")
	h.in.ch <- hal.Event{Kind: hal.EventWheel, Steps: 1, X: 100, Y: 50}
	if err := v.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := s.Camera.Position; math.Abs(got.Z()+1.9) > 1e-12 || math.Abs(got.X()) > 1e-12 {
		t.Fatalf("wheel at the centre: position=%v", got)
	}
}

func TestConsoleReader(t *testing.T) {
	v, h := newTestViewer(t, DefaultConfig())
	v.StartConsole(strings.NewReader("# setup\n\nmode 'wire'\n\"unterminated\nbogus\n"))

	waitFor(t, v, func() bool { return v.Scene().Mode == quarkgl.RenderWireframe })
	waitFor(t, v, func() bool { return strings.Contains(h.buf.String(), "console: bogus:") })
	if v.notice == "" {
		t.Fatalf("failed command left no notice")
	}
}

func TestConsoleQuit(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	v.lines <- []string{"quit"}
	if err := v.Update(); !errors.Is(err, hal.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

const triOBJ = "v 0 0 0\nv 4 0 0\nv 0 2 0\nf 1 2 3\n"

func TestLoadCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(path, []byte(triOBJ), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	v, _ := newTestViewer(t, DefaultConfig())
	mustExec(t, v, "load "+path)
	waitFor(t, v, func() bool { return v.Scene().Len() == 2 })

	o := v.Scene().Active()
	if o.Name != "tri" || o.Kind != "mesh" {
		t.Fatalf("loaded object=%q kind=%q", o.Name, o.Kind)
	}
	box, _ := quarkgl.Bounds(o.Mesh.Vertices)
	if got := box.Size(); math.Abs(got[0]-2) > 1e-12 || math.Abs(got[1]-1) > 1e-12 {
		t.Fatalf("mesh not normalized: size=%v", got)
	}
}

func TestLoadCommandReportsErrors(t *testing.T) {
	v, h := newTestViewer(t, DefaultConfig())
	mustExec(t, v, "load "+filepath.Join(t.TempDir(), "nope.obj"))
	waitFor(t, v, func() bool { return strings.Contains(h.buf.String(), "assets:") && v.notice != "" })
	if v.Scene().Len() != 1 {
		t.Fatalf("failed load added objects")
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}

func TestTextureCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.png")
	writePNG(t, path)

	v, _ := newTestViewer(t, DefaultConfig())
	mustExec(t, v, "texture "+path)
	waitFor(t, v, func() bool { return v.Scene().Texture.Load() != nil })
	if got := v.Scene().Texture.Load().Name; got != "pattern.png" {
		t.Fatalf("texture name=%q", got)
	}
	mustExec(t, v, "texture none")
	if v.Scene().Texture.Load() != nil {
		t.Fatalf("texture none did not unbind")
	}
}

func TestStartupAssets(t *testing.T) {
	dir := t.TempDir()
	mesh := filepath.Join(dir, "a.obj")
	if err := os.WriteFile(mesh, []byte(triOBJ), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tex := filepath.Join(dir, "t.png")
	writePNG(t, tex)

	cfg := DefaultConfig()
	cfg.Scene.Meshes = []string{mesh, mesh}
	cfg.Scene.Texture = tex
	v, _ := newTestViewer(t, cfg)
	if v.Scene().Len() != 2 || v.Scene().Object(0).Kind != "mesh" {
		t.Fatalf("objects=%d", v.Scene().Len())
	}
	if v.Scene().Texture.Load() == nil {
		t.Fatalf("startup texture not bound")
	}
}

func TestDrawHUD(t *testing.T) {
	v, _ := newTestViewer(t, DefaultConfig())
	tgt := quarkgl.NewRGBATarget(320, 200)
	v.Draw(tgt)

	found := false
	for y := 0; y < 80 && !found; y++ {
		for x := 0; x < 200; x++ {
			if tgt.At(x, y) == hudText {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("no HUD text pixels drawn")
	}

	cfg := DefaultConfig()
	cfg.Render.HideHUD = true
	hidden, _ := newTestViewer(t, cfg)
	tgt = quarkgl.NewRGBATarget(320, 200)
	hidden.Draw(tgt)
	for y := 0; y < 80; y++ {
		for x := 0; x < 200; x++ {
			if tgt.At(x, y) == hudText {
				t.Fatalf("HUD drawn while hidden at (%d,%d)", x, y)
			}
		}
	}
}

func TestRunGuardedRecovers(t *testing.T) {
	var buf bytes.Buffer
	err := runGuarded(hal.NewLogger(&buf), "boom", func() error {
		var m map[string]int
		m["x"] = 1
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "boom: panic") {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(buf.String(), "viewer panic: command=boom") {
		t.Fatalf("log=%q", buf.String())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := newRegistry()
	run := func(*Viewer, []string) error { return nil }
	if err := r.register(command{Name: "a", Aliases: []string{"b"}, Run: run}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.register(command{Name: "B", Run: run}); err == nil {
		t.Fatalf("expected duplicate error for a name taken by an alias")
	}
	if err := r.register(command{Name: "c", Aliases: []string{"d", "A"}, Run: run}); err == nil {
		t.Fatalf("expected duplicate error for an alias taken by a name")
	}
	if _, ok := r.resolve("d"); ok {
		t.Fatalf("failed registration left alias d behind")
	}
	if err := r.register(command{Name: "e"}); err == nil {
		t.Fatalf("expected error for a command without handler")
	}
}

func TestRegistryIgnoresCase(t *testing.T) {
	r := newRegistry()
	run := func(*Viewer, []string) error { return nil }
	if err := r.register(command{Name: " Load ", Aliases: []string{"LD", " "}, Run: run}); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, word := range []string{"load", "LOAD", "ld", " Ld"} {
		cmd, ok := r.resolve(word)
		if !ok || cmd.Name != "load" {
			t.Fatalf("resolve(%q)=%q %v", word, cmd.Name, ok)
		}
	}
	cmd, _ := r.resolve("ld")
	if len(cmd.Aliases) != 1 || cmd.Aliases[0] != "ld" {
		t.Fatalf("aliases=%q", cmd.Aliases)
	}
	if got := r.names(); len(got) != 1 || got[0] != "load" {
		t.Fatalf("names=%v", got)
	}
}

func TestNoticeLastsThreeSecondsAtAnyRate(t *testing.T) {
	for _, tps := range []int{30, 90, 240} {
		cfg := DefaultConfig()
		cfg.Window.TPS = tps
		v, _ := newTestViewer(t, cfg)
		v.runCommand([]string{"fly"})
		if v.notice == "" {
			t.Fatalf("tps=%d: failed command left no notice", tps)
		}
		tick := func(n int) {
			for i := 0; i < n; i++ {
				if err := v.Update(); err != nil {
					t.Fatalf("Update: %v", err)
				}
			}
		}
		tick(3*tps - 2)
		if v.notice == "" {
			t.Fatalf("tps=%d: notice cleared before three seconds", tps)
		}
		tick(4)
		if v.notice != "" {
			t.Fatalf("tps=%d: notice still shown after three seconds", tps)
		}
	}
}
