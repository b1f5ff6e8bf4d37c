package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"quarkview/hal"
	"quarkview/quarkgl"
)

// cubeRotationX tilts the built-in cube so three faces show at start.
const cubeRotationX = 0.45

// noticeSeconds is how long a console notice stays on the HUD.
const noticeSeconds = 3.0

// Viewer is the interactive application: it owns the scene and turns input, console
// commands and loaded assets into scene changes once per tick.
//
// Update and Draw must be called from the same goroutine.
type Viewer struct {
	h   hal.Host
	log hal.Logger
	cfg Config

	scene    *quarkgl.Scene
	renderer *quarkgl.Renderer
	reg      *registry

	ctx    context.Context
	cancel context.CancelFunc

	lines chan []string
	jobs  chan func(*Viewer)

	held     map[hal.KeyCode]bool
	viewport quarkgl.Viewport
	cubes    int

	notice     string
	noticeLeft float64
	quit       bool
}

var _ hal.App = (*Viewer)(nil)

// New builds the viewer, loads the configured assets and adds the default cube when
// there is nothing else to show.
func New(h hal.Host, cfg Config) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reg, err := newCommandRegistry()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		h:        h,
		log:      h.Logger(),
		cfg:      cfg,
		scene:    quarkgl.NewScene(),
		renderer: quarkgl.NewRenderer(),
		reg:      reg,
		lines:    make(chan []string, 64),
		jobs:     make(chan func(*Viewer), 16),
		held:     make(map[hal.KeyCode]bool),
		viewport: quarkgl.Viewport{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)},
	}
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.applyConfig()

	ms, tex, err := loadStartupAssets(v.ctx, cfg.Scene.Meshes, cfg.Scene.Texture)
	if err != nil {
		v.cancel()
		return nil, fmt.Errorf("assets: %w", err)
	}
	for _, m := range ms {
		if err := v.addMesh(m); err != nil {
			v.cancel()
			return nil, err
		}
	}
	if tex != nil {
		v.scene.Texture.Store(tex)
		v.logf("assets: texture %s", tex.Name)
	}
	if v.scene.Empty() && !cfg.Scene.NoCube {
		if err := v.addCube(); err != nil {
			v.cancel()
			return nil, err
		}
	}
	v.logf("viewer: %d objects, mode %s", v.scene.Len(), v.scene.Mode)
	return v, nil
}

// applyConfig copies the validated settings into the scene and renderer.
func (v *Viewer) applyConfig() {
	c := v.cfg
	v.scene.Mode, _ = quarkgl.ParseRenderMode(c.Render.Mode)
	v.renderer.Faces, _ = parseFacePolicy(c.Render.FacePolicy)
	v.renderer.Edges, _ = parseEdgePolicy(c.Render.EdgePolicy)
	if c.Camera.Position != nil {
		v.scene.Camera.Position = mgl64.Vec3(*c.Camera.Position)
	}
	if c.Camera.Speed > 0 {
		v.scene.Camera.BaseSpeed = c.Camera.Speed
	}
}

// Scene exposes the scene for inspection. It must only be used on the tick goroutine.
func (v *Viewer) Scene() *quarkgl.Scene { return v.scene }

// Close stops background loaders.
func (v *Viewer) Close() { v.cancel() }

// Update runs one tick: finished loads, console commands, input, held keys, then the
// animation step.
func (v *Viewer) Update() error {
	v.drainJobs()
	v.drainConsole()
	v.drainInput()
	if v.quit {
		return hal.ErrQuit
	}

	dt := v.delta()
	v.applyHeldKeys(dt)
	v.scene.Advance(dt)

	if v.noticeLeft > 0 {
		v.noticeLeft -= dt
		if v.noticeLeft <= 0 {
			v.noticeLeft = 0
			v.notice = ""
		}
	}
	return nil
}

// Draw renders the scene and the readout overlay.
func (v *Viewer) Draw(t quarkgl.Target) {
	w, h := t.Size()
	v.viewport = quarkgl.Viewport{Width: float64(w), Height: float64(h)}
	v.renderer.Render(t, v.scene)
	if !v.cfg.Render.HideHUD {
		drawHUD(t, v.scene.Snapshot().Lines(), v.notice)
	}
}

func (v *Viewer) delta() float64 {
	if v.cfg.Window.MeasuredDelta && v.h != nil {
		if d := v.h.Clock().Delta(); d > 0 {
			return d.Seconds()
		}
	}
	return v.cfg.tickDelta()
}

func (v *Viewer) drainJobs() {
	for {
		select {
		case job := <-v.jobs:
			job(v)
		default:
			return
		}
	}
}

func (v *Viewer) drainConsole() {
	for {
		select {
		case args := <-v.lines:
			v.runCommand(args)
		default:
			return
		}
	}
}

func (v *Viewer) runCommand(args []string) {
	err := v.Exec(args)
	switch {
	case err == nil:
	case errors.Is(err, hal.ErrQuit):
		v.quit = true
	default:
		v.logf("console: %s: %v", args[0], err)
		v.setNotice(fmt.Sprintf("%s: %v", args[0], err))
	}
}

func (v *Viewer) drainInput() {
	if v.h == nil {
		return
	}
	in := v.h.Input()
	if in == nil {
		return
	}
	ch := in.Events()
	for {
		select {
		case ev := <-ch:
			v.handleEvent(ev)
		default:
			return
		}
	}
}

func (v *Viewer) handleEvent(ev hal.Event) {
	switch ev.Kind {
	case hal.EventDrag:
		v.scene.Camera.Drag(ev.DX, ev.DY)
		v.scene.Grid.Drag(ev.DX, ev.DY)
	case hal.EventWheel:
		ndc := v.viewport.CursorNDC(ev.X, ev.Y)
		v.scene.Camera.Zoom(ev.Steps, ndc)
		v.scene.Grid.Zoom(ev.Steps)
	case hal.EventKey:
		v.held[ev.Code] = ev.Press
		if ev.Press {
			v.handleKeyPress(ev.Code)
		}
	}
}

func (v *Viewer) handleKeyPress(k hal.KeyCode) {
	var err error
	switch k {
	case hal.KeyShift:
		v.scene.Camera.ToggleBoost()
	case hal.Key1:
		v.scene.Mode = quarkgl.RenderPoints
	case hal.Key2:
		v.scene.Mode = quarkgl.RenderWireframe
	case hal.Key3:
		v.scene.Mode = quarkgl.RenderFilled
	case hal.KeyTab:
		if n := v.scene.Len(); n > 0 {
			err = v.scene.SetActive((v.scene.ActiveIndex() + 1) % n)
		}
	case hal.KeyDelete:
		if i := v.scene.ActiveIndex(); i >= 0 {
			err = v.removeObject(i)
		}
	case hal.KeyC:
		err = v.addCube()
	case hal.KeyR:
		v.scene.Camera.Reset()
	case hal.KeyEscape:
		v.quit = true
	}
	if err != nil {
		v.logf("viewer: %v", err)
	}
}

var moveKeys = []struct {
	keys [2]hal.KeyCode
	dir  quarkgl.MoveDirection
}{
	{[2]hal.KeyCode{hal.KeyW, hal.KeyUp}, quarkgl.MoveForward},
	{[2]hal.KeyCode{hal.KeyS, hal.KeyDown}, quarkgl.MoveBackward},
	{[2]hal.KeyCode{hal.KeyA, hal.KeyLeft}, quarkgl.MoveLeft},
	{[2]hal.KeyCode{hal.KeyD, hal.KeyRight}, quarkgl.MoveRight},
}

func (v *Viewer) applyHeldKeys(dt float64) {
	cam := &v.scene.Camera
	for _, m := range moveKeys {
		if !v.held[m.keys[0]] && !v.held[m.keys[1]] {
			continue
		}
		cam.Move(m.dir, dt)
		v.scene.Grid.Move(m.dir, cam.Speed(), dt)
	}
}

func (v *Viewer) addMesh(m loadedMesh) error {
	o := quarkgl.NewObject(m.name, "mesh", m.mesh)
	i, err := v.scene.AddObject(o)
	if err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}
	v.logf("assets: added %s as object %d (%d vertices, %d faces)",
		m.name, i+1, len(m.mesh.Vertices), len(m.mesh.Faces))
	return nil
}

func (v *Viewer) addCube() error {
	v.cubes++
	name := "cube"
	if v.cubes > 1 {
		name = fmt.Sprintf("cube %d", v.cubes)
	}
	o := quarkgl.NewObject(name, "cube", quarkgl.NewCube())
	o.Transform.Rotation.X = cubeRotationX
	_, err := v.scene.AddObject(o)
	return err
}

func (v *Viewer) removeObject(i int) error {
	o := v.scene.Object(i)
	if err := v.scene.RemoveObject(i); err != nil {
		return err
	}
	v.logf("viewer: removed %s", o.Name)
	return nil
}

// loadMeshesAsync reads paths in the background and adds the meshes on a later tick.
func (v *Viewer) loadMeshesAsync(paths []string) {
	paths = append([]string(nil), paths...)
	go func() {
		start := time.Now()
		ms, err := loadMeshes(v.ctx, paths)
		v.post(func(v *Viewer) {
			if err != nil {
				v.logf("assets: %v", err)
				v.setNotice(err.Error())
				return
			}
			for _, m := range ms {
				if err := v.addMesh(m); err != nil {
					v.logf("assets: %v", err)
				}
			}
			v.logf("assets: loaded %d meshes in %s", len(ms), time.Since(start).Round(time.Millisecond))
		})
	}()
}

// loadTextureAsync decodes path in the background and publishes it through the
// scene's texture slot.
func (v *Viewer) loadTextureAsync(path string) {
	go func() {
		tex, err := loadTexture(path)
		if err != nil {
			v.post(func(v *Viewer) {
				v.logf("assets: %v", err)
				v.setNotice(err.Error())
			})
			return
		}
		v.scene.Texture.Store(tex)
		v.logf("assets: texture %s", tex.Name)
	}()
}

// post hands fn to the tick goroutine.
func (v *Viewer) post(fn func(*Viewer)) {
	select {
	case v.jobs <- fn:
	case <-v.ctx.Done():
	}
}

func (v *Viewer) setNotice(s string) {
	v.notice = s
	v.noticeLeft = noticeSeconds
}

func (v *Viewer) logf(format string, args ...any) {
	if v.log == nil {
		return
	}
	v.log.WriteLineString(fmt.Sprintf(format, args...))
}
