package quarkgl

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ScaleFloor is the smallest per-axis scale the uniform scale control may produce.
const ScaleFloor = 0.2

var (
	ErrScaleFloor      = errors.New("uniform scale would reach the scale floor")
	ErrNoActiveObject  = errors.New("no active object")
	ErrObjectNotFound  = errors.New("object index out of range")
	ErrInvalidAxis     = errors.New("invalid axis")
	ErrEmptyObjectName = errors.New("empty object name")
)

// AxisToggles enables animation per axis.
type AxisToggles struct {
	X, Y, Z bool
}

func (t AxisToggles) Get(a Axis) bool {
	switch a {
	case AxisX:
		return t.X
	case AxisY:
		return t.Y
	default:
		return t.Z
	}
}

func (t *AxisToggles) Set(a Axis, on bool) {
	switch a {
	case AxisX:
		t.X = on
	case AxisY:
		t.Y = on
	default:
		t.Z = on
	}
}

// Animation holds the speeds and toggles of an object.
type Animation struct {
	// AngleSpeed is in revolutions per second.
	AngleSpeed float64
	// TranslateSpeed is in units per second.
	TranslateSpeed float64
	// ScaleSpeed is in scale units per second, applied to all axes.
	ScaleSpeed float64

	Rotate    AxisToggles
	Translate AxisToggles
	Scale     bool
}

// Object is a mesh placed in the scene.
type Object struct {
	Name string
	Kind string

	Transform ObjectTransform
	Animation Animation
	Mesh      Mesh
}

// NewObject wraps a mesh with an identity transform.
func NewObject(name, kind string, m Mesh) *Object {
	return &Object{
		Name:      name,
		Kind:      kind,
		Transform: IdentityTransform(),
		Mesh:      m,
	}
}

// UniformScale is the mean of the three scale axes.
func (o *Object) UniformScale() float64 {
	s := o.Transform.Scale
	return (s[0] + s[1] + s[2]) / 3
}

// Scene is the explicit context every pipeline call works on.
type Scene struct {
	Camera Camera
	Grid   Grid
	Mode   RenderMode

	Texture TextureSlot

	objects []*Object
	active  int
}

// NewScene returns an empty scene with the start camera.
func NewScene() *Scene {
	return &Scene{
		Camera: NewCamera(),
		Grid:   NewGrid(),
		Mode:   RenderFilled,
	}
}

// AddObject validates o, appends it and makes it active. It returns the new index.
func (s *Scene) AddObject(o *Object) (int, error) {
	if o == nil {
		return -1, ErrObjectNotFound
	}
	if o.Name == "" {
		return -1, ErrEmptyObjectName
	}
	if err := o.Mesh.Validate(); err != nil {
		return -1, err
	}
	if o.Transform.Scale == (mgl64.Vec3{}) {
		o.Transform.Scale = mgl64.Vec3{1, 1, 1}
	}
	s.objects = append(s.objects, o)
	s.active = len(s.objects) - 1
	return s.active, nil
}

// RemoveObject drops object i. The active index stays on the same object when possible.
func (s *Scene) RemoveObject(i int) error {
	if i < 0 || i >= len(s.objects) {
		return ErrObjectNotFound
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	switch {
	case len(s.objects) == 0:
		s.active = 0
	case i < s.active:
		s.active--
	case s.active >= len(s.objects):
		s.active = len(s.objects) - 1
	}
	return nil
}

// SetActive selects the object the setters and the animation work on.
func (s *Scene) SetActive(i int) error {
	if i < 0 || i >= len(s.objects) {
		return ErrObjectNotFound
	}
	s.active = i
	return nil
}

func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) Empty() bool { return len(s.objects) == 0 }

// ActiveIndex returns the active object index, or -1 for an empty scene.
func (s *Scene) ActiveIndex() int {
	if s.Empty() {
		return -1
	}
	return s.active
}

// Active returns the active object, or nil for an empty scene.
func (s *Scene) Active() *Object {
	if s.Empty() {
		return nil
	}
	return s.objects[s.active]
}

// Object returns object i, or nil.
func (s *Scene) Object(i int) *Object {
	if i < 0 || i >= len(s.objects) {
		return nil
	}
	return s.objects[i]
}

// Objects returns the object list. Callers must not modify it.
func (s *Scene) Objects() []*Object { return s.objects }

func (s *Scene) activeOrErr() (*Object, error) {
	o := s.Active()
	if o == nil {
		return nil, ErrNoActiveObject
	}
	return o, nil
}

func (s *Scene) SetPosition(a Axis, v float64) error {
	if !a.Valid() {
		return ErrInvalidAxis
	}
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Transform.Position[a] = v
	return nil
}

// SetRotationDegrees stores the angle of one axis; objects keep radians internally.
func (s *Scene) SetRotationDegrees(a Axis, deg float64) error {
	if !a.Valid() {
		return ErrInvalidAxis
	}
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Transform.Rotation.Set(a, mgl64.DegToRad(deg))
	return nil
}

// SetScale sets one scale axis directly. The floor only applies to SetUniformScale.
func (s *Scene) SetScale(a Axis, v float64) error {
	if !a.Valid() {
		return ErrInvalidAxis
	}
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Transform.Scale[a] = v
	return nil
}

// SetUniformScale moves the mean scale to target by shifting all three axes equally.
//
// A shrink that would leave any axis at or below ScaleFloor is rejected as a whole and
// the scale is left untouched.
func (s *Scene) SetUniformScale(target float64) error {
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	delta := (target - o.UniformScale()) / 3
	if delta == 0 {
		return nil
	}
	sc := o.Transform.Scale
	if delta < 0 {
		for i := 0; i < 3; i++ {
			if sc[i]+delta <= ScaleFloor {
				return ErrScaleFloor
			}
		}
	}
	o.Transform.Scale = mgl64.Vec3{sc[0] + delta, sc[1] + delta, sc[2] + delta}
	return nil
}

func (s *Scene) SetAngleSpeed(revPerSec float64) error {
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Animation.AngleSpeed = revPerSec
	return nil
}

func (s *Scene) SetTranslateSpeed(v float64) error {
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Animation.TranslateSpeed = v
	return nil
}

func (s *Scene) SetScaleSpeed(v float64) error {
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Animation.ScaleSpeed = v
	return nil
}

func (s *Scene) SetRotationAnimated(a Axis, on bool) error {
	if !a.Valid() {
		return ErrInvalidAxis
	}
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Animation.Rotate.Set(a, on)
	return nil
}

func (s *Scene) SetPositionAnimated(a Axis, on bool) error {
	if !a.Valid() {
		return ErrInvalidAxis
	}
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Animation.Translate.Set(a, on)
	return nil
}

func (s *Scene) SetScaleAnimated(on bool) error {
	o, err := s.activeOrErr()
	if err != nil {
		return err
	}
	o.Animation.Scale = on
	return nil
}
