package quarkgl

import "math"

// Advance runs one animation step of dt seconds on the active object.
// It reports false when the scene is empty.
func (s *Scene) Advance(dt float64) bool {
	o := s.Active()
	if o == nil {
		return false
	}
	o.Animate(dt)
	return true
}

// Animate advances every enabled parameter of o by speed*dt.
func (o *Object) Animate(dt float64) {
	a := o.Animation
	t := &o.Transform

	angle := a.AngleSpeed * 2 * math.Pi * dt
	for _, ax := range [...]Axis{AxisX, AxisY, AxisZ} {
		if a.Rotate.Get(ax) {
			t.Rotation.Set(ax, t.Rotation.Get(ax)+angle)
		}
	}

	move := a.TranslateSpeed * dt
	for _, ax := range [...]Axis{AxisX, AxisY, AxisZ} {
		if a.Translate.Get(ax) {
			t.Position[ax] += move
		}
	}

	if a.Scale {
		grow := a.ScaleSpeed * dt
		t.Scale[0] += grow
		t.Scale[1] += grow
		t.Scale[2] += grow
	}
}
