package quarkgl

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is a copy of the values shown on the readout overlay.
type Snapshot struct {
	CameraPosition mgl64.Vec3
	CameraRotation mgl64.Vec3 // degrees in [0, 360)

	HasObject      bool
	ObjectIndex    int
	ObjectName     string
	ObjectPosition mgl64.Vec3
	ObjectRotation mgl64.Vec3 // degrees, unwrapped
	ObjectScale    mgl64.Vec3

	Mode    RenderMode
	Objects int
}

// Snapshot captures the camera and the active object.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		CameraPosition: s.Camera.Position,
		CameraRotation: degrees(QuatRotation(s.Camera.Rotation)),
		Mode:           s.Mode,
		Objects:        len(s.objects),
		ObjectIndex:    -1,
	}
	if o := s.Active(); o != nil {
		snap.HasObject = true
		snap.ObjectIndex = s.active
		snap.ObjectName = o.Name
		snap.ObjectPosition = o.Transform.Position
		snap.ObjectRotation = degrees(o.Transform.Rotation)
		snap.ObjectScale = o.Transform.Scale
	}
	return snap
}

func degrees(r Rotation) mgl64.Vec3 { return r.EulerDegrees() }

// FormatVec3 renders v as "[x, y, z]" with two decimals.
func FormatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("[%.2f, %.2f, %.2f]", v[0], v[1], v[2])
}

// Lines returns the overlay text, one readout per line.
func (s Snapshot) Lines() []string {
	lines := []string{
		"cam pos " + FormatVec3(s.CameraPosition),
		"cam rot " + FormatVec3(s.CameraRotation),
	}
	if !s.HasObject {
		return append(lines, "no objects")
	}
	return append(lines,
		fmt.Sprintf("obj %d/%d %s", s.ObjectIndex+1, s.Objects, s.ObjectName),
		"obj pos " + FormatVec3(s.ObjectPosition),
		"obj rot " + FormatVec3(s.ObjectRotation),
		"obj scl " + FormatVec3(s.ObjectScale),
	)
}
