package quarkgl

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFormatVec3(t *testing.T) {
	if got := FormatVec3(mgl64.Vec3{1, -0.125, 2.005}); got != "[1.00, -0.12, 2.00]" && got != "[1.00, -0.13, 2.00]" {
		t.Fatalf("got %q", got)
	}
	if got := FormatVec3(mgl64.Vec3{0, 0, -2}); got != "[0.00, 0.00, -2.00]" {
		t.Fatalf("got %q", got)
	}
}

func TestSnapshotEmptyScene(t *testing.T) {
	snap := NewScene().Snapshot()
	if snap.HasObject || snap.ObjectIndex != -1 {
		t.Fatalf("empty scene snapshot has an object: %+v", snap)
	}
	lines := snap.Lines()
	if len(lines) != 3 || lines[2] != "no objects" {
		t.Fatalf("lines=%q", lines)
	}
	if lines[0] != "cam pos [0.00, 0.00, -2.00]" || lines[1] != "cam rot [0.00, 0.00, 0.00]" {
		t.Fatalf("camera lines=%q", lines[:2])
	}
}

func TestSnapshotActiveObject(t *testing.T) {
	s := sceneWith("a", "b")
	if err := s.SetRotationDegrees(AxisX, -90); err != nil {
		t.Fatalf("SetRotationDegrees: %v", err)
	}
	s.Camera.Rotation = QuatFromAxisAngle(mgl64.Vec3{1, 0, 0}, -math.Pi/2)

	snap := s.Snapshot()
	if !snap.HasObject || snap.ObjectIndex != 1 || snap.ObjectName != "b" || snap.Objects != 2 {
		t.Fatalf("snapshot=%+v", snap)
	}
	if !almostEqual(snap.ObjectRotation[0], -90, 1e-9) {
		t.Fatalf("object rotation should stay unwrapped: %v", snap.ObjectRotation)
	}
	if !almostEqual(snap.CameraRotation[0], 270, 1e-6) {
		t.Fatalf("camera rotation should wrap into [0,360): %v", snap.CameraRotation)
	}

	lines := snap.Lines()
	if len(lines) != 6 {
		t.Fatalf("lines=%q", lines)
	}
	if lines[2] != "obj 2/2 b" {
		t.Fatalf("object line=%q", lines[2])
	}
	if lines[5] != "obj scl [1.00, 1.00, 1.00]" {
		t.Fatalf("scale line=%q", lines[5])
	}
}
