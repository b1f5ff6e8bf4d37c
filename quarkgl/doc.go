// Package quarkgl is the software 3D pipeline behind quarkview.
//
// It turns polygon meshes into 2D drawing calls. Nothing here talks to a GPU: the
// renderer only needs a Target that can clear, plot pixels, draw lines, rectangles
// and polygons.
//
// Pipeline (fixed):
//
//	mesh vertex → scale → rotate Z → rotate Y → rotate X → translate
//	            → camera view transform → perspective divide → screen mapping → Target.
//
// Points at or behind the near plane are not clipped away; they carry
// ShouldRender=false and each render mode decides what to do with them.
//
// Objects store their rotation as Euler angles (driven by per-axis controls), the
// camera stores a quaternion (driven by mouse drags). Both satisfy Rotation.
//
// All state lives in a Scene value. A Scene is not safe for concurrent use; the host
// serializes input and rendering on one goroutine. The only exception is the texture
// slot, which loaders may fill from any goroutine.
package quarkgl
