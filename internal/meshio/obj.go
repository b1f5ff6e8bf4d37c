// Package meshio reads polygon meshes from Wavefront OBJ text.
//
// Only geometry is read: "v" positions and "f" faces. Faces stay polygons; they are not
// triangulated. Texture coordinates, normals, groups and materials are skipped.
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"quarkview/quarkgl"
)

var ErrNoVertices = errors.New("no vertices")

// ParseError reports a malformed statement.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadFile opens path and reads it with ReadOBJ.
func ReadFile(path string) (quarkgl.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return quarkgl.Mesh{}, err
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if err != nil {
		return quarkgl.Mesh{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadOBJ parses OBJ text into a mesh with 0-based face indices.
func ReadOBJ(r io.Reader) (quarkgl.Mesh, error) {
	var m quarkgl.Mesh

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return quarkgl.Mesh{}, &ParseError{Line: line, Msg: "vertex", Err: err}
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			f, err := parseFace(fields[1:], len(m.Vertices))
			if err != nil {
				return quarkgl.Mesh{}, &ParseError{Line: line, Msg: "face", Err: err}
			}
			m.Faces = append(m.Faces, f)
		}
	}
	if err := sc.Err(); err != nil {
		return quarkgl.Mesh{}, err
	}
	if len(m.Vertices) == 0 {
		return quarkgl.Mesh{}, ErrNoVertices
	}
	return m, nil
}

func parseVertex(args []string) (mgl64.Vec3, error) {
	if len(args) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("want 3 coordinates, got %d", len(args))
	}
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

// parseFace resolves "a", "a/b", "a/b/c" and "a//c" references against the n
// vertices read so far. Negative references count back from the last vertex.
func parseFace(args []string, n int) ([]int, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("want at least 3 vertices, got %d", len(args))
	}
	face := make([]int, 0, len(args))
	for _, a := range args {
		ref := a
		if i := strings.IndexByte(ref, '/'); i >= 0 {
			ref = ref[:i]
		}
		k, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("vertex reference %q: %w", a, err)
		}
		var idx int
		switch {
		case k > 0:
			idx = k - 1
		case k < 0:
			idx = n + k
		default:
			return nil, fmt.Errorf("vertex reference %q: OBJ indices start at 1", a)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("vertex reference %q: %w", a, quarkgl.ErrFaceIndexOutOfRange)
		}
		face = append(face, idx)
	}
	return face, nil
}
