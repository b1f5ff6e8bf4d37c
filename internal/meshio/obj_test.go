package meshio

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"quarkview/quarkgl"
)

const quadOBJ = `# a unit quad and a triangle
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0   # trailing comment
vt 0 0
vn 0 0 1

f 1/1/1 2/1/1 3//1 4
f -3 -2 -1
`

func TestReadOBJ(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	if len(m.Vertices) != 4 {
		t.Fatalf("vertices=%d, want 4", len(m.Vertices))
	}
	if m.Vertices[2] != (mgl64.Vec3{1, 1, 0}) {
		t.Fatalf("vertex 2=%v", m.Vertices[2])
	}
	if len(m.Faces) != 2 {
		t.Fatalf("faces=%d, want 2", len(m.Faces))
	}
	if got := m.Faces[0]; len(got) != 4 || got[0] != 0 || got[3] != 3 {
		t.Fatalf("quad face=%v, want [0 1 2 3]", got)
	}
	if got := m.Faces[1]; len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("relative face=%v, want [1 2 3]", got)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"bad number", "v 0 0 0\nv 1 x 0\n", 2},
		{"short vertex", "v 0 0\n", 1},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", 3},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 0 1 2\n", 4},
		{"forward reference", "v 0 0 0\nv 1 0 0\nf 1 2 3\nv 1 1 0\n", 3},
		{"relative too far", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf -1 -2 -4\n", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.src))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Line != tt.line {
				t.Fatalf("line=%d, want %d (%v)", pe.Line, tt.line, err)
			}
			if !strings.Contains(err.Error(), "line "+strconv.Itoa(tt.line)) {
				t.Fatalf("message %q lacks the line number", err.Error())
			}
		})
	}
}

func TestReadOBJOutOfRangeIsTyped(t *testing.T) {
	_, err := ReadOBJ(strings.NewReader("v 0 0 0\nf 1 1 9\n"))
	if !errors.Is(err, quarkgl.ErrFaceIndexOutOfRange) {
		t.Fatalf("expected ErrFaceIndexOutOfRange, got %v", err)
	}
}

func TestReadOBJEmpty(t *testing.T) {
	_, err := ReadOBJ(strings.NewReader("# nothing\n\ng empty\n"))
	if !errors.Is(err, ErrNoVertices) {
		t.Fatalf("expected ErrNoVertices, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(m.Faces) != 2 {
		t.Fatalf("faces=%d", len(m.Faces))
	}

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.obj"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
