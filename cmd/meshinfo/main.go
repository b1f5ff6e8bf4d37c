package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"quarkview/hal"
	"quarkview/internal/meshio"
	"quarkview/quarkgl"
)

func main() {
	var (
		raw     = flag.Bool("raw", false, "Report the file as stored, without normalizing.")
		preview = flag.String("preview", "", "Render each mesh to <dir>/<name>.png.")
		mode    = flag.String("mode", "filled", "Preview render mode: points|wireframe|filled.")
		size    = flag.Int("size", 320, "Preview edge length in pixels.")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fatalf("usage: meshinfo [-raw] [-preview dir] [-mode filled] [-size 320] mesh.obj ...")
	}
	rm, err := quarkgl.ParseRenderMode(*mode)
	if err != nil {
		fatalf("%v", err)
	}
	if *size <= 0 || *size > 4096 {
		fatalf("size out of range: %d", *size)
	}

	paths := flag.Args()
	meshes := make([]quarkgl.Mesh, len(paths))
	var g errgroup.Group
	g.SetLimit(4)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			m, err := meshio.ReadFile(p)
			if err != nil {
				return err
			}
			if !*raw {
				quarkgl.NormalizeMesh(m.Vertices)
			}
			meshes[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatalf("%v", err)
	}

	for i, p := range paths {
		describe(os.Stdout, p, meshes[i])
		if *preview == "" {
			continue
		}
		out := filepath.Join(*preview, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))+".png")
		if err := renderPreview(out, meshes[i], rm, *size); err != nil {
			fatalf("preview: %v", err)
		}
		fmt.Printf("  preview  %s\n", out)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// describe prints the counts and bounding box of m.
func describe(w io.Writer, name string, m quarkgl.Mesh) {
	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "  vertices %d\n", len(m.Vertices))
	fmt.Fprintf(w, "  faces    %d (%s)\n", len(m.Faces), faceSizes(m.Faces))
	box, ok := quarkgl.Bounds(m.Vertices)
	if !ok {
		fmt.Fprintf(w, "  bounds   none\n")
		return
	}
	fmt.Fprintf(w, "  min      %s\n", quarkgl.FormatVec3(box.Min))
	fmt.Fprintf(w, "  max      %s\n", quarkgl.FormatVec3(box.Max))
	fmt.Fprintf(w, "  size     %s\n", quarkgl.FormatVec3(box.Size()))
}

// faceSizes summarizes the polygon sizes, e.g. "12 tri, 6 quad".
func faceSizes(faces [][]int) string {
	var tri, quad, other int
	for _, f := range faces {
		switch len(f) {
		case 3:
			tri++
		case 4:
			quad++
		default:
			other++
		}
	}
	var parts []string
	if tri > 0 {
		parts = append(parts, fmt.Sprintf("%d tri", tri))
	}
	if quad > 0 {
		parts = append(parts, fmt.Sprintf("%d quad", quad))
	}
	if other > 0 {
		parts = append(parts, fmt.Sprintf("%d ngon", other))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// renderPreview draws m alone from the start camera and writes a PNG.
func renderPreview(path string, m quarkgl.Mesh, mode quarkgl.RenderMode, size int) error {
	s := quarkgl.NewScene()
	s.Mode = mode
	o := quarkgl.NewObject(filepath.Base(path), "mesh", m)
	if _, err := s.AddObject(o); err != nil {
		return err
	}
	t := quarkgl.NewRGBATarget(size, size)
	quarkgl.NewRenderer().Render(t, s)
	return hal.WritePNG(path, t)
}
