package app

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"quarkview/internal/meshio"
	"quarkview/quarkgl"
)

// loadedMesh is a normalized mesh ready to become a scene object.
type loadedMesh struct {
	name string
	mesh quarkgl.Mesh
}

// loadMeshes reads every path concurrently and normalizes the results. The order of
// the result matches paths. The first failure cancels the rest.
func loadMeshes(ctx context.Context, paths []string) ([]loadedMesh, error) {
	out := make([]loadedMesh, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := meshio.ReadFile(p)
			if err != nil {
				return err
			}
			quarkgl.NormalizeMesh(m.Vertices)
			out[i] = loadedMesh{name: meshName(p), mesh: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// loadTexture decodes a PNG, JPEG or GIF image.
func loadTexture(path string) (*quarkgl.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%s: empty image", path)
	}
	return &quarkgl.Texture{Name: filepath.Base(path), Img: img}, nil
}

// loadStartupAssets loads the configured meshes and texture in parallel.
func loadStartupAssets(ctx context.Context, meshes []string, texture string) ([]loadedMesh, *quarkgl.Texture, error) {
	var (
		ms  []loadedMesh
		tex *quarkgl.Texture
	)
	g, ctx := errgroup.WithContext(ctx)
	if len(meshes) > 0 {
		g.Go(func() error {
			var err error
			ms, err = loadMeshes(ctx, meshes)
			return err
		})
	}
	if texture != "" {
		g.Go(func() error {
			var err error
			tex, err = loadTexture(texture)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ms, tex, nil
}

func meshName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
