package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gosolid/pkg/mesh"
	"github.com/philipparndt/gosolid/pkg/stl"
)

// ErrUnsupportedFormat is returned for file extensions other than .stl and
// .mesh.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Options control how a file becomes a solid.
type Options struct {
	// WeldTolerance is passed to stl.Model.ToSolid.
	WeldTolerance float64

	// Orient runs Solid.Orient after loading.
	Orient bool
}

// Load reads an STL or text mesh file into a solid.
func Load(path string, opts Options) (*mesh.Solid, error) {
	var solid *mesh.Solid

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		solid, err = model.ToSolid(opts.WeldTolerance)
		if err != nil {
			return nil, fmt.Errorf("failed to build solid from %s: %w", path, err)
		}

	case ".mesh":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()

		m, err := mesh.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mesh file: %w", err)
		}
		solid = mesh.FromMesh(m)

	default:
		return nil, fmt.Errorf("%w: %s (expected .stl or .mesh)", ErrUnsupportedFormat, ext)
	}

	if opts.Orient {
		solid.Orient()
	}

	slog.Debug("loaded solid",
		slog.String("path", path),
		slog.Int("vertices", solid.NumVertices()),
		slog.Int("triangles", solid.NumTriangles()),
	)
	return solid, nil
}

// Save writes s to path, choosing the format from the extension. STL output
// is binary unless ascii is set.
func Save(path string, s *mesh.Solid, ascii bool) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".stl" && ext != ".mesh" {
		return fmt.Errorf("%w: %s (expected .stl or .mesh)", ErrUnsupportedFormat, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch {
	case ext == ".mesh":
		_, err = s.WriteTo(file)
	case ascii:
		err = stl.EncodeASCII(file, name, s)
	default:
		err = stl.EncodeBinary(file, name, s)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Debug("saved solid", slog.String("path", path), slog.Int("triangles", s.NumTriangles()))
	return nil
}
