package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

// countingWriter tracks the bytes written for io.WriterTo.
type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) printf(format string, args ...any) error {
	n, err := fmt.Fprintf(c.w, format, args...)
	c.n += int64(n)
	return err
}

// WriteTo writes the mesh in the text format:
//
//	# Vertices
//	v <x> <y> <z>
//
//	# Triangles
//	t <i0> <i1> <i2>
//
// Vertices are numbered from 0 in order of first appearance while walking
// the triangles. Vertices and edges not on any triangle are not written.
// Corners are listed counter-clockwise around the triangle's normal.
func (m *Mesh) WriteTo(w io.Writer) (int64, error) {
	triangles := m.Triangles()
	corners := make([][3]Vertex, len(triangles))
	index := make(map[Vertex]int)
	var order []Vertex
	for i, t := range triangles {
		corners[i] = t.Winding()
		for _, v := range corners[i] {
			if _, ok := index[v]; !ok {
				index[v] = len(order)
				order = append(order, v)
			}
		}
	}

	cw := &countingWriter{w: bufio.NewWriter(w)}
	if err := cw.printf("# Vertices\n"); err != nil {
		return cw.n, err
	}
	for _, v := range order {
		p := v.Position()
		if err := cw.printf("v %s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)); err != nil {
			return cw.n, err
		}
	}

	if err := cw.printf("\n# Triangles\n"); err != nil {
		return cw.n, err
	}
	for _, vs := range corners {
		if err := cw.printf("t %d %d %d\n", index[vs[0]], index[vs[1]], index[vs[2]]); err != nil {
			return cw.n, err
		}
	}

	return cw.n, cw.w.Flush()
}

// Read parses the text format written by WriteTo into a new mesh. Entities
// get new identities; counts of referenced vertices, edges and triangles are
// preserved. Each new triangle is oriented so that its corners, as listed,
// wind counter-clockwise around the normal.
func Read(r io.Reader) (*Mesh, error) {
	m := New()
	var vertices []Vertex

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, lineNo, err)
			}
			vertices = append(vertices, m.AddVertex(p))

		case "t":
			corners, err := parseTriangle(fields[1:], vertices)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, lineNo, err)
			}
			if _, err := m.AddWoundTriangle(corners[0], corners[1], corners[2]); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedInput, lineNo, err)
			}

		default:
			return nil, fmt.Errorf("%w: line %d: unknown record %q", ErrMalformedInput, lineNo, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh: %w", err)
	}
	return m, nil
}

func parseVertex(fields []string) (geometry.Vector3, error) {
	if len(fields) != 3 {
		return geometry.Vector3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i, f := range fields {
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("coordinate %q: %v", f, err)
		}
		c[i] = value
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

func parseTriangle(fields []string, vertices []Vertex) ([3]Vertex, error) {
	var corners [3]Vertex
	if len(fields) != 3 {
		return corners, fmt.Errorf("triangle needs 3 vertex indices, got %d", len(fields))
	}
	for i, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil {
			return corners, fmt.Errorf("vertex index %q: %v", f, err)
		}
		if idx < 0 || idx >= len(vertices) {
			return corners, fmt.Errorf("vertex index %d out of range [0, %d)", idx, len(vertices))
		}
		corners[i] = vertices[idx]
	}
	return corners, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
