package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

// EncodeASCII writes s as an ASCII STL solid called name.
func EncodeASCII(w io.Writer, name string, s *mesh.Solid) error {
	return FromSolid(name, s).WriteASCII(w)
}

// EncodeBinary writes s as a binary STL file with name in its header.
func EncodeBinary(w io.Writer, name string, s *mesh.Solid) error {
	return FromSolid(name, s).WriteBinary(w)
}

// WriteASCII writes the model in ASCII STL format.
func (m *Model) WriteASCII(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", m.Name)
	for _, f := range m.Facets {
		fmt.Fprintf(bw, "  facet normal %s\n", formatVector(f.Normal))
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [3]geometry.Vector3{f.V1, f.V2, f.V3} {
			fmt.Fprintf(bw, "      vertex %s\n", formatVector(v))
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", m.Name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ASCII STL: %w", err)
	}
	return nil
}

// WriteBinary writes the model in binary STL format. The name is truncated
// to the 80-byte header.
func (m *Model) WriteBinary(w io.Writer) error {
	if uint64(len(m.Facets)) > math.MaxUint32 {
		return fmt.Errorf("too many facets for binary STL: %d", len(m.Facets))
	}
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], m.Name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Facets))); err != nil {
		return fmt.Errorf("failed to write facet count: %w", err)
	}

	for i, f := range m.Facets {
		record := binaryFacet{
			Normal: toFloat32(f.Normal),
			V1:     toFloat32(f.V1),
			V2:     toFloat32(f.V2),
			V3:     toFloat32(f.V3),
		}
		if err := binary.Write(bw, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("failed to write facet %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write binary STL: %w", err)
	}
	return nil
}

func formatVector(v geometry.Vector3) string {
	return strconv.FormatFloat(v.X, 'e', -1, 64) + " " +
		strconv.FormatFloat(v.Y, 'e', -1, 64) + " " +
		strconv.FormatFloat(v.Z, 'e', -1, 64)
}
