package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

var (
	// ErrInvalidFacet is returned for ASCII facets that are incomplete or
	// carry unparsable numbers.
	ErrInvalidFacet = errors.New("invalid facet")

	// ErrTruncated is returned when a binary file ends before its declared
	// facet count.
	ErrTruncated = errors.New("truncated binary STL")

	// ErrWeldRange is returned when a coordinate is too large to be welded
	// at the requested tolerance.
	ErrWeldRange = errors.New("coordinate out of weld range")
)

// sniffSize is how much of the input is inspected to tell ASCII from binary.
const sniffSize = 512

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads an STL model from r, detecting the format from its first
// bytes. Binary files whose header happens to start with "solid" are
// recognized by the absence of a "facet" keyword.
func Decode(r io.Reader) (*Model, error) {
	reader := bufio.NewReaderSize(r, sniffSize)
	header, err := reader.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("failed to read file header: %w", io.ErrUnexpectedEOF)
	}

	if isASCII(header) {
		return parseASCII(reader)
	}
	return parseBinary(reader)
}

func isASCII(header []byte) bool {
	if !bytes.HasPrefix(header, []byte("solid")) {
		return false
	}
	rest := header[5:]
	return bytes.Contains(rest, []byte("facet")) || bytes.Contains(rest, []byte("endsolid"))
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			vertices = vertices[:0]
			currentNormal = geometry.Vector3{}
			if len(fields) >= 5 && fields[1] == "normal" {
				normal, err := parseVector(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: normal: %v", ErrInvalidFacet, lineNo, err)
				}
				currentNormal = normal
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrInvalidFacet, lineNo)
			}
			vertex, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: vertex: %v", ErrInvalidFacet, lineNo, err)
			}
			vertices = append(vertices, vertex)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrInvalidFacet, lineNo, len(vertices))
			}
			model.AddFacet(Facet{
				Normal: currentNormal,
				V1:     vertices[0],
				V2:     vertices[1],
				V3:     vertices[2],
			})
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = value
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// binaryFacet mirrors the 50-byte facet record of a binary STL file.
type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Extract name from header (if present)
	headerStr := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))
	if len(headerStr) > 0 {
		model.Name = headerStr
	}

	// Read triangle count
	var facetCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &facetCount); err != nil {
		return nil, fmt.Errorf("failed to read facet count: %w", err)
	}

	for i := uint32(0); i < facetCount; i++ {
		var record binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: facet %d of %d", ErrTruncated, i, facetCount)
			}
			return nil, fmt.Errorf("failed to read facet %d: %w", i, err)
		}

		model.AddFacet(Facet{
			Normal: fromFloat32(record.Normal),
			V1:     fromFloat32(record.V1),
			V2:     fromFloat32(record.V2),
			V3:     fromFloat32(record.V3),
		})
	}

	return model, nil
}

func fromFloat32(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

func toFloat32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
