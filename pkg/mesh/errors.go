package mesh

import "errors"

// Sentinel errors for mesh operations.
var (
	// ErrInvalidHandle is returned when a zero-value handle or a handle into
	// a released mesh is passed to a mesh operation.
	ErrInvalidHandle = errors.New("invalid entity handle")

	// ErrForeignEntity is returned when a handle belongs to another mesh.
	ErrForeignEntity = errors.New("entity belongs to another mesh")

	// ErrDegenerateEdge is returned when both endpoints of an edge are the
	// same vertex.
	ErrDegenerateEdge = errors.New("edge endpoints must be distinct vertices")

	// ErrDegenerateTriangle is returned when three edges do not bound a
	// triangle: an edge is repeated or the edges do not close a cycle of
	// three distinct vertices.
	ErrDegenerateTriangle = errors.New("edges do not form a triangle")

	// ErrRayMismatch is returned when hits of two different rays are
	// compared or mixed in one hit set.
	ErrRayMismatch = errors.New("cannot compare hits from different rays")

	// ErrMalformedInput is returned by Read for text that does not follow
	// the mesh format.
	ErrMalformedInput = errors.New("malformed mesh input")

	// ErrInvalidShape is returned by shape factories for unusable parameters.
	ErrInvalidShape = errors.New("invalid shape parameters")
)
