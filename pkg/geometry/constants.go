package geometry

import "math"

const (
	Pi  = math.Pi
	Tau = 2 * math.Pi
	E   = math.E
)
