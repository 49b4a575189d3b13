package mesh

import (
	"fmt"
	"sort"

	"github.com/philipparndt/gosolid/pkg/geometry"
)

// RayHit is the outcome of casting one ray on one triangle. It stores the
// distance along the ray; the hit point is recomputed from it.
type RayHit struct {
	ray      Ray
	distance float64
	hit      bool
}

func noHit(r Ray) RayHit {
	return RayHit{ray: r}
}

// Ray returns the ray the hit belongs to.
func (h RayHit) Ray() Ray { return h.ray }

// HasHit distinguishes a miss from a hit at distance zero.
func (h RayHit) HasHit() bool { return h.hit }

// Distance is the ray parameter t of the hit.
func (h RayHit) Distance() float64 { return h.distance }

// Point returns the intersection point.
func (h RayHit) Point() geometry.Vector3 {
	return h.ray.PointAt(h.distance)
}

// Compare orders two hits of the same ray by distance. It returns
// ErrRayMismatch when the hits come from different rays.
func (h RayHit) Compare(other RayHit) (int, error) {
	if !h.ray.Equal(other.ray) {
		return 0, fmt.Errorf("%w: origin %v vs %v", ErrRayMismatch, h.ray.Origin, other.ray.Origin)
	}
	switch {
	case h.distance < other.distance:
		return -1, nil
	case h.distance > other.distance:
		return 1, nil
	}
	return 0, nil
}

// Less reports whether h is closer than other along their common ray.
func (h RayHit) Less(other RayHit) (bool, error) {
	c, err := h.Compare(other)
	return c < 0, err
}

// RayHitSet holds the hits of one ray ordered by distance.
type RayHitSet struct {
	ray  Ray
	hits []RayHit
}

// NewRayHitSet creates an empty set for hits of ray.
func NewRayHitSet(ray Ray) *RayHitSet {
	return &RayHitSet{ray: ray}
}

// Ray returns the ray whose hits the set holds.
func (s *RayHitSet) Ray() Ray { return s.ray }

// Add inserts a hit keeping distance order. Misses are ignored; hits of
// another ray are rejected with ErrRayMismatch.
func (s *RayHitSet) Add(h RayHit) error {
	if !s.ray.Equal(h.ray) {
		return fmt.Errorf("%w: set origin %v, hit origin %v", ErrRayMismatch, s.ray.Origin, h.ray.Origin)
	}
	if !h.hit {
		return nil
	}
	s.insert(h)
	return nil
}

func (s *RayHitSet) insert(h RayHit) {
	i := sort.Search(len(s.hits), func(i int) bool {
		return s.hits[i].distance > h.distance
	})
	s.hits = append(s.hits, RayHit{})
	copy(s.hits[i+1:], s.hits[i:])
	s.hits[i] = h
}

// Len returns the number of hits.
func (s *RayHitSet) Len() int { return len(s.hits) }

// At returns the i-th closest hit.
func (s *RayHitSet) At(i int) RayHit { return s.hits[i] }

// Hits returns a copy of the hits, closest first.
func (s *RayHitSet) Hits() []RayHit {
	out := make([]RayHit, len(s.hits))
	copy(out, s.hits)
	return out
}

// Nearest returns the closest hit, if any.
func (s *RayHitSet) Nearest() (RayHit, bool) {
	if len(s.hits) == 0 {
		return noHit(s.ray), false
	}
	return s.hits[0], true
}

// RemoveDuplicates collapses hits lying within DedupEpsilon of the previous
// kept hit, so that kept hits are at least DedupEpsilon apart.
func (s *RayHitSet) RemoveDuplicates() {
	if len(s.hits) < 2 {
		return
	}
	kept := s.hits[:1]
	for _, h := range s.hits[1:] {
		if h.distance-kept[len(kept)-1].distance < DedupEpsilon {
			continue
		}
		kept = append(kept, h)
	}
	s.hits = kept
}
