// Package rowset provides a compressed set of row positions backed by
// roaring bitmaps. It is the currency of inverted indexes and predicate
// pushdown: operations build sets of matching positions and combine them
// with boolean algebra before any row is touched.
package rowset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of non-negative row positions.
//
// The zero value is not usable; construct with New.
type Set struct {
	bm *roaring.Bitmap
}

// New creates an empty set, optionally seeded with positions.
func New(positions ...int) *Set {
	s := &Set{bm: roaring.New()}
	for _, p := range positions {
		s.Add(p)
	}
	return s
}

// Add inserts a row position. Negative positions are ignored.
func (s *Set) Add(position int) {
	if position < 0 {
		return
	}
	s.bm.Add(uint32(position))
}

// Remove deletes a row position if present.
func (s *Set) Remove(position int) {
	if position < 0 {
		return
	}
	s.bm.Remove(uint32(position))
}

// Contains reports whether the position is in the set.
func (s *Set) Contains(position int) bool {
	if position < 0 {
		return false
	}
	return s.bm.Contains(uint32(position))
}

// Len returns the number of positions in the set.
func (s *Set) Len() int {
	return int(s.bm.GetCardinality())
}

// IsEmpty reports whether the set holds no positions.
func (s *Set) IsEmpty() bool {
	return s.bm.IsEmpty()
}

// And intersects the set with other in place.
func (s *Set) And(other *Set) {
	s.bm.And(other.bm)
}

// Or unions the set with other in place.
func (s *Set) Or(other *Set) {
	s.bm.Or(other.bm)
}

// AndNot removes other's positions from the set in place.
func (s *Set) AndNot(other *Set) {
	s.bm.AndNot(other.bm)
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return &Set{bm: s.bm.Clone()}
}

// Slice returns the positions in ascending order.
func (s *Set) Slice() []int {
	out := make([]int, 0, s.Len())
	it := s.bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// All iterates the positions in ascending order.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.bm.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}
