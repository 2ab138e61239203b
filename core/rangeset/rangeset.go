package rangeset

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Range is an inclusive interval of integers.
type Range struct {
	Start int
	End   int
}

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool {
	return r.Start <= n && n <= r.End
}

// Len returns the number of integers in the range.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("[%d]", r.Start)
	}
	return fmt.Sprintf("[%d-%d]", r.Start, r.End)
}

// Set is a set of integers. The zero value is an empty set ready to use.
// Ranges are kept sorted by Start, disjoint and never adjacent.
type Set struct {
	ranges []Range
}

// Add inserts n. Adding a number already in the set is a no-op.
func (s *Set) Add(n int) {
	// i is the first range whose End is at least n-1, i.e. the first range
	// n could touch.
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].End >= n-1
	})

	if i == len(s.ranges) || n < s.ranges[i].Start-1 {
		s.ranges = slices.Insert(s.ranges, i, Range{Start: n, End: n})
		return
	}

	r := &s.ranges[i]
	switch {
	case r.Contains(n):
		return
	case n == r.Start-1:
		r.Start = n
	case n == r.End+1:
		r.End = n
		// Extending the end may close the gap to the next range.
		if i+1 < len(s.ranges) && s.ranges[i+1].Start == n+1 {
			r.End = s.ranges[i+1].End
			s.ranges = slices.Delete(s.ranges, i+1, i+2)
		}
	}
}

// Contains reports whether n is in the set.
func (s *Set) Contains(n int) bool {
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].End >= n
	})
	return i < len(s.ranges) && s.ranges[i].Contains(n)
}

// Len returns the number of integers in the set.
func (s *Set) Len() int {
	total := 0
	for _, r := range s.ranges {
		total += r.Len()
	}
	return total
}

// IsEmpty reports whether the set holds no integers.
func (s *Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Ranges returns a copy of the merged ranges in ascending order.
func (s *Set) Ranges() []Range {
	return slices.Clone(s.ranges)
}

// All yields every integer in the set in ascending order. Each call starts
// a fresh iteration.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, r := range s.ranges {
			// Stop at End explicitly, n++ would wrap at math.MaxInt.
			for n := r.Start; ; n++ {
				if !yield(n) {
					return
				}
				if n == r.End {
					break
				}
			}
		}
	}
}

func (s *Set) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
