// Package rangeset provides a compact set of integers stored as sorted,
// disjoint and maximally merged inclusive ranges.
//
// The reconciler uses two sets per run: one for numbers claimed by files the
// ordering record knows about, one for numbered files found only on disk.
// Iterating a set yields its integers in ascending order, which is the order
// in which those files are moved down into the dense sequence.
//
// # Usage
//
//	var s rangeset.Set
//	s.Add(3)
//	s.Add(5)
//	s.Add(4) // merges into [3, 5]
//	for n := range s.All() {
//	    fmt.Println(n)
//	}
package rangeset
