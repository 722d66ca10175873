// Package grid provides the per-variable four-dimensional storage used by
// every physics routine in a spherical stellar hydrodynamics run.
//
// A [Grid] owns one [Field] per physical variable:
//
//   - [DenseField]: uniform shells, one contiguous row-major buffer
//   - [RaggedField]: an ordered list of [Surface] shells, where trailing
//     ghost shells may use a different angular shape than interior shells
//
// All access goes through (variable, shell, row, column). Indices are
// checked at the API boundary and reported as [ErrInvalidVariable] or
// [ErrIndexOutOfRange]; construction problems are [ErrDimensionMismatch].
//
// # Example
//
//	g, _ := grid.NewRagged(
//		[]grid.Extents{{3, 4, 5}},
//		[]grid.Extents{{2, 1, 1}},
//	)
//	g.DepthAt(0, 0) // 5
//	g.DepthAt(0, 4) // 1
//
// # Ownership
//
// A Grid is single-owner. Use [Grid.Clone] for an independent copy and
// [Grid.Release] when the buffer is discarded. A Grid is NOT safe for
// concurrent use.
package grid
