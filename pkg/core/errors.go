package core

import "errors"

// Configuration errors are fatal: they indicate a misassembled system, not a
// numerical edge case, and abort the whole propagation. Per-ray numerical
// conditions are never errors — they are RayStatus flags inside the batch.
var (
	// ErrZeroDirection reports a zero-length ray or beam direction
	ErrZeroDirection = errors.New("direction has zero length")

	// ErrNotOrthonormal reports a rotation whose transpose is not its inverse
	ErrNotOrthonormal = errors.New("rotation matrix is not orthonormal")

	// ErrNoSource reports a system asked to propagate without a source
	ErrNoSource = errors.New("system has no source")

	// ErrEmptyBundle reports a source that generated no rays
	ErrEmptyBundle = errors.New("ray bundle is empty")

	// ErrColumnMismatch reports co-indexed bundle columns of different lengths
	ErrColumnMismatch = errors.New("ray bundle columns have mismatched lengths")
)
