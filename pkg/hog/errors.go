package hog

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of
// these sentinels, so callers can classify failures with errors.Is.
var (
	// ErrType marks configuration options of the wrong kind, unknown
	// options, and unsupported element types.
	ErrType = errors.New("type error")

	// ErrValue marks numeric values out of range and geometric
	// inconsistencies.
	ErrValue = errors.New("value error")

	// ErrShape marks rejected input geometry at the interop boundary
	// (image rank, channel count). It is a specialization of ErrType:
	// errors.Is(err, ErrType) also holds for shape errors.
	ErrShape = &shapeError{}
)

type shapeError struct{}

func (*shapeError) Error() string { return "shape error" }

func (*shapeError) Is(target error) bool {
	return target == ErrType
}
