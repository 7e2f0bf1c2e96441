package types

import (
	"fmt"

	"github.com/itohio/hog/pkg/math/helpers"
)

const MAX_DIMS = helpers.MAX_DIMS

// Shape represents tensor dimensions.
type Shape []int

// NewShape returns dims as a Shape.
func NewShape(dims ...int) Shape {
	return dims
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Size returns the total number of elements represented by the shape.
// Scalars (len=0) report size 1; any zero extent yields 0.
func (s Shape) Size() int {
	if len(s) == 0 {
		return 1
	}
	return helpers.SizeFromShape(s)
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if s.Rank() != other.Rank() {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Strides computes row-major strides for the shape.
func (s Shape) Strides(dst []int) []int {
	return helpers.ComputeStrides(dst, s)
}

// IsContiguous reports whether the given strides describe a dense row-major
// layout for the shape.
func (s Shape) IsContiguous(strides []int) bool {
	return helpers.IsContiguous(strides, s)
}

// Validate checks that the shape has non-negative extents and a rank the
// tensor package can address.
func (s Shape) Validate() error {
	if len(s) > MAX_DIMS {
		return fmt.Errorf("tensor: rank %d exceeds maximum %d", len(s), MAX_DIMS)
	}
	for i, d := range s {
		if d < 0 {
			return fmt.Errorf("tensor: negative extent %d on axis %d", d, i)
		}
	}
	return nil
}

// ToSlice returns the shape as a plain []int.
func (s Shape) ToSlice() []int {
	if len(s) == 0 {
		return nil
	}
	return []int(s)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Iterator returns a range-over-func iterator over all index tuples.
func (s Shape) Iterator() func(func([]int) bool) {
	return helpers.ElementsIndices([]int(s))
}
