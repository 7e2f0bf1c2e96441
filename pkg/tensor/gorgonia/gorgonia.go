// Package gorgonia bridges gorgonia.org/tensor arrays into hog tensor views.
// The adapter enforces the interop contract: element types outside the
// supported set and ranks above 5 are rejected with a type error before they
// reach the core.
package gorgonia

import (
	"fmt"

	"github.com/itohio/hog/pkg/hog"
	"github.com/itohio/hog/pkg/tensor"
	"github.com/itohio/hog/pkg/tensor/types"
	gt "gorgonia.org/tensor"
)

// MaxRank is the highest rank the descriptor interop accepts.
const MaxRank = 5

// FromDense wraps a gorgonia dense tensor as a strided view over the same
// backing slice. No data is copied; the view stays valid for the lifetime of
// the source tensor.
func FromDense(src *gt.Dense) (tensor.Dense, error) {
	if src == nil {
		return tensor.Dense{}, fmt.Errorf("gorgonia: nil tensor: %w", hog.ErrType)
	}

	shape := types.NewShape(src.Shape()...)
	if shape.Rank() > MaxRank {
		return tensor.Dense{}, fmt.Errorf("gorgonia: rank %d exceeds %d: %w", shape.Rank(), MaxRank, hog.ErrType)
	}

	data, err := sliceData(src.Data())
	if err != nil {
		return tensor.Dense{}, err
	}
	strides := src.Strides()
	if len(strides) != shape.Rank() {
		strides = shape.Strides(nil)
	}
	return tensor.FromStrided(data, shape, strides, 0)
}

// ToDense copies a hog tensor into a freshly allocated gorgonia dense
// tensor.
func ToDense(src tensor.Dense) (*gt.Dense, error) {
	if src.Empty() {
		return nil, fmt.Errorf("gorgonia: empty tensor: %w", hog.ErrType)
	}
	dense := src.Contiguous()
	return gt.New(gt.WithShape(dense.Shape().ToSlice()...), gt.WithBacking(dense.Data())), nil
}

// sliceData validates the backing storage against the supported element
// types. Gorgonia reports scalars as bare values; those are wrapped into a
// one-element slice.
func sliceData(data any) (any, error) {
	switch d := data.(type) {
	case []bool, []int8, []uint8, []int16, []uint16, []int32, []uint32, []float32, []float64:
		return d, nil
	case float32:
		return []float32{d}, nil
	case float64:
		return []float64{d}, nil
	case []int64, []uint64, []int, int64, uint64, int:
		return nil, fmt.Errorf("gorgonia: 64-bit integers are not supported: %w", hog.ErrType)
	default:
		return nil, fmt.Errorf("gorgonia: unsupported element type %T: %w", data, hog.ErrType)
	}
}
