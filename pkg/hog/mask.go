package hog

import (
	"fmt"

	"github.com/itohio/hog/pkg/tensor"
	"github.com/itohio/hog/pkg/tensor/types"
)

// MaskFunc reports, per pixel, whether the gradient vote at (y, x) should be
// suppressed.
type MaskFunc func(y, x int) bool

type computeOpts struct {
	mask   types.Tensor
	maskFn MaskFunc
}

// ComputeOption configures a single Compute call.
type ComputeOption func(*computeOpts)

// WithMask suppresses votes wherever the dense mask is truthy. The mask must
// be a BOOL or UINT8 tensor matching the image's spatial extents.
func WithMask(mask types.Tensor) ComputeOption {
	return func(o *computeOpts) { o.mask = mask }
}

// WithMaskFunc suppresses votes wherever the predicate is true. The
// predicate is invoked once per pixel.
func WithMaskFunc(fn MaskFunc) ComputeOption {
	return func(o *computeOpts) { o.maskFn = fn }
}

// resolveMask validates the configured mask against the image extents and
// returns the per-pixel predicate, or nil when no mask is set. A dense BOOL
// mask over contiguous storage is read directly; anything else goes through
// generic element access.
func (o *computeOpts) resolveMask(h, w int) (MaskFunc, error) {
	if o.maskFn != nil {
		return o.maskFn, nil
	}
	if o.mask == nil {
		return nil, nil
	}

	m := o.mask
	switch m.DataType() {
	case types.BOOL, types.UINT8:
	default:
		return nil, fmt.Errorf("hog: mask must be bool or uint8, got %v: %w", m.DataType(), ErrValue)
	}
	if m.Rank() != 2 {
		return nil, fmt.Errorf("hog: mask must be rank 2, got rank %d: %w", m.Rank(), ErrValue)
	}
	shape := m.Shape()
	if shape[0] != h || shape[1] != w {
		return nil, fmt.Errorf("hog: mask extents (%d, %d) do not match image (%d, %d): %w",
			shape[0], shape[1], h, w, ErrValue)
	}

	if d, ok := m.(tensor.Dense); ok && d.IsContiguous() {
		if bits, ok := d.Data().([]bool); ok {
			return func(y, x int) bool { return bits[y*w+x] }, nil
		}
	}
	return func(y, x int) bool { return m.At(y, x) != 0 }, nil
}
