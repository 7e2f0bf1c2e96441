package helpers

// MAX_DIMS bounds tensor rank so index scratch space can live on the stack.
const MAX_DIMS = 8

// Numeric types that can back a tensor buffer.
type Numeric interface {
	~float64 | ~float32 | ~int | ~int64 | ~int32 | ~int16 | ~int8 |
		~uint64 | ~uint32 | ~uint16 | ~uint8
}

// ComputeStrides computes the canonical row-major strides for the given shape
// into dst. If dst is nil or too small, a stack-allocated array is used.
// Example: shape [2,3,4] -> strides [12,4,1].
// Returns the slice containing the computed strides.
func ComputeStrides(dst []int, shape []int) []int {
	if len(shape) == 0 {
		return nil
	}

	rank := len(shape)
	if dst == nil || len(dst) < rank {
		var static [MAX_DIMS]int
		dst = static[:rank]
	} else {
		dst = dst[:rank]
	}

	stride := 1
	for i := rank - 1; i >= 0; i-- {
		dst[i] = stride
		stride *= shape[i]
	}

	return dst
}

// SizeFromShape computes the total number of elements described by the shape.
// A zero extent on any axis yields 0.
func SizeFromShape(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	size := 1
	for _, dim := range shape {
		if dim <= 0 {
			return 0
		}
		size *= dim
	}
	return size
}

// IsContiguous reports whether the strides describe a dense row-major layout
// for the shape.
func IsContiguous(strides []int, shape []int) bool {
	rank := len(shape)
	if rank == 0 {
		return true
	}
	if len(strides) != rank {
		return false
	}
	var static [MAX_DIMS]int
	canonical := ComputeStrides(static[:rank], shape)
	for i := range canonical {
		if strides[i] != canonical[i] {
			return false
		}
	}
	return true
}

// StrideOffset computes the linear offset from multi-dimensional indices and
// strides. Strides may be negative.
func StrideOffset(indices []int, strides []int) int {
	offset := 0
	n := len(indices)
	if n > 0 {
		_ = indices[n-1]
		_ = strides[n-1]
	}
	for i := range n {
		offset += indices[i] * strides[i]
	}
	return offset
}

// OffsetBounds returns the minimum and maximum linear offsets, relative to the
// base offset, that the (shape, strides) combination can address. Negative
// strides contribute to the minimum. Both bounds are inclusive; for an empty
// shape both are 0.
func OffsetBounds(shape []int, strides []int) (lo, hi int) {
	for i := range shape {
		if shape[i] <= 0 {
			return 0, 0
		}
		span := (shape[i] - 1) * strides[i]
		if span < 0 {
			lo += span
		} else {
			hi += span
		}
	}
	return lo, hi
}

// AdvanceOffsets advances the multi-dimensional index tuple and keeps two
// linear offsets in sync with it, one per stride set. Returns false when the
// final element has been visited.
func AdvanceOffsets(shape []int, indices []int, offsets []int, stridesDst, stridesSrc []int) bool {
	if len(shape) == 0 {
		return false
	}

	for dim := len(shape) - 1; dim >= 0; dim-- {
		indices[dim]++
		strideDst := stridesDst[dim]
		strideSrc := stridesSrc[dim]
		offsets[0] += strideDst
		offsets[1] += strideSrc

		if indices[dim] < shape[dim] {
			return true
		}

		offsets[0] -= strideDst * shape[dim]
		offsets[1] -= strideSrc * shape[dim]
		indices[dim] = 0
	}

	return false
}

// IterateOffsets visits every element of shape in row-major order, calling the
// callback with the pair of linear offsets for the two stride sets.
func IterateOffsets(shape []int, stridesDst, stridesSrc []int, callback func(offsets []int)) {
	if SizeFromShape(shape) == 0 {
		return
	}

	rank := len(shape)
	var indicesStatic [MAX_DIMS]int
	var offsetsStatic [2]int
	indices := indicesStatic[:rank]
	offsets := offsetsStatic[:2]

	for {
		callback(offsets)
		if !AdvanceOffsets(shape, indices, offsets, stridesDst, stridesSrc) {
			break
		}
	}
}

// ElementsIndices returns a range-over-func iterator over all index tuples of
// shape in row-major order. The yielded slice is reused between iterations.
func ElementsIndices(shape []int) func(func([]int) bool) {
	return func(yield func([]int) bool) {
		if SizeFromShape(shape) == 0 {
			return
		}
		rank := len(shape)
		var static [MAX_DIMS]int
		indices := static[:rank]
		for {
			if !yield(indices) {
				return
			}
			dim := rank - 1
			for ; dim >= 0; dim-- {
				indices[dim]++
				if indices[dim] < shape[dim] {
					break
				}
				indices[dim] = 0
			}
			if dim < 0 {
				return
			}
		}
	}
}
