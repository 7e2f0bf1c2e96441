package tensor

import (
	"fmt"

	"github.com/itohio/hog/pkg/math/helpers"
	"github.com/itohio/hog/pkg/tensor/types"
)

// Dense is a multi-dimensional array over a contiguous backing slice.
//
// Strides and offset support:
//   - strides: if nil, the tensor is contiguous (strides computed from
//     shape). If non-nil, stores explicit element strides, which may be
//     negative (reverse iteration over an axis).
//   - offset: buffer position of the element at all-zero indices. Views
//     (slices, reversals) reference a portion of a larger buffer through a
//     non-zero offset.
type Dense struct {
	shape   types.Shape
	data    any
	strides []int
	offset  int
}

var _ types.Tensor = Dense{}

// New creates a contiguous zero-initialized tensor of the given type and
// shape.
func New(dtype types.DataType, shape types.Shape) Dense {
	size := shape.Size()
	buf := types.MakeTensorData(dtype, size)
	if buf == nil {
		panic(fmt.Sprintf("tensor: unsupported dtype: %v", dtype))
	}
	return Dense{shape: shape, data: buf}
}

// FromArray constructs a contiguous tensor over an existing backing slice.
// The slice is used directly (no copy) and must hold at least shape.Size()
// elements.
func FromArray[T helpers.Numeric](shape types.Shape, data []T) Dense {
	size := shape.Size()
	if len(data) < size {
		panic(fmt.Sprintf("tensor.FromArray: data length %d is less than shape size %d", len(data), size))
	}
	return Dense{shape: shape, data: data[:size]}
}

// FromBools constructs a contiguous BOOL tensor over an existing slice.
func FromBools(shape types.Shape, data []bool) Dense {
	size := shape.Size()
	if len(data) < size {
		panic(fmt.Sprintf("tensor.FromBools: data length %d is less than shape size %d", len(data), size))
	}
	return Dense{shape: shape, data: data[:size]}
}

// FromStrided wraps an externally provided buffer with an arbitrary strided
// view. Strides are in elements and may be negative; offset locates the
// element at all-zero indices. Every (extent, stride) combination must
// address positions inside the buffer.
func FromStrided(data any, shape types.Shape, strides []int, offset int) (Dense, error) {
	dt := types.TypeFromData(data)
	if dt == types.UNKNOWN {
		return Dense{}, fmt.Errorf("tensor: unsupported data type %T", data)
	}
	if err := shape.Validate(); err != nil {
		return Dense{}, err
	}
	if len(strides) != shape.Rank() {
		return Dense{}, fmt.Errorf("tensor: %d strides for rank %d", len(strides), shape.Rank())
	}
	n := types.DataLen(data)
	if shape.Size() > 0 {
		lo, hi := helpers.OffsetBounds(shape, strides)
		if offset+lo < 0 || offset+hi >= n {
			return Dense{}, fmt.Errorf("tensor: strided view addresses [%d, %d] outside buffer of %d elements",
				offset+lo, offset+hi, n)
		}
	}
	owned := make([]int, len(strides))
	copy(owned, strides)
	return Dense{shape: shape.Clone(), data: data, strides: owned, offset: offset}, nil
}

// Empty reports whether the tensor has neither shape nor data.
func (t Dense) Empty() bool {
	return t.shape == nil && t.data == nil
}

// DataType returns the tensor's element type tag.
func (t Dense) DataType() types.DataType {
	return types.TypeFromData(t.data)
}

// Data returns the whole backing slice.
func (t Dense) Data() any {
	return t.data
}

// Shape returns the tensor's extents.
func (t Dense) Shape() types.Shape {
	return t.shape
}

// Rank returns the number of dimensions.
func (t Dense) Rank() int {
	return t.shape.Rank()
}

// Size returns the total number of addressable elements.
func (t Dense) Size() int {
	if t.shape == nil {
		if t.data == nil {
			return 0
		}
		return types.DataLen(t.data)
	}
	return t.shape.Size()
}

// Strides returns the element strides, writing into dst when possible.
func (t Dense) Strides(dst []int) []int {
	rank := t.shape.Rank()
	if rank == 0 {
		return nil
	}
	if t.strides != nil {
		if dst != nil && len(dst) >= rank {
			copy(dst, t.strides)
			return dst[:rank]
		}
		return t.strides
	}
	return t.shape.Strides(dst)
}

// Offset returns the buffer position of the element at all-zero indices.
func (t Dense) Offset() int {
	return t.offset
}

// IsContiguous reports whether the tensor is dense row-major with offset 0.
func (t Dense) IsContiguous() bool {
	if t.offset != 0 {
		return false
	}
	if t.strides == nil {
		return true
	}
	return t.shape.IsContiguous(t.strides)
}

// Clone creates a deep copy of the tensor, preserving strides and offset.
func (t Dense) Clone() Dense {
	var strides []int
	if t.strides != nil {
		strides = make([]int, len(t.strides))
		copy(strides, t.strides)
	}
	return Dense{
		shape:   t.shape.Clone(),
		data:    types.CloneData(t.data),
		strides: strides,
		offset:  t.offset,
	}
}

// Contiguous returns a contiguous row-major tensor of the same type and
// shape. Already-contiguous tensors are copied as well, so the result never
// aliases the source.
func (t Dense) Contiguous() Dense {
	out := New(t.DataType(), t.shape.Clone())
	out.Copy(t)
	return out
}

// Copy copies data from src into t, converting element types as needed.
// Shapes must match.
func (t Dense) Copy(src types.Tensor) {
	if !t.shape.Equal(src.Shape()) {
		panic(fmt.Sprintf("tensor.Copy: shape mismatch: dst %v vs src %v", t.shape, src.Shape()))
	}
	if t.Size() == 0 {
		return
	}
	var dstStatic, srcStatic [helpers.MAX_DIMS]int
	rank := t.Rank()
	dstStrides := t.Strides(dstStatic[:rank])
	srcStrides := src.Strides(srcStatic[:rank])
	sd := srcView{data: src.Data(), offset: src.Offset()}
	dd := srcView{data: t.data, offset: t.offset}
	if rank == 0 {
		dd.set(0, sd.get(0))
		return
	}
	helpers.IterateOffsets(t.shape.ToSlice(), dstStrides, srcStrides, func(offsets []int) {
		dd.set(offsets[0], sd.get(offsets[1]))
	})
}

// Slice extracts a zero-copy view of length elements along dim, starting at
// start.
func (t Dense) Slice(dim, start, length int) Dense {
	if dim < 0 || dim >= t.Rank() {
		panic(fmt.Sprintf("tensor.Slice: axis %d out of range for rank %d", dim, t.Rank()))
	}
	if start < 0 || length < 0 || start+length > t.shape[dim] {
		panic(fmt.Sprintf("tensor.Slice: range [%d, %d) out of bounds for extent %d", start, start+length, t.shape[dim]))
	}
	strides := t.Strides(nil)
	newShape := t.shape.Clone()
	newShape[dim] = length
	owned := make([]int, len(strides))
	copy(owned, strides)
	return Dense{
		shape:   newShape,
		data:    t.data,
		strides: owned,
		offset:  t.offset + start*strides[dim],
	}
}

// Reverse returns a zero-copy view iterating the given axis backwards.
func (t Dense) Reverse(axis int) Dense {
	if axis < 0 || axis >= t.Rank() {
		panic(fmt.Sprintf("tensor.Reverse: axis %d out of range for rank %d", axis, t.Rank()))
	}
	strides := t.Strides(nil)
	owned := make([]int, len(strides))
	copy(owned, strides)
	offset := t.offset
	if t.shape[axis] > 0 {
		offset += (t.shape[axis] - 1) * owned[axis]
	}
	owned[axis] = -owned[axis]
	return Dense{shape: t.shape.Clone(), data: t.data, strides: owned, offset: offset}
}

// Reshape returns a view with a different shape over the same data. The
// tensor must be contiguous and the total size must not change.
func (t Dense) Reshape(newShape types.Shape) Dense {
	if newShape.Size() != t.Size() {
		panic(fmt.Sprintf("tensor.Reshape: cannot reshape size %d into %v", t.Size(), newShape))
	}
	if !t.IsContiguous() {
		out := t.Contiguous()
		out.shape = newShape.Clone()
		return out
	}
	return Dense{shape: newShape.Clone(), data: t.data}
}

// srcView adapts a typed backing slice to float64 element access.
type srcView struct {
	data   any
	offset int
}

func (v srcView) get(index int) float64 {
	i := v.offset + index
	switch data := v.data.(type) {
	case []bool:
		if data[i] {
			return 1
		}
		return 0
	case []int8:
		return float64(data[i])
	case []uint8:
		return float64(data[i])
	case []int16:
		return float64(data[i])
	case []uint16:
		return float64(data[i])
	case []int32:
		return float64(data[i])
	case []uint32:
		return float64(data[i])
	case []int64:
		return float64(data[i])
	case []uint64:
		return float64(data[i])
	case []float32:
		return float64(data[i])
	case []float64:
		return data[i]
	default:
		panic(fmt.Sprintf("tensor: unsupported data type: %T", v.data))
	}
}

func (v srcView) set(index int, value float64) {
	i := v.offset + index
	switch data := v.data.(type) {
	case []bool:
		data[i] = value != 0
	case []int8:
		data[i] = int8(value)
	case []uint8:
		data[i] = uint8(value)
	case []int16:
		data[i] = int16(value)
	case []uint16:
		data[i] = uint16(value)
	case []int32:
		data[i] = int32(value)
	case []uint32:
		data[i] = uint32(value)
	case []int64:
		data[i] = int64(value)
	case []uint64:
		data[i] = uint64(value)
	case []float32:
		data[i] = float32(value)
	case []float64:
		data[i] = value
	default:
		panic(fmt.Sprintf("tensor: unsupported data type: %T", v.data))
	}
}

// At returns the element at the given indices converted to float64.
func (t Dense) At(indices ...int) float64 {
	return srcView{data: t.data, offset: t.offset}.get(t.linearIndex(indices))
}

// SetAt stores the value at the given indices.
func (t Dense) SetAt(value float64, indices ...int) {
	srcView{data: t.data, offset: t.offset}.set(t.linearIndex(indices), value)
}

func (t Dense) linearIndex(indices []int) int {
	if t.data == nil {
		panic("tensor: empty tensor")
	}
	rank := t.shape.Rank()
	if rank == 0 {
		if len(indices) != 0 {
			panic("tensor: scalar access takes no indices")
		}
		return 0
	}
	if len(indices) != rank {
		panic(fmt.Sprintf("tensor: %d indices for rank %d", len(indices), rank))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of bounds for extent %d on axis %d", idx, t.shape[i], i))
		}
	}
	return helpers.StrideOffset(indices, t.Strides(nil))
}

// element references a single position within the tensor.
type element struct {
	view  srcView
	index int
}

func (e element) Get() float64      { return e.view.get(e.index) }
func (e element) Set(value float64) { e.view.set(e.index, value) }

// Elements returns a range-over-func iterator over all elements in row-major
// order.
func (t Dense) Elements() func(func(types.Element) bool) {
	return func(yield func(types.Element) bool) {
		if t.Size() == 0 {
			return
		}
		view := srcView{data: t.data, offset: t.offset}
		if t.Rank() == 0 {
			yield(element{view: view})
			return
		}
		strides := t.Strides(nil)
		for indices := range t.shape.Iterator() {
			if !yield(element{view: view, index: helpers.StrideOffset(indices, strides)}) {
				return
			}
		}
	}
}
