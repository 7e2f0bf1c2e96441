package tensor

import (
	"github.com/itohio/hog/pkg/tensor/types"
)

type Tensor = types.Tensor
type Shape = types.Shape
type DataType = types.DataType

const (
	UNKNOWN DataType = types.UNKNOWN
	BOOL    DataType = types.BOOL
	INT8    DataType = types.INT8
	UINT8   DataType = types.UINT8
	INT16   DataType = types.INT16
	UINT16  DataType = types.UINT16
	INT32   DataType = types.INT32
	UINT32  DataType = types.UINT32
	INT64   DataType = types.INT64
	UINT64  DataType = types.UINT64
	FP16    DataType = types.FP16
	FP32    DataType = types.FP32
	FP64    DataType = types.FP64
)

// NewShape returns dims as a Shape.
func NewShape(dims ...int) Shape {
	return types.NewShape(dims...)
}

// FromFloat32 constructs an FP32 tensor over an existing backing slice.
func FromFloat32(shape Shape, data []float32) Dense {
	return FromArray(shape, data)
}

// FromFloat64 constructs an FP64 tensor over an existing backing slice.
func FromFloat64(shape Shape, data []float64) Dense {
	return FromArray(shape, data)
}

// ZerosLike creates a contiguous zero tensor with the shape and type of t.
func ZerosLike(t Tensor) Dense {
	return New(t.DataType(), t.Shape().Clone())
}
