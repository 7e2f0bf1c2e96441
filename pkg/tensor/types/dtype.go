package types

import "fmt"

// DataType identifies the element type stored by a tensor.
type DataType uint8

const (
	UNKNOWN DataType = iota
	BOOL
	INT8
	UINT8
	INT16
	UINT16
	INT32
	UINT32
	INT64
	UINT64
	FP16
	FP32
	FP64
)

func (dt DataType) String() string {
	switch dt {
	case BOOL:
		return "bool"
	case INT8:
		return "int8"
	case UINT8:
		return "uint8"
	case INT16:
		return "int16"
	case UINT16:
		return "uint16"
	case INT32:
		return "int32"
	case UINT32:
		return "uint32"
	case INT64:
		return "int64"
	case UINT64:
		return "uint64"
	case FP16:
		return "float16"
	case FP32:
		return "float32"
	case FP64:
		return "float64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the type is a supported floating-point kind.
// FP16 is a tag only; no buffer of that type can be constructed.
func (dt DataType) IsFloat() bool {
	return dt == FP32 || dt == FP64
}

// IsInteger reports whether the type is an integer kind, including BOOL.
func (dt DataType) IsInteger() bool {
	switch dt {
	case BOOL, INT8, UINT8, INT16, UINT16, INT32, UINT32, INT64, UINT64:
		return true
	}
	return false
}

// ElemSize returns the element size in bytes, 0 for UNKNOWN.
func (dt DataType) ElemSize() int {
	switch dt {
	case BOOL, INT8, UINT8:
		return 1
	case INT16, UINT16, FP16:
		return 2
	case INT32, UINT32, FP32:
		return 4
	case INT64, UINT64, FP64:
		return 8
	default:
		return 0
	}
}

// TypeFromData maps a backing slice to its DataType tag.
func TypeFromData(data any) DataType {
	switch data.(type) {
	case []bool:
		return BOOL
	case []int8:
		return INT8
	case []uint8:
		return UINT8
	case []int16:
		return INT16
	case []uint16:
		return UINT16
	case []int32:
		return INT32
	case []uint32:
		return UINT32
	case []int64:
		return INT64
	case []uint64:
		return UINT64
	case []float32:
		return FP32
	case []float64:
		return FP64
	default:
		return UNKNOWN
	}
}

// MakeTensorData allocates a zeroed backing slice of n elements for the given
// type. Returns nil for types that have no Go representation (UNKNOWN, FP16).
func MakeTensorData(dt DataType, n int) any {
	switch dt {
	case BOOL:
		return make([]bool, n)
	case INT8:
		return make([]int8, n)
	case UINT8:
		return make([]uint8, n)
	case INT16:
		return make([]int16, n)
	case UINT16:
		return make([]uint16, n)
	case INT32:
		return make([]int32, n)
	case UINT32:
		return make([]uint32, n)
	case INT64:
		return make([]int64, n)
	case UINT64:
		return make([]uint64, n)
	case FP32:
		return make([]float32, n)
	case FP64:
		return make([]float64, n)
	default:
		return nil
	}
}

// DataLen returns the length of a backing slice, 0 for unsupported kinds.
func DataLen(data any) int {
	switch d := data.(type) {
	case []bool:
		return len(d)
	case []int8:
		return len(d)
	case []uint8:
		return len(d)
	case []int16:
		return len(d)
	case []uint16:
		return len(d)
	case []int32:
		return len(d)
	case []uint32:
		return len(d)
	case []int64:
		return len(d)
	case []uint64:
		return len(d)
	case []float32:
		return len(d)
	case []float64:
		return len(d)
	default:
		return 0
	}
}

// CloneData returns a deep copy of a backing slice.
func CloneData(data any) any {
	switch d := data.(type) {
	case []bool:
		out := make([]bool, len(d))
		copy(out, d)
		return out
	case []int8:
		out := make([]int8, len(d))
		copy(out, d)
		return out
	case []uint8:
		out := make([]uint8, len(d))
		copy(out, d)
		return out
	case []int16:
		out := make([]int16, len(d))
		copy(out, d)
		return out
	case []uint16:
		out := make([]uint16, len(d))
		copy(out, d)
		return out
	case []int32:
		out := make([]int32, len(d))
		copy(out, d)
		return out
	case []uint32:
		out := make([]uint32, len(d))
		copy(out, d)
		return out
	case []int64:
		out := make([]int64, len(d))
		copy(out, d)
		return out
	case []uint64:
		out := make([]uint64, len(d))
		copy(out, d)
		return out
	case []float32:
		out := make([]float32, len(d))
		copy(out, d)
		return out
	case []float64:
		out := make([]float64, len(d))
		copy(out, d)
		return out
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("tensor: unsupported data type: %T", data))
	}
}
