package primitive

import (
	"math"

	"github.com/chewxy/math32"
)

// Float constrains the two monomorphized precisions of the descriptor
// kernels.
type Float interface {
	~float32 | ~float64
}

// Atan2 dispatches to math32 for float32 operands and math for float64.
func Atan2[F Float](y, x F) F {
	switch any(y).(type) {
	case float32:
		return F(math32.Atan2(float32(y), float32(x)))
	default:
		return F(math.Atan2(float64(y), float64(x)))
	}
}

// Sqrt dispatches to math32 for float32 operands and math for float64.
func Sqrt[F Float](v F) F {
	switch any(v).(type) {
	case float32:
		return F(math32.Sqrt(float32(v)))
	default:
		return F(math.Sqrt(float64(v)))
	}
}

// Hypot computes sqrt(x*x + y*y) without undue overflow.
func Hypot[F Float](x, y F) F {
	switch any(x).(type) {
	case float32:
		return F(math32.Hypot(float32(x), float32(y)))
	default:
		return F(math.Hypot(float64(x), float64(y)))
	}
}

// Floor dispatches to math32 for float32 operands and math for float64.
func Floor[F Float](v F) F {
	switch any(v).(type) {
	case float32:
		return F(math32.Floor(float32(v)))
	default:
		return F(math.Floor(float64(v)))
	}
}

// Pi returns the constant of the requested precision.
func Pi[F Float]() F {
	return F(math.Pi)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite[F Float](v F) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
