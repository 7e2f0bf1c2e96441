// Package gocv bridges gocv.Mat images into hog tensors. The adapter copies
// pixel data into an owned buffer, so the returned tensor does not keep the
// Mat alive. Unsupported Mat depths are rejected with a type error.
package gocv

import (
	"fmt"

	"github.com/itohio/hog/pkg/hog"
	"github.com/itohio/hog/pkg/tensor"
	"github.com/itohio/hog/pkg/tensor/types"
	cv "gocv.io/x/gocv"
)

// FromMat converts a Mat into a contiguous (rows, cols) or (rows, cols, ch)
// tensor. Multi-channel Mats keep their interleaved channel order, which is
// the layout the descriptor's channel selection expects.
func FromMat(m cv.Mat) (tensor.Dense, error) {
	if m.Empty() {
		return tensor.Dense{}, fmt.Errorf("gocv: empty mat: %w", hog.ErrType)
	}

	src := m
	if !m.IsContinuous() {
		src = m.Clone()
		defer src.Close()
	}

	rows, cols, ch := src.Rows(), src.Cols(), src.Channels()
	shape := tensor.NewShape(rows, cols)
	if ch > 1 {
		shape = tensor.NewShape(rows, cols, ch)
	}

	switch src.Type() {
	case cv.MatTypeCV8U, cv.MatTypeCV8UC3, cv.MatTypeCV8UC4:
		data, err := src.DataPtrUint8()
		if err != nil {
			return tensor.Dense{}, fmt.Errorf("gocv: %v: %w", err, hog.ErrType)
		}
		out := make([]uint8, len(data))
		copy(out, data)
		return tensor.FromArray(shape, out), nil
	case cv.MatTypeCV16U, cv.MatTypeCV16UC3, cv.MatTypeCV16UC4:
		data, err := src.DataPtrUint16()
		if err != nil {
			return tensor.Dense{}, fmt.Errorf("gocv: %v: %w", err, hog.ErrType)
		}
		out := make([]uint16, len(data))
		copy(out, data)
		return tensor.FromArray(shape, out), nil
	case cv.MatTypeCV16S, cv.MatTypeCV16SC3, cv.MatTypeCV16SC4:
		data, err := src.DataPtrInt16()
		if err != nil {
			return tensor.Dense{}, fmt.Errorf("gocv: %v: %w", err, hog.ErrType)
		}
		out := make([]int16, len(data))
		copy(out, data)
		return tensor.FromArray(shape, out), nil
	case cv.MatTypeCV32F, cv.MatTypeCV32FC3, cv.MatTypeCV32FC4:
		data, err := src.DataPtrFloat32()
		if err != nil {
			return tensor.Dense{}, fmt.Errorf("gocv: %v: %w", err, hog.ErrType)
		}
		out := make([]float32, len(data))
		copy(out, data)
		return tensor.FromArray(shape, out), nil
	case cv.MatTypeCV64F, cv.MatTypeCV64FC3, cv.MatTypeCV64FC4:
		data, err := src.DataPtrFloat64()
		if err != nil {
			return tensor.Dense{}, fmt.Errorf("gocv: %v: %w", err, hog.ErrType)
		}
		out := make([]float64, len(data))
		copy(out, data)
		return tensor.FromArray(shape, out), nil
	default:
		return tensor.Dense{}, fmt.Errorf("gocv: unsupported mat type %v: %w", src.Type(), hog.ErrType)
	}
}

// ToMat copies a rank-2 floating tensor into a freshly allocated Mat. The
// caller owns the returned Mat and must Close it.
func ToMat(t tensor.Dense) (cv.Mat, error) {
	if t.Rank() != 2 {
		return cv.Mat{}, fmt.Errorf("gocv: rank %d tensor cannot become a mat: %w", t.Rank(), hog.ErrType)
	}
	shape := t.Shape()
	dense := t.Contiguous()

	switch data := dense.Data().(type) {
	case []float32:
		m := cv.NewMatWithSize(shape[0], shape[1], cv.MatTypeCV32F)
		dst, err := m.DataPtrFloat32()
		if err != nil {
			m.Close()
			return cv.Mat{}, fmt.Errorf("gocv: %v: %w", err, hog.ErrType)
		}
		copy(dst, data)
		return m, nil
	case []float64:
		m := cv.NewMatWithSize(shape[0], shape[1], cv.MatTypeCV64F)
		dst, err := m.DataPtrFloat64()
		if err != nil {
			m.Close()
			return cv.Mat{}, fmt.Errorf("gocv: %v: %w", err, hog.ErrType)
		}
		copy(dst, data)
		return m, nil
	default:
		return cv.Mat{}, fmt.Errorf("gocv: unsupported element type %v: %w", types.TypeFromData(dense.Data()), hog.ErrType)
	}
}
