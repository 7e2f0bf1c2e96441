package gorgonia

import (
	"testing"

	"github.com/itohio/hog/pkg/hog"
	"github.com/itohio/hog/pkg/tensor"
	"github.com/itohio/hog/pkg/tensor/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gt "gorgonia.org/tensor"
)

func TestFromDense(t *testing.T) {
	src := gt.New(gt.WithShape(2, 3), gt.WithBacking([]float64{0, 1, 2, 3, 4, 5}))

	view, err := FromDense(src)
	require.NoError(t, err)

	assert.Equal(t, types.FP64, view.DataType())
	assert.Equal(t, tensor.NewShape(2, 3), view.Shape())
	assert.Equal(t, 4.0, view.At(1, 1))

	// The view shares the backing slice.
	view.SetAt(-1, 0, 0)
	got, err := src.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, -1.0, got)
}

func TestFromDenseScalar(t *testing.T) {
	src := gt.New(gt.FromScalar(3.5))
	view, err := FromDense(src)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Rank())
	assert.Equal(t, 3.5, view.At())
}

func TestFromDenseRejects(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		_, err := FromDense(nil)
		assert.ErrorIs(t, err, hog.ErrType)
	})

	t.Run("64-bit integers", func(t *testing.T) {
		src := gt.New(gt.WithShape(2), gt.WithBacking([]int64{1, 2}))
		_, err := FromDense(src)
		assert.ErrorIs(t, err, hog.ErrType)
	})

	t.Run("rank above five", func(t *testing.T) {
		src := gt.New(gt.WithShape(1, 1, 1, 1, 1, 2), gt.WithBacking([]float32{1, 2}))
		_, err := FromDense(src)
		assert.ErrorIs(t, err, hog.ErrType)
	})
}

func TestToDenseRoundTrip(t *testing.T) {
	orig := tensor.FromArray(tensor.NewShape(2, 2), []float32{1, 2, 3, 4})

	dense, err := ToDense(orig)
	require.NoError(t, err)

	back, err := FromDense(dense)
	require.NoError(t, err)
	assert.Equal(t, orig.Shape(), back.Shape())
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, orig.At(y, x), back.At(y, x))
		}
	}
}

func TestComputeFromGorgonia(t *testing.T) {
	// End to end: a gorgonia-backed image drives the descriptor.
	data := make([]float64, 16*16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			data[y*16+x] = 1
		}
	}
	src := gt.New(gt.WithShape(16, 16), gt.WithBacking(data))

	img, err := FromDense(src)
	require.NoError(t, err)

	d, err := hog.New()
	require.NoError(t, err)
	require.NoError(t, d.Compute(img))
	assert.Equal(t, 36, d.Features().Size())
}
