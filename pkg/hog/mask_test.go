package hog

import (
	"testing"

	"github.com/itohio/hog/pkg/tensor"
	"github.com/itohio/hog/pkg/tensor/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepImage is zero in the top half and one in the bottom half, so the only
// gradient rows are h/2-1 and h/2.
func stepImage(h, w int) tensor.Dense {
	img := tensor.New(types.FP64, tensor.NewShape(h, w))
	for y := h / 2; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetAt(1, y, x)
		}
	}
	return img
}

func requireAllZero(t *testing.T, feat types.Tensor) {
	t.Helper()
	require.NotZero(t, feat.Size())
	for _, v := range flatten(feat) {
		require.Zero(t, v)
	}
}

func TestMaskDense(t *testing.T) {
	const h, w = 128, 64
	img := stepImage(h, w)

	for _, dt := range []types.DataType{types.BOOL, types.UINT8} {
		t.Run(dt.String(), func(t *testing.T) {
			mask := tensor.New(dt, tensor.NewShape(h, w))
			for y := h/2 - 1; y <= h/2; y++ {
				for x := 0; x < w; x++ {
					mask.SetAt(1, y, x)
				}
			}

			d, err := New()
			require.NoError(t, err)
			require.NoError(t, d.Compute(img, WithMask(mask)))
			requireAllZero(t, d.Features())

			// The gradient-pair path honors the same mask.
			dy, dx := numericalGradient(img)
			d2, err := New()
			require.NoError(t, err)
			require.NoError(t, d2.ComputeGradients(dy, dx, WithMask(mask)))
			assert.Equal(t, d.Features().Data(), d2.Features().Data())
		})
	}
}

func TestMaskFunc(t *testing.T) {
	const h, w = 128, 64
	img := stepImage(h, w)

	d, err := New()
	require.NoError(t, err)
	require.NoError(t, d.Compute(img, WithMaskFunc(func(y, x int) bool {
		return y >= h/2-1 && y <= h/2+1
	})))
	requireAllZero(t, d.Features())
}

func TestMaskStrided(t *testing.T) {
	// A reversed mask view must behave like its materialized copy.
	const h, w = 32, 16
	img := randomImage(h, w, 23)

	bits := make([]bool, h*w)
	for x := 0; x < w; x++ {
		bits[5*w+x] = true
	}
	mask := tensor.FromBools(tensor.NewShape(h, w), bits).Reverse(0)

	d1, err := New()
	require.NoError(t, err)
	require.NoError(t, d1.Compute(img, WithMask(mask)))

	d2, err := New()
	require.NoError(t, err)
	require.NoError(t, d2.Compute(img, WithMask(mask.Contiguous())))

	assert.Equal(t, d2.Features().Data(), d1.Features().Data())
}

func TestMaskInvalid(t *testing.T) {
	const h, w = 32, 16
	img := stepImage(h, w)

	d, err := New()
	require.NoError(t, err)

	t.Run("wrong dtype", func(t *testing.T) {
		mask := tensor.New(types.FP64, tensor.NewShape(h, w))
		assert.ErrorIs(t, d.Compute(img, WithMask(mask)), ErrValue)
	})

	t.Run("scalar", func(t *testing.T) {
		mask := tensor.New(types.UINT8, tensor.NewShape())
		assert.ErrorIs(t, d.Compute(img, WithMask(mask)), ErrValue)
	})

	t.Run("wrong rank", func(t *testing.T) {
		mask := tensor.New(types.BOOL, tensor.NewShape(h, w, 1))
		assert.ErrorIs(t, d.Compute(img, WithMask(mask)), ErrValue)
	})

	t.Run("wrong extents", func(t *testing.T) {
		mask := tensor.New(types.BOOL, tensor.NewShape(w, h))
		assert.ErrorIs(t, d.Compute(img, WithMask(mask)), ErrValue)
	})

	t.Run("mask failure keeps state", func(t *testing.T) {
		require.NoError(t, d.Compute(img))
		want := flatten(d.Features())
		bad := tensor.New(types.FP32, tensor.NewShape(h, w))
		require.Error(t, d.Compute(img, WithMask(bad)))
		assert.Equal(t, want, flatten(d.Features()))
	})
}
