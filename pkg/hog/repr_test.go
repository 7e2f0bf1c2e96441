package hog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reprConfigs() [][]Option {
	return [][]Option{
		nil,
		{WithBlockNorm(L1Hys), WithClipNorm(1)},
		{WithBlockNorm(L2Hys), WithClipNorm(1e-4)},
		{WithBinning(Signed), WithClipNorm(1e-2)},
		{WithMagnitude(Identity), WithBinning(Unsigned), WithEpsilon(1e-3)},
		{WithCellSize(2, 2), WithNumBins(7)},
		{WithBlockSize(8, 8), WithBlockStride(8, 8)},
		{WithCellSize(4, 4), WithBlockSize(8, 12), WithBlockStride(4, 8)},
		{WithMagnitude(Sqrt), WithBlockNorm(L1Sqrt), WithEpsilon(0)},
	}
}

func TestReprRoundTrip(t *testing.T) {
	for i, opts := range reprConfigs() {
		d, err := New(opts...)
		require.NoError(t, err, "config %d", i)

		text := d.String()
		d2, err := Parse(text)
		require.NoError(t, err, text)

		assert.Equal(t, d.cfg, d2.cfg, text)
		assert.Equal(t, text, d2.String())
	}
}

func TestReprShowsDefaults(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	text := d.String()
	assert.Contains(t, text, "hog.WithNumBins(9)")
	assert.Contains(t, text, "hog.WithCellSize(8, 8)")
	assert.Contains(t, text, "hog.WithBinning(hog.Unsigned)")
	assert.Contains(t, text, "hog.WithEpsilon(1e-05)")
	assert.NotContains(t, text, "ClipNorm", "unset clip norm stays out of the repr")
}

func TestParseRejects(t *testing.T) {
	t.Run("not a constructor", func(t *testing.T) {
		_, err := Parse("garbage")
		assert.ErrorIs(t, err, ErrValue)
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := Parse("hog.New(hog.WithFrobnication(1))")
		assert.ErrorIs(t, err, ErrType)
	})

	t.Run("wrong argument kind", func(t *testing.T) {
		_, err := Parse("hog.New(hog.WithNumBins(many))")
		assert.ErrorIs(t, err, ErrType)

		_, err = Parse("hog.New(hog.WithEpsilon(soon))")
		assert.ErrorIs(t, err, ErrType)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := Parse("hog.New(hog.WithCellSize(8))")
		assert.ErrorIs(t, err, ErrType)
	})

	t.Run("unknown enum value", func(t *testing.T) {
		_, err := Parse("hog.New(hog.WithBinning(hog.Sideways))")
		assert.ErrorIs(t, err, ErrType)
	})

	t.Run("parsed values are validated", func(t *testing.T) {
		_, err := Parse("hog.New(hog.WithNumBins(-1))")
		assert.ErrorIs(t, err, ErrValue)
	})
}
