package hog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradients(t *testing.T) {
	// 3x3 ramp along x.
	pix := []float64{
		0, 1, 2,
		0, 1, 2,
		0, 1, 2,
	}
	gy, gx := gradients(pix, 3, 3, 1)

	for i := range gy {
		assert.Zero(t, gy[i], "flat along y")
	}
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1}, gx, "unit slope everywhere, borders one-sided")
}

func TestGradientsBorders(t *testing.T) {
	pix := []float64{0, 1, 4, 9}
	_, gx := gradients(pix, 1, 4, 1)
	assert.Equal(t, []float64{1, 2, 4, 5}, gx)

	gy, gx := gradients([]float64{7}, 1, 1, 1)
	assert.Zero(t, gy[0])
	assert.Zero(t, gx[0])
}

// voteBins runs a single-pixel vote and returns the bin weights.
func voteBins(t *testing.T, gy, gx float64, s *settings) []float64 {
	t.Helper()
	hist := integralVotes([]float64{gy}, []float64{gx}, 1, 1, 1, s, nil)
	// (2, 2, numBins) volume; the lone pixel votes land at (1, 1).
	return hist[3*s.numBins : 4*s.numBins]
}

func TestVotePlacement(t *testing.T) {
	s := defaultSettings()

	t.Run("row gradient hits the center bin", func(t *testing.T) {
		bins := voteBins(t, 0, 1, &s)
		assert.Equal(t, 1.0, bins[4])
		for k, v := range bins {
			if k != 4 {
				assert.Zero(t, v)
			}
		}
	})

	t.Run("column gradient collapses onto bin zero", func(t *testing.T) {
		bins := voteBins(t, 1, 0, &s)
		assert.Equal(t, 1.0, bins[0])
		for k, v := range bins {
			if k != 0 {
				assert.Zero(t, v)
			}
		}
	})

	t.Run("negative directions fold", func(t *testing.T) {
		bins := voteBins(t, 0, -1, &s)
		assert.Equal(t, 1.0, bins[4])

		bins = voteBins(t, -1, 0, &s)
		assert.Equal(t, 1.0, bins[0])
	})

	t.Run("diagonal splits between neighbours", func(t *testing.T) {
		// atan2(1, 1) = pi/4 -> position 1.75: bins 1 and 2 share the
		// sqrt(2) weight 1:3.
		bins := voteBins(t, 1, 1, &s)
		w := math.Sqrt2
		assert.InDelta(t, 0.25*w, bins[1], 1e-12)
		assert.InDelta(t, 0.75*w, bins[2], 1e-12)
	})

	t.Run("zero gradient votes nothing", func(t *testing.T) {
		for _, v := range voteBins(t, 0, 0, &s) {
			assert.Zero(t, v)
		}
	})
}

func TestVoteMagnitudes(t *testing.T) {
	s := defaultSettings()

	s.magnitude = Square
	assert.InDelta(t, 4.0, voteBins(t, 0, 2, &s)[4], 1e-12)

	s.magnitude = Sqrt
	assert.InDelta(t, 4.0, voteBins(t, 0, 16, &s)[4], 1e-12)

	s.magnitude = Identity
	assert.InDelta(t, 16.0, voteBins(t, 0, 16, &s)[4], 1e-12)
}

func TestVoteSignedBinning(t *testing.T) {
	s := defaultSettings()
	s.binning = Signed

	t.Run("opposite directions separate", func(t *testing.T) {
		pos := voteBins(t, 0, 1, &s)  // pi/2 of 2*pi -> position 1.75
		neg := voteBins(t, 0, -1, &s) // 3*pi/2 of 2*pi -> position 6.25
		assert.InDelta(t, 0.25, pos[1], 1e-12)
		assert.InDelta(t, 0.75, pos[2], 1e-12)
		assert.InDelta(t, 0.75, neg[6], 1e-12)
		assert.InDelta(t, 0.25, neg[7], 1e-12)
	})

	t.Run("pi lands on the center bin", func(t *testing.T) {
		// atan2(0, -1) = pi -> position 4 exactly.
		bins := voteBins(t, -1, 0, &s)
		assert.Equal(t, 1.0, bins[4])
	})
}

func TestVoteMask(t *testing.T) {
	s := defaultSettings()
	hist := integralVotes([]float64{0, 0}, []float64{1, 1}, 1, 2, 1, &s, func(y, x int) bool {
		return x == 0
	})
	// Only the unmasked pixel contributes to the total.
	total := hist[len(hist)-s.numBins:]
	assert.Equal(t, 1.0, total[4])
}

func TestVoteChannelSelection(t *testing.T) {
	s := defaultSettings()

	// Channel 1 has the stronger gradient and must win; its direction is a
	// column gradient, so the vote lands in bin 0 instead of bin 4.
	gy := []float64{0, 3}
	gx := []float64{1, 0}
	hist := integralVotes(gy, gx, 1, 1, 2, &s, nil)
	bins := hist[3*s.numBins : 4*s.numBins]
	assert.Equal(t, 3.0, bins[0])
	assert.Zero(t, bins[4])

	// Equal magnitudes tie-break to the lower channel.
	gy = []float64{0, 1}
	gx = []float64{1, 0}
	hist = integralVotes(gy, gx, 1, 1, 2, &s, nil)
	bins = hist[3*s.numBins : 4*s.numBins]
	assert.Equal(t, 1.0, bins[4], "channel 0 wins the tie")
	assert.Zero(t, bins[0])
}

func TestPrefixSums(t *testing.T) {
	const h, w, nb = 3, 4, 2
	votes := make([]float64, h*w*nb)
	for i := range votes {
		votes[i] = float64(i%7) * 0.5
	}

	hist := make([]float64, (h+1)*(w+1)*nb)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for k := 0; k < nb; k++ {
				hist[((y+1)*(w+1)+(x+1))*nb+k] = votes[(y*w+x)*nb+k]
			}
		}
	}
	prefixSums(hist, h, w, nb)

	for y := 0; y <= h; y++ {
		for x := 0; x <= w; x++ {
			for k := 0; k < nb; k++ {
				want := 0.0
				for yy := 0; yy < y; yy++ {
					for xx := 0; xx < x; xx++ {
						want += votes[(yy*w+xx)*nb+k]
					}
				}
				require.InDelta(t, want, hist[(y*(w+1)+x)*nb+k], 1e-12,
					"integral mismatch at (%d, %d, %d)", y, x, k)
			}
		}
	}
}
