package hog

import (
	"github.com/itohio/hog/pkg/math/primitive"
)

// gradients computes per-channel central differences over a dense row-major
// (h, w, c) pixel buffer. Interior pixels use central differences, borders
// one-sided first differences; a single-pixel axis has zero gradient.
func gradients[F primitive.Float](pix []F, h, w, c int) (gy, gx []F) {
	gy = make([]F, len(pix))
	gx = make([]F, len(pix))

	rowStride := w * c
	for y := 0; y < h; y++ {
		row := y * rowStride
		for x := 0; x < w; x++ {
			at := row + x*c
			for ch := 0; ch < c; ch++ {
				i := at + ch
				switch {
				case w == 1:
					// gx stays 0
				case x == 0:
					gx[i] = pix[i+c] - pix[i]
				case x == w-1:
					gx[i] = pix[i] - pix[i-c]
				default:
					gx[i] = (pix[i+c] - pix[i-c]) / 2
				}
				switch {
				case h == 1:
					// gy stays 0
				case y == 0:
					gy[i] = pix[i+rowStride] - pix[i]
				case y == h-1:
					gy[i] = pix[i] - pix[i-rowStride]
				default:
					gy[i] = (pix[i+rowStride] - pix[i-rowStride]) / 2
				}
			}
		}
	}
	return gy, gx
}

// integralVotes bins per-pixel gradient votes directly into a zeroed
// (h+1, w+1, numBins) volume and prefix-sums it in place, producing the
// integral histogram. For multi-channel gradients the channel with the
// largest squared magnitude wins; ties go to the lowest channel index. A
// non-nil mask suppresses the vote of every pixel it reports truthy.
func integralVotes[F primitive.Float](gy, gx []F, h, w, c int, s *settings, mask func(y, x int) bool) []F {
	numBins := s.numBins
	hist := make([]F, (h+1)*(w+1)*numBins)

	var extent F
	switch s.binning {
	case Signed:
		extent = 2 * primitive.Pi[F]()
	default:
		extent = primitive.Pi[F]()
	}

	rowStride := w * c
	histRow := (w + 1) * numBins
	for y := 0; y < h; y++ {
		row := y * rowStride
		for x := 0; x < w; x++ {
			if mask != nil && mask(y, x) {
				continue
			}

			at := row + x*c
			dy, dx := gy[at], gx[at]
			best := dx*dx + dy*dy
			for ch := 1; ch < c; ch++ {
				cy, cx := gy[at+ch], gx[at+ch]
				if m := cx*cx + cy*cy; m > best {
					best = m
					dy, dx = cy, cx
				}
			}

			var weight F
			switch s.magnitude {
			case Square:
				weight = best
			case Sqrt:
				weight = primitive.Sqrt(primitive.Sqrt(best))
			default:
				weight = primitive.Sqrt(best)
			}

			// Orientation is measured from the row axis: a pure
			// horizontal gradient lands in the center bin, a pure
			// vertical one in the first.
			phi := primitive.Atan2(dx, dy)
			if phi < 0 {
				phi += extent
			}
			if phi >= extent {
				phi -= extent
			}

			// Dividing by the extent before scaling keeps axis-aligned
			// orientations on exact bin centers.
			pos := phi/extent*F(numBins) - F(0.5)
			lo := int(primitive.Floor(pos))
			alpha := pos - F(lo)
			hi := lo + 1
			// Out-of-range neighbours collapse onto the boundary
			// bin so the full vote weight is always deposited.
			if lo < 0 {
				lo = 0
			}
			if hi > numBins-1 {
				hi = numBins - 1
			}

			base := (y+1)*histRow + (x+1)*numBins
			hist[base+lo] += (1 - alpha) * weight
			hist[base+hi] += alpha * weight
		}
	}

	prefixSums(hist, h, w, numBins)
	return hist
}

// prefixSums turns the per-pixel vote volume into the integral histogram:
// first a running sum along every row, then along every column. Row and
// column zero are the all-zero border.
func prefixSums[F primitive.Float](hist []F, h, w, numBins int) {
	histRow := (w + 1) * numBins
	for y := 1; y <= h; y++ {
		row := y * histRow
		for x := 1; x <= w; x++ {
			at := row + x*numBins
			prev := at - numBins
			for k := 0; k < numBins; k++ {
				hist[at+k] += hist[prev+k]
			}
		}
	}
	for y := 1; y <= h; y++ {
		row := y * histRow
		above := row - histRow
		for i := numBins; i < histRow; i++ {
			hist[row+i] += hist[above+i]
		}
	}
}
