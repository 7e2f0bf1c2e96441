package hog

import (
	"github.com/itohio/hog/pkg/math/primitive"
)

// blockCount returns how many blocks fit into an extent at the configured
// stride; zero when the extent is smaller than the block.
func blockCount(extent, block, stride int) int {
	if extent < block {
		return 0
	}
	return (extent-block)/stride + 1
}

// rectSum adds the votes of bin k over the rectangle rows [y0, y1) x cols
// [x0, x1) using the inclusion-exclusion identity on the integral histogram.
func rectSum[F primitive.Float](hist []F, histRow, numBins, y0, y1, x0, x1, k int) F {
	a := hist[y1*histRow+x1*numBins+k]
	b := hist[y0*histRow+x1*numBins+k]
	c := hist[y1*histRow+x0*numBins+k]
	d := hist[y0*histRow+x0*numBins+k]
	return a - b - c + d
}

// extractBlocks synthesizes normalized block descriptors for every block
// position inside the ROI (y0, x0, h, w), laid out row-major as
// (nby, nbx, cellsY, cellsX, numBins). Cell rectangles are summed straight
// from the integral histogram, so block placement is free of any cell grid
// of the whole image.
func extractBlocks[F primitive.Float](hist []F, imgW int, s *settings, y0, x0, h, w int) (out []F, nby, nbx int) {
	numBins := s.numBins
	cellsY, cellsX := s.cellsPerBlock()
	nby = blockCount(h, s.blockY, s.strideY)
	nbx = blockCount(w, s.blockX, s.strideX)
	blockLen := cellsY * cellsX * numBins
	out = make([]F, nby*nbx*blockLen)

	histRow := (imgW + 1) * numBins
	eps := F(s.epsilon)
	clip := F(s.effectiveClip())

	for by := 0; by < nby; by++ {
		oy := y0 + by*s.strideY
		for bx := 0; bx < nbx; bx++ {
			ox := x0 + bx*s.strideX
			block := out[(by*nbx+bx)*blockLen : (by*nbx+bx+1)*blockLen]

			i := 0
			for cy := 0; cy < cellsY; cy++ {
				ry := oy + cy*s.cellY
				for cx := 0; cx < cellsX; cx++ {
					rx := ox + cx*s.cellX
					for k := 0; k < numBins; k++ {
						block[i] = rectSum(hist, histRow, numBins, ry, ry+s.cellY, rx, rx+s.cellX, k)
						i++
					}
				}
			}

			normalizeBlock(block, s.blockNorm, eps, clip)
		}
	}
	return out, nby, nbx
}

// normalizeBlock applies the configured block norm in place. A zero
// denominator leaves the vector untouched, so zero-gradient blocks come out
// as finite zeros even with a zero epsilon.
func normalizeBlock[F primitive.Float](v []F, norm BlockNorm, eps, clip F) {
	switch norm {
	case L1:
		scaleL1(v, eps)
	case L1Sqrt:
		scaleL1(v, eps)
		for i := range v {
			v[i] = primitive.Sqrt(v[i])
		}
	case L1Hys:
		scaleL1(v, eps)
		clampTo(v, clip)
		scaleL1(v, eps)
	case L2:
		scaleL2(v, eps)
	case L2Hys:
		scaleL2(v, eps)
		clampTo(v, clip)
		scaleL2(v, eps)
	}
}

func scaleL1[F primitive.Float](v []F, eps F) {
	var sum F
	for _, x := range v {
		if x < 0 {
			sum -= x
		} else {
			sum += x
		}
	}
	denom := sum + eps
	if denom == 0 {
		return
	}
	for i := range v {
		v[i] /= denom
	}
}

func scaleL2[F primitive.Float](v []F, eps F) {
	var sum F
	for _, x := range v {
		sum += x * x
	}
	denom := primitive.Sqrt(sum + eps*eps)
	if denom == 0 {
		return
	}
	for i := range v {
		v[i] /= denom
	}
}

func clampTo[F primitive.Float](v []F, limit F) {
	for i := range v {
		if v[i] > limit {
			v[i] = limit
		}
	}
}
