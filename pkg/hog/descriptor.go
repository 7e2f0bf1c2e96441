package hog

import (
	"fmt"
	"time"

	"github.com/itohio/hog/pkg/logger"
	"github.com/itohio/hog/pkg/math/primitive"
	"github.com/itohio/hog/pkg/tensor"
	"github.com/itohio/hog/pkg/tensor/types"
)

// Descriptor computes HOG features over an integral histogram. It is created
// with an immutable configuration; Compute may be called any number of
// times, each call replacing the previous state atomically. A descriptor is
// not safe for concurrent use; distinct descriptors are fully independent.
type Descriptor struct {
	cfg settings

	hasData    bool
	imgH, imgW int
	hist       tensor.Dense // (H+1, W+1, numBins)
	feat       tensor.Dense // (nby, nbx, cellsY, cellsX, numBins)
}

// New constructs a descriptor from the given options. Value-range violations
// are reported as ErrValue.
func New(opts ...Option) (*Descriptor, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &Descriptor{cfg: s}, nil
}

// NewFromConfig constructs a descriptor from the declarative configuration.
func NewFromConfig(cfg Config) (*Descriptor, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	return New(opts...)
}

// NumBins returns the number of orientation bins.
func (d *Descriptor) NumBins() int { return d.cfg.numBins }

// CellSize returns the cell extents in pixels, (y, x).
func (d *Descriptor) CellSize() (int, int) { return d.cfg.cellY, d.cfg.cellX }

// BlockSize returns the block extents in pixels, (y, x).
func (d *Descriptor) BlockSize() (int, int) { return d.cfg.blockY, d.cfg.blockX }

// BlockStride returns the block stride in pixels, (y, x).
func (d *Descriptor) BlockStride() (int, int) { return d.cfg.strideY, d.cfg.strideX }

// Binning returns the configured orientation folding.
func (d *Descriptor) Binning() Binning { return d.cfg.binning }

// Magnitude returns the configured vote weight function.
func (d *Descriptor) Magnitude() Magnitude { return d.cfg.magnitude }

// BlockNorm returns the configured block normalization scheme.
func (d *Descriptor) BlockNorm() BlockNorm { return d.cfg.blockNorm }

// ClipNorm returns the configured clipping threshold and whether one was
// explicitly set. Hysteresis norms fall back to DefaultClipNorm when unset.
func (d *Descriptor) ClipNorm() (float64, bool) { return d.cfg.clipNorm, d.cfg.hasClip }

// Epsilon returns the normalization stabilizer.
func (d *Descriptor) Epsilon() float64 { return d.cfg.epsilon }

// HasData reports whether Compute has succeeded since construction.
func (d *Descriptor) HasData() bool { return d.hasData }

// ImageShape returns the extents of the last computed image, (0, 0) before
// the first Compute.
func (d *Descriptor) ImageShape() (h, w int) { return d.imgH, d.imgW }

// Histogram returns the integral histogram of shape (H+1, W+1, NumBins), or
// nil before the first Compute.
func (d *Descriptor) Histogram() types.Tensor {
	if !d.hasData {
		return nil
	}
	return d.hist
}

// Features returns the full-image block descriptors of shape
// (nby, nbx, cellsY, cellsX, NumBins), or nil before the first Compute.
func (d *Descriptor) Features() types.Tensor {
	if !d.hasData {
		return nil
	}
	return d.feat
}

// floatKind maps an image element type to the working precision: floats keep
// their precision, integers and booleans are promoted to 64-bit floats, and
// everything else is rejected with a type error.
func floatKind(dt types.DataType) (types.DataType, error) {
	switch dt {
	case types.FP32:
		return types.FP32, nil
	case types.FP64:
		return types.FP64, nil
	case types.BOOL, types.INT8, types.UINT8, types.INT16, types.UINT16, types.INT32, types.UINT32:
		return types.FP64, nil
	default:
		return types.UNKNOWN, fmt.Errorf("hog: unsupported element type %v: %w", dt, ErrType)
	}
}

// imageGeometry validates rank and channel count of an image-shaped tensor
// and returns (h, w, c).
func imageGeometry(t types.Tensor) (h, w, c int, err error) {
	shape := t.Shape()
	switch t.Rank() {
	case 2:
		return shape[0], shape[1], 1, nil
	case 3:
		c = shape[2]
		if c != 1 && c != 3 && c != 4 {
			return 0, 0, 0, fmt.Errorf("hog: %d channels, want 1, 3 or 4: %w", c, ErrShape)
		}
		return shape[0], shape[1], c, nil
	default:
		return 0, 0, 0, fmt.Errorf("hog: image rank %d, want 2 or 3: %w", t.Rank(), ErrShape)
	}
}

// densify copies an arbitrary strided tensor into a contiguous row-major
// buffer of the requested floating precision.
func densify(t types.Tensor, dt types.DataType) tensor.Dense {
	work := tensor.New(dt, t.Shape().Clone())
	work.Copy(t)
	return work
}

// Compute estimates gradients of the image, bins the per-pixel votes into
// the integral histogram, and precomputes the full-image feature tensor.
// The image may be rank 2 (H, W) or rank 3 (H, W, C) with C in {1, 3, 4};
// integer images are promoted to 64-bit floats. On failure the previously
// computed state is left untouched.
func (d *Descriptor) Compute(image types.Tensor, opts ...ComputeOption) error {
	if image == nil {
		return fmt.Errorf("hog: nil image: %w", ErrType)
	}

	var o computeOpts
	for _, opt := range opts {
		opt(&o)
	}

	h, w, c, err := imageGeometry(image)
	if err != nil {
		return err
	}
	dt, err := floatKind(image.DataType())
	if err != nil {
		return err
	}
	mask, err := o.resolveMask(h, w)
	if err != nil {
		return err
	}

	start := time.Now()
	work := densify(image, dt)
	switch pix := work.Data().(type) {
	case []float32:
		gy, gx := gradients(pix, h, w, c)
		d.publish(h, w, computeState(gy, gx, h, w, c, &d.cfg, mask))
	case []float64:
		gy, gx := gradients(pix, h, w, c)
		d.publish(h, w, computeState(gy, gx, h, w, c, &d.cfg, mask))
	}
	logger.Log.Debug().
		Int("height", h).Int("width", w).Int("channels", c).
		Dur("elapsed", time.Since(start)).
		Msg("hog: compute")
	return nil
}

// ComputeGradients skips gradient estimation and bins the provided
// derivative pair (dy, dx) directly. Both tensors must be image-shaped and
// have identical extents; multi-channel pairs go through the same
// largest-magnitude channel selection as the image path.
func (d *Descriptor) ComputeGradients(dy, dx types.Tensor, opts ...ComputeOption) error {
	if dy == nil || dx == nil {
		return fmt.Errorf("hog: nil gradient: %w", ErrType)
	}

	var o computeOpts
	for _, opt := range opts {
		opt(&o)
	}

	h, w, c, err := imageGeometry(dy)
	if err != nil {
		return err
	}
	if !dy.Shape().Equal(dx.Shape()) {
		return fmt.Errorf("hog: gradient extents %v and %v differ: %w", dy.Shape(), dx.Shape(), ErrValue)
	}
	dtY, err := floatKind(dy.DataType())
	if err != nil {
		return err
	}
	dtX, err := floatKind(dx.DataType())
	if err != nil {
		return err
	}
	dt := dtY
	if dtX == types.FP64 {
		dt = types.FP64
	}
	mask, err := o.resolveMask(h, w)
	if err != nil {
		return err
	}

	workY := densify(dy, dt)
	workX := densify(dx, dt)
	switch gy := workY.Data().(type) {
	case []float32:
		gx := workX.Data().([]float32)
		d.publish(h, w, computeState(gy, gx, h, w, c, &d.cfg, mask))
	case []float64:
		gx := workX.Data().([]float64)
		d.publish(h, w, computeState(gy, gx, h, w, c, &d.cfg, mask))
	}
	return nil
}

// state carries the outcome of a compute run in its untyped form.
type state struct {
	hist, feat any
	nby, nbx   int
}

// computeState runs voting, integral accumulation, and full-image feature
// extraction over dense gradient buffers.
func computeState[F primitive.Float](gy, gx []F, h, w, c int, s *settings, mask MaskFunc) state {
	hist := integralVotes(gy, gx, h, w, c, s, mask)
	feat, nby, nbx := extractBlocks(hist, w, s, 0, 0, h, w)
	return state{hist: hist, feat: feat, nby: nby, nbx: nbx}
}

// publish atomically replaces the computed state.
func (d *Descriptor) publish(h, w int, st state) {
	cellsY, cellsX := d.cfg.cellsPerBlock()
	histShape := tensor.NewShape(h+1, w+1, d.cfg.numBins)
	featShape := tensor.NewShape(st.nby, st.nbx, cellsY, cellsX, d.cfg.numBins)

	switch hist := st.hist.(type) {
	case []float32:
		d.hist = tensor.FromArray(histShape, hist)
		d.feat = tensor.FromArray(featShape, st.feat.([]float32))
	case []float64:
		d.hist = tensor.FromArray(histShape, hist)
		d.feat = tensor.FromArray(featShape, st.feat.([]float64))
	}
	d.imgH, d.imgW = h, w
	d.hasData = true
}

// Bounds is a rectangular ROI. Y and Height address the first image axis,
// X and Width the second.
type Bounds struct {
	Y, X          int
	Height, Width int
}

func (d *Descriptor) checkBounds(b Bounds) error {
	if b.Y < 0 || b.X < 0 || b.Height < 0 || b.Width < 0 ||
		b.Y+b.Height > d.imgH || b.X+b.Width > d.imgW {
		return fmt.Errorf("hog: bounds (%d, %d, %d, %d) outside image (%d, %d): %w",
			b.Y, b.X, b.Height, b.Width, d.imgH, d.imgW, ErrValue)
	}
	return nil
}

// query extracts the ROI's block tensor in the histogram's precision.
func (d *Descriptor) query(b Bounds) tensor.Dense {
	cellsY, cellsX := d.cfg.cellsPerBlock()
	switch hist := d.hist.Data().(type) {
	case []float32:
		out, nby, nbx := extractBlocks(hist, d.imgW, &d.cfg, b.Y, b.X, b.Height, b.Width)
		return tensor.FromArray(tensor.NewShape(nby, nbx, cellsY, cellsX, d.cfg.numBins), out)
	default:
		out, nby, nbx := extractBlocks(d.hist.Data().([]float64), d.imgW, &d.cfg, b.Y, b.X, b.Height, b.Width)
		return tensor.FromArray(tensor.NewShape(nby, nbx, cellsY, cellsX, d.cfg.numBins), out)
	}
}

// Query returns the normalized block tensor of shape
// (nby, nbx, cellsY, cellsX, NumBins) for the ROI, with blocks anchored at
// the ROI origin and tiled at the configured stride. A ROI smaller than the
// block yields an empty tensor; a ROI outside the image is a value error.
// Before the first Compute the result is nil.
func (d *Descriptor) Query(b Bounds) (types.Tensor, error) {
	if !d.hasData {
		return nil, nil
	}
	if err := d.checkBounds(b); err != nil {
		return nil, err
	}
	return d.query(b), nil
}

// QueryBatch extracts one block tensor per ROI, stacked into a tensor of
// shape (N, nby, nbx, cellsY, cellsX, NumBins). All ROIs must have identical
// extents so the stacked tensor is rectangular; an empty batch yields a
// (0, 0, 0, 0, 0, 0) tensor, as does a batch issued before the first
// Compute.
func (d *Descriptor) QueryBatch(bounds []Bounds) (types.Tensor, error) {
	empty := tensor.NewShape(0, 0, 0, 0, 0, 0)
	if !d.hasData || len(bounds) == 0 {
		return tensor.New(types.FP64, empty), nil
	}

	first := bounds[0]
	for _, b := range bounds[1:] {
		if b.Height != first.Height || b.Width != first.Width {
			return nil, fmt.Errorf("hog: batch extents (%d, %d) and (%d, %d) differ: %w",
				first.Height, first.Width, b.Height, b.Width, ErrValue)
		}
	}
	for _, b := range bounds {
		if err := d.checkBounds(b); err != nil {
			return nil, err
		}
	}

	cellsY, cellsX := d.cfg.cellsPerBlock()
	n := len(bounds)
	switch d.hist.Data().(type) {
	case []float32:
		return stackQueries[float32](d, bounds, n, cellsY, cellsX), nil
	default:
		return stackQueries[float64](d, bounds, n, cellsY, cellsX), nil
	}
}

func stackQueries[F primitive.Float](d *Descriptor, bounds []Bounds, n, cellsY, cellsX int) tensor.Dense {
	hist := d.hist.Data().([]F)
	b0 := bounds[0]
	nby := blockCount(b0.Height, d.cfg.blockY, d.cfg.strideY)
	nbx := blockCount(b0.Width, d.cfg.blockX, d.cfg.strideX)
	blockLen := nby * nbx * cellsY * cellsX * d.cfg.numBins

	out := make([]F, n*blockLen)
	for i, b := range bounds {
		part, _, _ := extractBlocks(hist, d.imgW, &d.cfg, b.Y, b.X, b.Height, b.Width)
		copy(out[i*blockLen:(i+1)*blockLen], part)
	}
	return tensor.FromArray(tensor.NewShape(n, nby, nbx, cellsY, cellsX, d.cfg.numBins), out)
}
