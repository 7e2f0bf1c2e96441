package hog

import (
	"bytes"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Defaults used when an option is not supplied.
const (
	DefaultNumBins  = 9
	DefaultCellSize = 8
	DefaultBlock    = 16
	DefaultEpsilon  = 1e-5
	// DefaultClipNorm is the effective clipping threshold of the
	// hysteresis norms when no explicit value is configured.
	DefaultClipNorm = 0.2
)

// settings is the resolved, validated configuration of a descriptor. Pairs
// are in (y, x) order, matching Bounds.
type settings struct {
	numBins          int
	cellY, cellX     int
	blockY, blockX   int
	strideY, strideX int
	binning          Binning
	magnitude        Magnitude
	blockNorm        BlockNorm
	clipNorm         float64
	hasClip          bool
	epsilon          float64
}

func defaultSettings() settings {
	return settings{
		numBins: DefaultNumBins,
		cellY:   DefaultCellSize, cellX: DefaultCellSize,
		blockY: DefaultBlock, blockX: DefaultBlock,
		strideY: DefaultCellSize, strideX: DefaultCellSize,
		binning:   Unsigned,
		magnitude: Identity,
		blockNorm: L1,
		epsilon:   DefaultEpsilon,
	}
}

func (s *settings) validate() error {
	if s.numBins <= 0 {
		return fmt.Errorf("hog: n_bins must be positive, got %d: %w", s.numBins, ErrValue)
	}
	pairs := []struct {
		name string
		y, x int
	}{
		{"cell_size", s.cellY, s.cellX},
		{"block_size", s.blockY, s.blockX},
		{"block_stride", s.strideY, s.strideX},
	}
	for _, p := range pairs {
		if p.y <= 0 || p.x <= 0 {
			return fmt.Errorf("hog: %s must be positive, got (%d, %d): %w", p.name, p.y, p.x, ErrValue)
		}
	}
	if s.blockY%s.cellY != 0 || s.blockX%s.cellX != 0 {
		return fmt.Errorf("hog: block_size (%d, %d) is not a multiple of cell_size (%d, %d): %w",
			s.blockY, s.blockX, s.cellY, s.cellX, ErrValue)
	}
	if s.strideY%s.cellY != 0 || s.strideX%s.cellX != 0 {
		return fmt.Errorf("hog: block_stride (%d, %d) is not a multiple of cell_size (%d, %d): %w",
			s.strideY, s.strideX, s.cellY, s.cellX, ErrValue)
	}
	if !s.binning.valid() {
		return fmt.Errorf("hog: invalid binning %d: %w", s.binning, ErrValue)
	}
	if !s.magnitude.valid() {
		return fmt.Errorf("hog: invalid magnitude %d: %w", s.magnitude, ErrValue)
	}
	if !s.blockNorm.valid() {
		return fmt.Errorf("hog: invalid block norm %d: %w", s.blockNorm, ErrValue)
	}
	if s.hasClip && !(s.clipNorm > 0) {
		return fmt.Errorf("hog: clip_norm must be positive, got %v: %w", s.clipNorm, ErrValue)
	}
	if math.IsNaN(s.epsilon) || s.epsilon < 0 {
		return fmt.Errorf("hog: epsilon must be non-negative, got %v: %w", s.epsilon, ErrValue)
	}
	return nil
}

// effectiveClip returns the clipping threshold used by the hysteresis norms.
func (s *settings) effectiveClip() float64 {
	if s.hasClip {
		return s.clipNorm
	}
	return DefaultClipNorm
}

// cellsPerBlock returns the block extent in cells, (y, x).
func (s *settings) cellsPerBlock() (int, int) {
	return s.blockY / s.cellY, s.blockX / s.cellX
}

// Option configures a Descriptor at construction.
type Option func(*settings)

// WithNumBins sets the number of orientation bins.
func WithNumBins(n int) Option {
	return func(s *settings) { s.numBins = n }
}

// WithCellSize sets the cell extents in pixels, (y, x).
func WithCellSize(y, x int) Option {
	return func(s *settings) { s.cellY, s.cellX = y, x }
}

// WithBlockSize sets the block extents in pixels, (y, x). Each extent must be
// an integer multiple of the cell extent on the same axis.
func WithBlockSize(y, x int) Option {
	return func(s *settings) { s.blockY, s.blockX = y, x }
}

// WithBlockStride sets the block stride in pixels, (y, x). Each extent must
// be an integer multiple of the cell extent on the same axis.
func WithBlockStride(y, x int) Option {
	return func(s *settings) { s.strideY, s.strideX = y, x }
}

// WithBinning selects unsigned or signed orientation folding.
func WithBinning(b Binning) Option {
	return func(s *settings) { s.binning = b }
}

// WithMagnitude selects the vote weight function.
func WithMagnitude(m Magnitude) Option {
	return func(s *settings) { s.magnitude = m }
}

// WithBlockNorm selects the block normalization scheme.
func WithBlockNorm(n BlockNorm) Option {
	return func(s *settings) { s.blockNorm = n }
}

// WithClipNorm sets the clipping threshold of the hysteresis norms. The
// value is retained, but unused, with non-hysteresis norms.
func WithClipNorm(v float64) Option {
	return func(s *settings) { s.clipNorm = v; s.hasClip = true }
}

// WithEpsilon sets the normalization stabilizer. Zero is allowed.
func WithEpsilon(v float64) Option {
	return func(s *settings) { s.epsilon = v }
}

// Config is the declarative form of the descriptor configuration. Zero
// values select the defaults. Pairs are in (y, x) order.
type Config struct {
	NumBins     int      `yaml:"n_bins"`
	CellSize    *[2]int  `yaml:"cell_size"`
	BlockSize   *[2]int  `yaml:"block_size"`
	BlockStride *[2]int  `yaml:"block_stride"`
	Binning     string   `yaml:"binning"`
	Magnitude   string   `yaml:"magnitude"`
	BlockNorm   string   `yaml:"block_norm"`
	ClipNorm    *float64 `yaml:"clip_norm"`
	Epsilon     *float64 `yaml:"epsilon"`
}

// ParseConfigYAML decodes a strict YAML document into a Config. Unknown keys
// are a type error, as is a value of the wrong kind.
func ParseConfigYAML(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("hog: %v: %w", err, ErrType)
	}
	return cfg, nil
}

// options converts the declarative form into constructor options.
func (c Config) options() ([]Option, error) {
	var opts []Option
	if c.NumBins != 0 {
		opts = append(opts, WithNumBins(c.NumBins))
	}
	if c.CellSize != nil {
		opts = append(opts, WithCellSize(c.CellSize[0], c.CellSize[1]))
	}
	if c.BlockSize != nil {
		opts = append(opts, WithBlockSize(c.BlockSize[0], c.BlockSize[1]))
	}
	if c.BlockStride != nil {
		opts = append(opts, WithBlockStride(c.BlockStride[0], c.BlockStride[1]))
	}
	if c.Binning != "" {
		b, err := ParseBinning(c.Binning)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithBinning(b))
	}
	if c.Magnitude != "" {
		m, err := ParseMagnitude(c.Magnitude)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMagnitude(m))
	}
	if c.BlockNorm != "" {
		n, err := ParseBlockNorm(c.BlockNorm)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithBlockNorm(n))
	}
	if c.ClipNorm != nil {
		opts = append(opts, WithClipNorm(*c.ClipNorm))
	}
	if c.Epsilon != nil {
		opts = append(opts, WithEpsilon(*c.Epsilon))
	}
	return opts, nil
}
