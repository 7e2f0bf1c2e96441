package hog

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/itohio/hog/pkg/tensor"
	"github.com/itohio/hog/pkg/tensor/types"
)

// Persisted state layout (little-endian):
//
//	magic "IHOG", u16 version
//	u32 numBins, u32x2 cellSize (y, x), u32x2 blockSize, u32x2 blockStride
//	u8 binning, u8 magnitude, u8 blockNorm
//	u8 clipSet, f64 clipNorm bits, f64 epsilon bits
//	u8 hasData
//	when hasData: u64x2 image shape, histogram tensor, features tensor
//
// Tensors are encoded as u8 dtype tag, u8 rank, u64 extents, and the
// row-major payload of IEEE bit patterns. Floating buffers round-trip
// bit-exactly.
const (
	serializeMagic   = "IHOG"
	serializeVersion = 1
)

// MarshalBinary encodes the full descriptor state, configuration and
// computed tensors included.
func (d *Descriptor) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 64+histBytes(d))
	out = append(out, serializeMagic...)
	out = binary.LittleEndian.AppendUint16(out, serializeVersion)

	s := &d.cfg
	for _, v := range []int{s.numBins, s.cellY, s.cellX, s.blockY, s.blockX, s.strideY, s.strideX} {
		out = binary.LittleEndian.AppendUint32(out, uint32(v))
	}
	out = append(out, uint8(s.binning), uint8(s.magnitude), uint8(s.blockNorm))
	out = append(out, boolByte(s.hasClip))
	out = binary.LittleEndian.AppendUint64(out, math.Float64bits(s.clipNorm))
	out = binary.LittleEndian.AppendUint64(out, math.Float64bits(s.epsilon))

	out = append(out, boolByte(d.hasData))
	if d.hasData {
		out = binary.LittleEndian.AppendUint64(out, uint64(d.imgH))
		out = binary.LittleEndian.AppendUint64(out, uint64(d.imgW))
		var err error
		if out, err = appendTensor(out, d.hist); err != nil {
			return nil, err
		}
		if out, err = appendTensor(out, d.feat); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UnmarshalBinary replaces the receiver with the decoded state. A malformed
// payload is a value error and leaves the receiver untouched.
func (d *Descriptor) UnmarshalBinary(data []byte) error {
	r := reader{buf: data}

	magic := r.bytes(len(serializeMagic))
	if r.err == nil && string(magic) != serializeMagic {
		return fmt.Errorf("hog: bad magic %q: %w", magic, ErrValue)
	}
	if version := r.u16(); r.err == nil && version != serializeVersion {
		return fmt.Errorf("hog: unsupported version %d: %w", version, ErrValue)
	}

	s := settings{}
	fields := []*int{&s.numBins, &s.cellY, &s.cellX, &s.blockY, &s.blockX, &s.strideY, &s.strideX}
	for _, f := range fields {
		*f = int(r.u32())
	}
	s.binning = Binning(r.u8())
	s.magnitude = Magnitude(r.u8())
	s.blockNorm = BlockNorm(r.u8())
	s.hasClip = r.u8() != 0
	s.clipNorm = math.Float64frombits(r.u64())
	s.epsilon = math.Float64frombits(r.u64())

	next := Descriptor{cfg: s}
	if r.u8() != 0 {
		next.hasData = true
		next.imgH = int(r.u64())
		next.imgW = int(r.u64())
		next.hist = r.tensor()
		next.feat = r.tensor()
	}
	if r.err != nil {
		return fmt.Errorf("hog: truncated state: %w", ErrValue)
	}
	if err := next.cfg.validate(); err != nil {
		return err
	}
	*d = next
	return nil
}

// Deserialize decodes a descriptor previously encoded with MarshalBinary.
func Deserialize(data []byte) (*Descriptor, error) {
	d := &Descriptor{}
	if err := d.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return d, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func histBytes(d *Descriptor) int {
	if !d.hasData {
		return 0
	}
	return (d.hist.Size() + d.feat.Size()) * d.hist.DataType().ElemSize()
}

func appendTensor(out []byte, t tensor.Dense) ([]byte, error) {
	out = append(out, uint8(t.DataType()), uint8(t.Rank()))
	for _, e := range t.Shape() {
		out = binary.LittleEndian.AppendUint64(out, uint64(e))
	}
	switch data := t.Data().(type) {
	case []float32:
		for _, v := range data {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
	case []float64:
		for _, v := range data {
			out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
		}
	default:
		return nil, fmt.Errorf("hog: cannot serialize %v tensor: %w", t.DataType(), ErrType)
	}
	return out, nil
}

// reader is a cursor over the serialized payload that latches the first
// error.
type reader struct {
	buf []byte
	err error
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = fmt.Errorf("hog: want %d bytes, have %d", n, len(r.buf))
		return nil
	}
	out := r.buf[:n]
	r.buf = r.buf[n:]
	return out
}

func (r *reader) u8() uint8 {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) u16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.bytes(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) tensor() tensor.Dense {
	dt := types.DataType(r.u8())
	rank := int(r.u8())
	if r.err != nil || rank > types.MAX_DIMS {
		if r.err == nil {
			r.err = fmt.Errorf("hog: tensor rank %d out of range", rank)
		}
		return tensor.Dense{}
	}
	shape := make(tensor.Shape, rank)
	for i := range shape {
		shape[i] = int(r.u64())
	}
	if r.err != nil {
		return tensor.Dense{}
	}
	size := shape.Size()
	switch dt {
	case types.FP32:
		data := make([]float32, size)
		for i := range data {
			data[i] = math.Float32frombits(r.u32())
		}
		return tensor.FromArray(shape, data)
	case types.FP64:
		data := make([]float64, size)
		for i := range data {
			data[i] = math.Float64frombits(r.u64())
		}
		return tensor.FromArray(shape, data)
	default:
		r.err = fmt.Errorf("hog: tensor dtype %v not supported", dt)
		return tensor.Dense{}
	}
}
