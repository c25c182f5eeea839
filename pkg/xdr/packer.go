package xdr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ============================================================================
// Packer - Go Values → Wire Format
// ============================================================================

// Packer serializes values into a growing byte buffer in XDR format.
//
// Per RFC 4506, every completed operation leaves the buffer length a multiple
// of 4: scalar encodings occupy 4 or 8 bytes, and opaque data is zero-padded
// to the next 4-byte boundary as part of the same operation. A failing
// operation leaves the buffer exactly as it was.
//
// The 32-bit integer operations take int64 so that out-of-range inputs are
// representable and rejected with ErrConversion instead of being silently
// truncated by a conversion at the call site.
//
// The zero value is ready to use.
type Packer struct {
	buf []byte
}

// NewPacker returns an empty Packer.
func NewPacker() *Packer {
	return &Packer{}
}

// Bytes returns a snapshot of the encoded output. The returned slice is a
// copy: later pack operations do not mutate it.
func (p *Packer) Bytes() []byte {
	out := make([]byte, len(p.buf))
	copy(out, p.buf)
	return out
}

// Len returns the number of bytes encoded so far.
func (p *Packer) Len() int {
	return len(p.buf)
}

// Reset discards the encoded output, keeping the allocated buffer for reuse.
func (p *Packer) Reset() {
	p.buf = p.buf[:0]
}

// PackInt encodes a signed 32-bit integer: 4 bytes, big-endian, two's
// complement (RFC 4506 Section 4.1). Values outside the int32 range return
// ErrConversion.
func (p *Packer) PackInt(v int64) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("%w: %d out of int32 range", ErrConversion, v)
	}
	p.buf = binary.BigEndian.AppendUint32(p.buf, uint32(int32(v)))
	return nil
}

// PackUint encodes an unsigned 32-bit integer: 4 bytes, big-endian
// (RFC 4506 Section 4.2). Values outside [0, 1<<32-1] return ErrConversion.
func (p *Packer) PackUint(v int64) error {
	if v < 0 || v > math.MaxUint32 {
		return fmt.Errorf("%w: %d out of uint32 range", ErrConversion, v)
	}
	p.buf = binary.BigEndian.AppendUint32(p.buf, uint32(v))
	return nil
}

// PackEnum encodes an enum ordinal, which XDR represents exactly like a
// signed 32-bit integer (RFC 4506 Section 4.3). The caller supplies the
// already-resolved ordinal.
func (p *Packer) PackEnum(v int64) error {
	return p.PackInt(v)
}

// PackBool encodes a boolean as a uint32, 1 for true and 0 for false
// (RFC 4506 Section 4.4).
func (p *Packer) PackBool(v bool) error {
	var ord uint32
	if v {
		ord = 1
	}
	p.buf = binary.BigEndian.AppendUint32(p.buf, ord)
	return nil
}

// PackHyper encodes a signed 64-bit integer: 8 bytes, big-endian, two's
// complement (RFC 4506 Section 4.5).
func (p *Packer) PackHyper(v int64) error {
	p.buf = binary.BigEndian.AppendUint64(p.buf, uint64(v))
	return nil
}

// PackUhyper encodes an unsigned 64-bit integer: 8 bytes, big-endian
// (RFC 4506 Section 4.5).
func (p *Packer) PackUhyper(v uint64) error {
	p.buf = binary.BigEndian.AppendUint64(p.buf, v)
	return nil
}

// PackFloat encodes an IEEE-754 single-precision float: 4 bytes, big-endian
// (RFC 4506 Section 4.6).
func (p *Packer) PackFloat(v float32) error {
	p.buf = binary.BigEndian.AppendUint32(p.buf, math.Float32bits(v))
	return nil
}

// PackDouble encodes an IEEE-754 double-precision float: 8 bytes, big-endian
// (RFC 4506 Section 4.7).
func (p *Packer) PackDouble(v float64) error {
	p.buf = binary.BigEndian.AppendUint64(p.buf, math.Float64bits(v))
	return nil
}

// PackFixedOpaque encodes fixed-length opaque data of a size the two sides
// agree on out-of-band (RFC 4506 Section 4.9). No length prefix is written:
// exactly aligned(n) bytes are appended. data is truncated to n bytes if
// longer and zero-filled to n if shorter, then zero-padded to the 4-byte
// boundary. A negative n returns ErrConversion.
func (p *Packer) PackFixedOpaque(n int, data []byte) error {
	if n < 0 {
		return fmt.Errorf("%w: fixed opaque size %d must be nonnegative", ErrConversion, n)
	}
	total := aligned(n)
	start := len(p.buf)
	p.buf = append(p.buf, make([]byte, total)...)
	copy(p.buf[start:start+n], data)
	return nil
}

// PackOpaque encodes variable-length opaque data: a uint32 byte count, the
// bytes, then zero padding to the 4-byte boundary (RFC 4506 Section 4.10).
func (p *Packer) PackOpaque(data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return fmt.Errorf("%w: opaque length %d exceeds uint32", ErrConversion, len(data))
	}
	p.buf = binary.BigEndian.AppendUint32(p.buf, uint32(len(data)))
	return p.PackFixedOpaque(len(data), data)
}

// PackString encodes a string (RFC 4506 Section 4.11). The wire form is
// identical to PackOpaque; the bytes are transported uninterpreted, so the
// caller picks the text encoding.
func (p *Packer) PackString(s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return fmt.Errorf("%w: string length %d exceeds uint32", ErrConversion, len(s))
	}
	p.buf = binary.BigEndian.AppendUint32(p.buf, uint32(len(s)))
	return p.PackFixedOpaque(len(s), []byte(s))
}

// aligned rounds n up to the next multiple of 4, the XDR alignment unit.
func aligned(n int) int {
	return (n + 3) &^ 3
}
