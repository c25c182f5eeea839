package xdr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ============================================================================
// Unpacker - Wire Format → Go Values
// ============================================================================

// Unpacker reads values back from an XDR byte buffer.
//
// The input buffer is treated as immutable; a cursor tracks the read
// position. Every successful operation advances the cursor by exactly the
// number of bytes its encoding occupies, padding included. Every failing
// operation leaves the cursor where it was, so a caller can recover with its
// own framing after a bad read.
//
// Bounds are checked before any byte is consumed. Declared lengths and
// counts from the stream are validated against the remaining input before
// anything is allocated, so corrupt or hostile streams fail with ErrLength
// instead of triggering oversized reads.
type Unpacker struct {
	buf []byte
	pos int
}

// NewUnpacker returns an Unpacker positioned at the start of data.
func NewUnpacker(data []byte) *Unpacker {
	return &Unpacker{buf: data}
}

// NewUnpackerAt returns an Unpacker positioned at pos, for resuming a decode
// from a saved cursor. Returns ErrPosition if pos is outside [0, len(data)].
func NewUnpackerAt(data []byte, pos int) (*Unpacker, error) {
	u := &Unpacker{buf: data}
	if err := u.SetPosition(pos); err != nil {
		return nil, err
	}
	return u, nil
}

// Reset points the Unpacker at a new input buffer with the cursor at 0,
// reusing the value for the next message.
func (u *Unpacker) Reset(data []byte) {
	u.buf = data
	u.pos = 0
}

// Buffer returns the input buffer.
func (u *Unpacker) Buffer() []byte {
	return u.buf
}

// Position returns the cursor: the byte offset of the next read.
func (u *Unpacker) Position() int {
	return u.pos
}

// SetPosition moves the cursor to pos, enabling look-ahead and backtracking
// protocols (peek a discriminant, rewind, re-decode). Returns ErrPosition if
// pos is outside [0, len(buffer)]; the cursor is never silently clamped.
func (u *Unpacker) SetPosition(pos int) error {
	if pos < 0 || pos > len(u.buf) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPosition, pos, len(u.buf))
	}
	u.pos = pos
	return nil
}

// Done reports whether the cursor has reached the end of the buffer.
func (u *Unpacker) Done() bool {
	return u.pos == len(u.buf)
}

// Remaining returns the number of unread bytes.
func (u *Unpacker) Remaining() int {
	return len(u.buf) - u.pos
}

// need verifies that n more bytes can be read from the cursor.
func (u *Unpacker) need(n int) error {
	if n > len(u.buf)-u.pos {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnderrun, n, u.pos, len(u.buf)-u.pos)
	}
	return nil
}

// UnpackInt decodes a signed 32-bit integer (RFC 4506 Section 4.1).
func (u *Unpacker) UnpackInt() (int32, error) {
	v, err := u.UnpackUint()
	return int32(v), err
}

// UnpackUint decodes an unsigned 32-bit integer (RFC 4506 Section 4.2).
func (u *Unpacker) UnpackUint() (uint32, error) {
	if err := u.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(u.buf[u.pos:])
	u.pos += 4
	return v, nil
}

// UnpackEnum decodes an enum ordinal, wire-identical to a signed 32-bit
// integer (RFC 4506 Section 4.3). Mapping the ordinal back onto the caller's
// enum is the caller's job.
func (u *Unpacker) UnpackEnum() (int32, error) {
	return u.UnpackInt()
}

// UnpackBool decodes a boolean (RFC 4506 Section 4.4): 0 is false, any other
// word is true.
func (u *Unpacker) UnpackBool() (bool, error) {
	v, err := u.UnpackUint()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// UnpackHyper decodes a signed 64-bit integer (RFC 4506 Section 4.5).
func (u *Unpacker) UnpackHyper() (int64, error) {
	v, err := u.UnpackUhyper()
	return int64(v), err
}

// UnpackUhyper decodes an unsigned 64-bit integer (RFC 4506 Section 4.5).
func (u *Unpacker) UnpackUhyper() (uint64, error) {
	if err := u.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(u.buf[u.pos:])
	u.pos += 8
	return v, nil
}

// UnpackFloat decodes an IEEE-754 single-precision float (RFC 4506
// Section 4.6).
func (u *Unpacker) UnpackFloat() (float32, error) {
	v, err := u.UnpackUint()
	return math.Float32frombits(v), err
}

// UnpackDouble decodes an IEEE-754 double-precision float (RFC 4506
// Section 4.7).
func (u *Unpacker) UnpackDouble() (float64, error) {
	v, err := u.UnpackUhyper()
	return math.Float64frombits(v), err
}

// UnpackFixedOpaque decodes fixed-length opaque data (RFC 4506 Section 4.9).
// The stream carries no length prefix, so the caller passes the same n the
// encoder used. Reads n bytes, then consumes the padding up to the 4-byte
// boundary without validating its content (RFC 4506 makes zero padding the
// producer's obligation only). The returned slice is a copy, never an alias
// of the input buffer.
func (u *Unpacker) UnpackFixedOpaque(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: fixed opaque size %d must be nonnegative", ErrLength, n)
	}
	// Checking n before aligned(n) keeps the alignment arithmetic inside
	// the buffer's length range.
	if err := u.need(n); err != nil {
		return nil, err
	}
	if err := u.need(aligned(n)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, u.buf[u.pos:])
	u.pos += aligned(n)
	return out, nil
}

// UnpackOpaque decodes variable-length opaque data (RFC 4506 Section 4.10):
// a uint32 byte count, the bytes, then padding. A count that is negative when
// sign-reinterpreted or larger than the remaining input returns ErrLength
// with the cursor unmoved.
func (u *Unpacker) UnpackOpaque() ([]byte, error) {
	mark := u.pos
	n, err := u.unpackByteCount()
	if err != nil {
		return nil, err
	}
	out, err := u.UnpackFixedOpaque(n)
	if err != nil {
		u.pos = mark
		return nil, err
	}
	return out, nil
}

// UnpackString decodes a string (RFC 4506 Section 4.11): same wire form as
// UnpackOpaque, bytes returned uninterpreted.
func (u *Unpacker) UnpackString() (string, error) {
	out, err := u.UnpackOpaque()
	return string(out), err
}

// unpackByteCount reads a uint32 length prefix and validates it against the
// remaining input, padding included. The cursor stays put on failure.
func (u *Unpacker) unpackByteCount() (int, error) {
	mark := u.pos
	n, err := u.UnpackUint()
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		u.pos = mark
		return 0, fmt.Errorf("%w: declared length %d is negative as a signed value", ErrLength, n)
	}
	if aligned(int(n)) > u.Remaining() {
		u.pos = mark
		return 0, fmt.Errorf("%w: declared length %d exceeds %d remaining bytes", ErrLength, n, u.Remaining())
	}
	return int(n), nil
}
