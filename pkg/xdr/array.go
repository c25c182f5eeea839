package xdr

import (
	"fmt"
	"math"
)

// ============================================================================
// Array, List and Sentinel-List Helpers
// ============================================================================

// The aggregate forms take the per-item codec as a function value, so any
// element type works without reflection: pass a method value like
// (*Packer).PackBool, or a closure composing several primitive calls for
// struct-like items. The helpers are free functions because Go methods
// cannot carry type parameters.
//
// Aggregate operations are atomic like the scalar ones: if an item codec
// fails partway, the packer buffer is truncated back to its pre-call length
// and the unpacker cursor is restored to its pre-call position.

// PackFixedArray encodes a fixed-length array (RFC 4506 Section 4.12). No
// element count is written; the two sides agree on n out-of-band. A slice
// whose length differs from n returns ErrConversion.
func PackFixedArray[T any](p *Packer, n int, items []T, packItem func(*Packer, T) error) error {
	if len(items) != n {
		return fmt.Errorf("%w: fixed array has %d items, want %d", ErrConversion, len(items), n)
	}
	mark := len(p.buf)
	for _, item := range items {
		if err := packItem(p, item); err != nil {
			p.buf = p.buf[:mark]
			return err
		}
	}
	return nil
}

// PackArray encodes a variable-length array (RFC 4506 Section 4.13): a
// uint32 element count, then each item in order.
func PackArray[T any](p *Packer, items []T, packItem func(*Packer, T) error) error {
	if uint64(len(items)) > math.MaxUint32 {
		return fmt.Errorf("%w: array count %d exceeds uint32", ErrConversion, len(items))
	}
	mark := len(p.buf)
	if err := p.PackUint(int64(len(items))); err != nil {
		return err
	}
	for _, item := range items {
		if err := packItem(p, item); err != nil {
			p.buf = p.buf[:mark]
			return err
		}
	}
	return nil
}

// PackList encodes a sentinel-terminated list, the XDR "optional data" chain
// (RFC 4506 Section 4.19): a uint32 1 marker before each item and a trailing
// 0. Unlike PackArray the stream carries no up-front count, so producers can
// emit items before knowing how many there are.
func PackList[T any](p *Packer, items []T, packItem func(*Packer, T) error) error {
	mark := len(p.buf)
	for _, item := range items {
		if err := p.PackUint(1); err != nil {
			p.buf = p.buf[:mark]
			return err
		}
		if err := packItem(p, item); err != nil {
			p.buf = p.buf[:mark]
			return err
		}
	}
	return p.PackUint(0)
}

// UnpackFixedArray decodes the fixed-length array counterpart of
// PackFixedArray: n comes from the caller, not the stream, and the item
// codec runs exactly n times. A negative n returns ErrLength.
func UnpackFixedArray[T any](u *Unpacker, n int, unpackItem func(*Unpacker) (T, error)) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: fixed array size %d must be nonnegative", ErrLength, n)
	}
	mark := u.pos
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item, err := unpackItem(u)
		if err != nil {
			u.pos = mark
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// UnpackArray decodes a variable-length array: a uint32 count from the
// stream, then that many items in read order. A count that is negative when
// sign-reinterpreted, or larger than the remaining input could possibly hold
// (every XDR item occupies at least 4 bytes), returns ErrLength before any
// element is read.
func UnpackArray[T any](u *Unpacker, unpackItem func(*Unpacker) (T, error)) ([]T, error) {
	mark := u.pos
	count, err := u.UnpackUint()
	if err != nil {
		return nil, err
	}
	if count > math.MaxInt32 {
		u.pos = mark
		return nil, fmt.Errorf("%w: array count %d is negative as a signed value", ErrLength, count)
	}
	if int(count) > u.Remaining()/4 {
		u.pos = mark
		return nil, fmt.Errorf("%w: array count %d cannot fit in %d remaining bytes", ErrLength, count, u.Remaining())
	}
	items := make([]T, 0, count)
	for i := uint32(0); i < count; i++ {
		item, err := unpackItem(u)
		if err != nil {
			u.pos = mark
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// UnpackList decodes the sentinel-terminated counterpart of PackList,
// collecting items until the 0 marker. A marker other than 0 or 1 returns
// ErrConversion.
func UnpackList[T any](u *Unpacker, unpackItem func(*Unpacker) (T, error)) ([]T, error) {
	mark := u.pos
	var items []T
	for {
		marker, err := u.UnpackUint()
		if err != nil {
			u.pos = mark
			return nil, err
		}
		if marker == 0 {
			return items, nil
		}
		if marker != 1 {
			u.pos = mark
			return nil, fmt.Errorf("%w: list marker must be 0 or 1, got %d", ErrConversion, marker)
		}
		item, err := unpackItem(u)
		if err != nil {
			u.pos = mark
			return nil, err
		}
		items = append(items, item)
	}
}
