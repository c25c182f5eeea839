package xdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packInt32(p *Packer, v int32) error {
	return p.PackInt(int64(v))
}

func unpackInt32(u *Unpacker) (int32, error) {
	return u.UnpackInt()
}

func TestVariableArray(t *testing.T) {
	t.Run("ExactWireBytes", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, PackArray(p, []int32{1, 2, 3}, packInt32))
		assert.Equal(t, []byte{
			0, 0, 0, 3, // count
			0, 0, 0, 1,
			0, 0, 0, 2,
			0, 0, 0, 3,
		}, p.Bytes())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, PackArray(p, []int32{1, 2, 3}, packInt32))
		u := NewUnpacker(p.Bytes())
		items, err := UnpackArray(u, unpackInt32)
		require.NoError(t, err)
		assert.Equal(t, []int32{1, 2, 3}, items)
		assert.True(t, u.Done())
	})

	t.Run("EmptyRoundTrip", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, PackArray(p, []string{}, (*Packer).PackString))
		assert.Equal(t, []byte{0, 0, 0, 0}, p.Bytes())
		u := NewUnpacker(p.Bytes())
		items, err := UnpackArray(u, (*Unpacker).UnpackString)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.True(t, u.Done())
	})

	t.Run("StringElementsRoundTrip", func(t *testing.T) {
		words := []string{"mount", "umount", ""}
		p := NewPacker()
		require.NoError(t, PackArray(p, words, (*Packer).PackString))
		u := NewUnpacker(p.Bytes())
		items, err := UnpackArray(u, (*Unpacker).UnpackString)
		require.NoError(t, err)
		assert.Equal(t, words, items)
	})

	t.Run("CountNegativeWhenSigned", func(t *testing.T) {
		u := NewUnpacker([]byte{0x80, 0, 0, 1})
		_, err := UnpackArray(u, unpackInt32)
		require.ErrorIs(t, err, ErrLength)
		assert.Equal(t, 0, u.Position())
	})

	t.Run("CountBeyondRemaining", func(t *testing.T) {
		// Count claims 1000 elements, buffer holds at most one.
		u := NewUnpacker([]byte{0, 0, 0x03, 0xe8, 0, 0, 0, 1})
		_, err := UnpackArray(u, unpackInt32)
		require.ErrorIs(t, err, ErrLength)
		assert.Equal(t, 0, u.Position())
	})

	t.Run("ElementFailureRestoresCursor", func(t *testing.T) {
		// Two string elements declared; the second carries a bogus
		// length word.
		p := NewPacker()
		require.NoError(t, p.PackUint(2))
		require.NoError(t, p.PackString("ok"))
		require.NoError(t, p.PackUint(500)) // bogus length for element 2
		u := NewUnpacker(p.Bytes())
		_, err := UnpackArray(u, (*Unpacker).UnpackString)
		require.ErrorIs(t, err, ErrLength)
		assert.Equal(t, 0, u.Position(), "failed array read must be atomic")
	})

	t.Run("PackElementFailureRestoresBuffer", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, p.PackUint(7))
		err := PackArray(p, []int64{1, 1 << 40}, (*Packer).PackInt)
		require.ErrorIs(t, err, ErrConversion)
		assert.Equal(t, []byte{0, 0, 0, 7}, p.Bytes(), "failed pack must truncate back")
	})
}

func TestFixedArray(t *testing.T) {
	t.Run("NoCountOnWire", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, PackFixedArray(p, 2, []int32{5, 6}, packInt32))
		assert.Equal(t, []byte{0, 0, 0, 5, 0, 0, 0, 6}, p.Bytes())
	})

	t.Run("RoundTripWithCallerCount", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, PackFixedArray(p, 3, []int32{7, 8, 9}, packInt32))
		u := NewUnpacker(p.Bytes())
		items, err := UnpackFixedArray(u, 3, unpackInt32)
		require.NoError(t, err)
		assert.Equal(t, []int32{7, 8, 9}, items)
		assert.True(t, u.Done())
	})

	t.Run("SizeMismatchRejected", func(t *testing.T) {
		p := NewPacker()
		err := PackFixedArray(p, 3, []int32{1, 2}, packInt32)
		require.ErrorIs(t, err, ErrConversion)
		assert.Equal(t, 0, p.Len())
	})

	t.Run("NegativeSizeRejected", func(t *testing.T) {
		u := NewUnpacker([]byte{0, 0, 0, 0})
		_, err := UnpackFixedArray(u, -1, unpackInt32)
		require.ErrorIs(t, err, ErrLength)
		assert.Equal(t, 0, u.Position())
	})

	t.Run("UnderrunRestoresCursor", func(t *testing.T) {
		u := NewUnpacker([]byte{0, 0, 0, 1, 0, 0})
		_, err := UnpackFixedArray(u, 2, unpackInt32)
		require.ErrorIs(t, err, ErrUnderrun)
		assert.Equal(t, 0, u.Position())
	})
}

func TestSentinelList(t *testing.T) {
	t.Run("ExactWireBytes", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, PackList(p, []int32{4, 5}, packInt32))
		assert.Equal(t, []byte{
			0, 0, 0, 1, 0, 0, 0, 4,
			0, 0, 0, 1, 0, 0, 0, 5,
			0, 0, 0, 0,
		}, p.Bytes())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, PackList(p, []int32{-1, 0, 1}, packInt32))
		u := NewUnpacker(p.Bytes())
		items, err := UnpackList(u, unpackInt32)
		require.NoError(t, err)
		assert.Equal(t, []int32{-1, 0, 1}, items)
		assert.True(t, u.Done())
	})

	t.Run("EmptyListIsSingleZeroWord", func(t *testing.T) {
		p := NewPacker()
		require.NoError(t, PackList(p, nil, packInt32))
		assert.Equal(t, []byte{0, 0, 0, 0}, p.Bytes())
		u := NewUnpacker(p.Bytes())
		items, err := UnpackList(u, unpackInt32)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("BadMarkerRejected", func(t *testing.T) {
		u := NewUnpacker([]byte{0, 0, 0, 2, 0, 0, 0, 4})
		_, err := UnpackList(u, unpackInt32)
		require.ErrorIs(t, err, ErrConversion)
		assert.Equal(t, 0, u.Position())
	})

	t.Run("MissingTerminatorRejected", func(t *testing.T) {
		u := NewUnpacker([]byte{0, 0, 0, 1, 0, 0, 0, 4})
		_, err := UnpackList(u, unpackInt32)
		require.ErrorIs(t, err, ErrUnderrun)
		assert.Equal(t, 0, u.Position())
	})
}

// TestStructLikeSequence exercises the closure form of the item codecs the
// way protocol handlers compose them for struct bodies.
func TestStructLikeSequence(t *testing.T) {
	type mapping struct {
		Prog uint32
		Port uint32
		Name string
	}

	packMapping := func(p *Packer, m mapping) error {
		if err := p.PackUint(int64(m.Prog)); err != nil {
			return err
		}
		if err := p.PackUint(int64(m.Port)); err != nil {
			return err
		}
		return p.PackString(m.Name)
	}
	unpackMapping := func(u *Unpacker) (mapping, error) {
		var m mapping
		var err error
		if m.Prog, err = u.UnpackUint(); err != nil {
			return m, err
		}
		if m.Port, err = u.UnpackUint(); err != nil {
			return m, err
		}
		m.Name, err = u.UnpackString()
		return m, err
	}

	in := []mapping{
		{Prog: 100003, Port: 2049, Name: "nfs"},
		{Prog: 100005, Port: 20048, Name: "mountd"},
	}
	p := NewPacker()
	require.NoError(t, PackArray(p, in, packMapping))
	assert.Equal(t, 0, p.Len()%4)

	u := NewUnpacker(p.Bytes())
	out, err := UnpackArray(u, unpackMapping)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.True(t, u.Done())
}
