package commands

import (
	"bytes"
	"testing"

	"github.com/marmos91/xdrwire/pkg/xdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpWords(t *testing.T) {
	t.Run("ListsEveryWord", func(t *testing.T) {
		p := xdr.NewPacker()
		require.NoError(t, p.PackUint(3))
		require.NoError(t, p.PackInt(-1))

		var out bytes.Buffer
		u := xdr.NewUnpacker(p.Bytes())
		require.NoError(t, dumpWords(&out, u))

		lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		assert.Contains(t, string(lines[0]), "00000000")
		assert.Contains(t, string(lines[0]), "00 00 00 03")
		assert.Contains(t, string(lines[1]), "ff ff ff ff")
		assert.Contains(t, string(lines[1]), "-1")
	})

	t.Run("AnnotatesPrintableStrings", func(t *testing.T) {
		p := xdr.NewPacker()
		require.NoError(t, p.PackUint(7))
		require.NoError(t, p.PackString("mount"))

		var out bytes.Buffer
		u := xdr.NewUnpacker(p.Bytes())
		require.NoError(t, dumpWords(&out, u))

		assert.Contains(t, out.String(), `string "mount" (12 bytes)`)
	})

	t.Run("PeekDoesNotMoveTheWalk", func(t *testing.T) {
		p := xdr.NewPacker()
		require.NoError(t, p.PackString("hi"))
		require.NoError(t, p.PackUint(42))

		var out bytes.Buffer
		u := xdr.NewUnpacker(p.Bytes())
		require.NoError(t, dumpWords(&out, u))

		// 3 words total: length, payload, trailing uint.
		lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
		assert.Len(t, lines, 3)
		assert.Contains(t, string(lines[2]), "42")
		assert.True(t, u.Done())
	})

	t.Run("ReportsTrailingBytes", func(t *testing.T) {
		var out bytes.Buffer
		u := xdr.NewUnpacker([]byte{0, 0, 0, 1, 0xaa, 0xbb})
		require.NoError(t, dumpWords(&out, u))
		assert.Contains(t, out.String(), "2 trailing bytes")
	})
}
