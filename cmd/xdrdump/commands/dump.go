package commands

import (
	"fmt"
	"io"
	"unicode"

	"github.com/marmos91/xdrwire/internal/logger"
	"github.com/marmos91/xdrwire/pkg/xdr"
	"github.com/spf13/cobra"
)

var dumpOffset int

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "List an XDR stream word by word",
	Long: `Walk an XDR stream from the given offset and print every 4-byte
word with its offset, raw bytes, and unsigned/signed readings.

Words that plausibly start a variable-length string (a sane length
word followed by printable bytes) are annotated with the decoded text.

Reads the file argument, or stdin when the argument is missing or "-".

Examples:
  # Dump a captured RPC payload
  xdrdump dump payload.bin

  # Skip a 16-byte header first
  xdrdump dump --offset 16 payload.bin

  # Pipe from a capture tool
  tcpflow -c port 2049 | xdrdump dump`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().IntVar(&dumpOffset, "offset", 0, "Byte offset to start at")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	logger.Debug("Loaded stream", "bytes", len(data), "offset", dumpOffset)

	u, err := xdr.NewUnpackerAt(data, dumpOffset)
	if err != nil {
		return fmt.Errorf("bad --offset: %w", err)
	}
	return dumpWords(cmd.OutOrStdout(), u)
}

func dumpWords(w io.Writer, u *xdr.Unpacker) error {
	for u.Remaining() >= 4 {
		mark := u.Position()
		word, err := u.UnpackUint()
		if err != nil {
			return err
		}
		raw := u.Buffer()[mark : mark+4]

		line := fmt.Sprintf("%08x  %02x %02x %02x %02x  %10d  %11d",
			mark, raw[0], raw[1], raw[2], raw[3], word, int32(word))
		if s, n, ok := peekString(u, mark); ok {
			line += fmt.Sprintf("  string %q (%d bytes)", s, n)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if !u.Done() {
		if _, err := fmt.Fprintf(w, "%08x  %d trailing bytes (stream not 4-byte aligned)\n",
			u.Position(), u.Remaining()); err != nil {
			return err
		}
	}
	return nil
}

// peekString checks whether the word at mark starts a printable
// variable-length string, without committing the cursor. The saved position
// is always restored, so the word-by-word walk is unaffected.
func peekString(u *xdr.Unpacker, mark int) (s string, total int, ok bool) {
	after := u.Position()
	defer func() {
		// The walk owns the cursor.
		_ = u.SetPosition(after)
	}()

	if err := u.SetPosition(mark); err != nil {
		return "", 0, false
	}
	s, err := u.UnpackString()
	if err != nil || s == "" {
		return "", 0, false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return "", 0, false
		}
	}
	return s, u.Position() - mark, true
}
