package commands

import (
	"fmt"

	"github.com/marmos91/xdrwire/internal/logger"
	"github.com/marmos91/xdrwire/pkg/xdr"
	"github.com/spf13/cobra"
)

var stringOffset int

var stringCmd = &cobra.Command{
	Use:   "string [file]",
	Short: "Decode a variable-length string at an offset",
	Long: `Decode the XDR variable-length string starting at --offset and print
it together with the cursor position after the read, which is the offset
of the next field in the stream.

Examples:
  # Decode the string that starts at byte 24
  xdrdump string --offset 24 payload.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runString,
}

func init() {
	stringCmd.Flags().IntVar(&stringOffset, "offset", 0, "Byte offset of the length word")
	rootCmd.AddCommand(stringCmd)
}

func runString(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}

	u, err := xdr.NewUnpackerAt(data, stringOffset)
	if err != nil {
		return fmt.Errorf("bad --offset: %w", err)
	}

	s, err := u.UnpackString()
	if err != nil {
		return fmt.Errorf("decode string at offset %d: %w", stringOffset, err)
	}
	logger.Debug("Decoded string", "offset", stringOffset, "length", len(s))

	fmt.Fprintf(cmd.OutOrStdout(), "%q\n", s)
	fmt.Fprintf(cmd.OutOrStdout(), "next field at offset %d\n", u.Position())
	return nil
}
