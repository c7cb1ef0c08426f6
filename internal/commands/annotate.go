package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
)

// NewAnnotateCmd creates the raw-text filter command. Unlike the prompt
// hook it does no JSON parsing: stdin is relayed to stdout byte-for-byte,
// with the advisory block prepended when the trimmed text ends with the
// trigger token. The original payload is never dropped or reordered.
func NewAnnotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "annotate",
		Short: "Relay stdin to stdout, prepending the advisory block on the trigger suffix",
		Long: `Reads raw text from stdin and writes it back unmodified. When the text,
after trimming trailing whitespace, ends with the trigger token (default
"-u"), the fixed advisory block is prepended ahead of the original content.

Useful for plain-text pipelines that don't speak the hook JSON protocol.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(os.Stdin, os.Stdout, app.TriggerToken(), app.AdvisoryText(advisoryBlock))
		},
	}
}

// runAnnotate relays r to w unmodified. Unlike the hook path there is no
// size cap: the passthrough contract is byte-for-byte for inputs of any
// length, so the whole payload is buffered before the suffix check.
func runAnnotate(r io.Reader, w io.Writer, token, advisory string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	if hasTriggerSuffix(string(data), token) {
		if _, err := io.WriteString(w, advisory+"\n\n"); err != nil {
			return fmt.Errorf("write advisory: %w", err)
		}
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}
