package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// writeOutput prints v as indented JSON when asJSON is set and through human
// otherwise. JSON output keeps paths unescaped, as the protocol does.
func writeOutput(cmd *cobra.Command, asJSON bool, v any, human func(io.Writer)) error {
	out := cmd.OutOrStdout()
	if !asJSON {
		human(out)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
