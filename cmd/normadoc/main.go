// Command normadoc extracts structured records from technical-standard PDFs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "normadoc",
	Short: "normadoc — extract structured records from technical-standard PDFs",
	Long: `normadoc converts UNE-family technical-standard PDFs into structured JSON:
a code and title, an ordered tree of numbered sections with cleaned prose,
the validated tables, and the grouped figures with positional metadata.

Usage:
  normadoc extract [--archivo une.pdf] [flags]`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
