// Command nvsgen generates and inspects ESP-IDF NVS partition images from
// plain CSV or YAML key/value definitions.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:   "nvsgen",
		Short: "Generate and inspect ESP-IDF NVS partition images",
		Long: `nvsgen builds a byte-exact NVS partition image from a CSV or YAML
definition file, and can decode an existing image back to either format.`,
	}

	root.AddCommand(newGenerateCmd(logger))
	root.AddCommand(newDumpCmd(logger))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
