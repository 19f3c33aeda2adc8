package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/espflash/nvs"
)

func newDumpCmd(logger *slog.Logger) *cobra.Command {
	var (
		inputPath   string
		outputPath  string
		outFormat   string
		verifyCRC   bool
		showDiagnos bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Decode a partition image back to CSV or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", inputPath, err)
			}

			var opts []nvs.DecodeOption
			if verifyCRC {
				opts = append(opts, nvs.WithCRCVerification())
			}
			if showDiagnos {
				opts = append(opts, nvs.WithDiagnostics(func(d nvs.Diagnostic) {
					logger.Warn("diagnostic", "page", d.Page, "slot", d.Slot, "message", d.Message)
				}))
			}

			data, err := nvs.Decode(image, opts...)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", inputPath, err)
			}

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outputPath, err)
				}
				defer f.Close()
				out = f
			}

			if strings.EqualFold(outFormat, "yaml") {
				return writeYAMLDefinition(out, data)
			}
			return writeCSVDefinition(out, data)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the .bin partition image to decode (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "path to write the decoded definition (default stdout)")
	cmd.Flags().StringVarP(&outFormat, "format", "f", "csv", "output format: csv or yaml")
	cmd.Flags().BoolVar(&verifyCRC, "verify-crc", false, "verify page and entry CRC32 while decoding")
	cmd.Flags().BoolVar(&showDiagnos, "diagnostics", false, "log recoverable decode problems instead of ignoring them")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
