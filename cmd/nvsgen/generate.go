package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/espflash/nvs"
	"github.com/espflash/nvs/compress"
	"github.com/espflash/nvs/format"
	"github.com/espflash/nvs/partition"
)

func newGenerateCmd(logger *slog.Logger) *cobra.Command {
	var (
		inputPath     string
		outputPath    string
		partitionSize int
		compressType  string
		printSummary  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a partition image from a CSV or YAML definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.New()
			logger = logger.With("run_id", runID.String())
			logger.Info("generate starting", "input", inputPath, "output", outputPath, "partition_size", partitionSize)

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = fmt.Sprintf(" encoding %s", outputPath)
			s.Start()
			defer s.Stop()

			data, err := readDefinitionFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading definition: %w", err)
			}

			var fingerprint uint64
			image, err := nvs.Encode(data, partitionSize, nvs.WithFingerprint(&fingerprint))
			if err != nil {
				return fmt.Errorf("encoding partition: %w", err)
			}

			if err := os.WriteFile(outputPath, image, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outputPath, err)
			}

			s.Stop()
			logger.Info("generate finished", "bytes", len(image), "fingerprint", fmt.Sprintf("%016x", fingerprint))

			if printSummary {
				fmt.Printf("%s: %d bytes, fingerprint %016x\n", outputPath, len(image), fingerprint)
			}

			if compressType != "" {
				if err := writeCompressedCopy(image, outputPath, compressType); err != nil {
					return fmt.Errorf("compressing output: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the CSV or YAML definition file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "path to write the generated .bin partition image (required)")
	cmd.Flags().IntVarP(&partitionSize, "size", "s", 0, "partition size in bytes, must be a positive multiple of 4096 (required)")
	cmd.Flags().StringVarP(&compressType, "compress", "c", "", "also write a compressed copy: none or zstd")
	cmd.Flags().BoolVar(&printSummary, "print", false, "print the image size and fingerprint to stdout")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

// readDefinitionFile dispatches to the CSV or YAML reader based on the
// file extension.
func readDefinitionFile(path string) (partition.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return partition.Data{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAMLDefinition(f)
	default:
		return readCSVDefinition(f)
	}
}

func parseCompressionType(name string) (format.CompressionType, error) {
	switch strings.ToLower(name) {
	case "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression type %q", name)
	}
}

func writeCompressedCopy(image []byte, outputPath, compressType string) error {
	ct, err := parseCompressionType(compressType)
	if err != nil {
		return err
	}

	codec, err := compress.CreateCodec(ct, "generate --compress")
	if err != nil {
		return err
	}

	compressed, err := codec.Compress(image)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	compressedPath := outputPath + "." + strings.ToLower(compressType)
	return os.WriteFile(compressedPath, compressed, 0o644)
}
