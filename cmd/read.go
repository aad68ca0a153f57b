package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lsb-steganography/service"
)

var (
	readInput  string
	readOutput string
)

// readCmd represents the read command.
var readCmd = &cobra.Command{
	Use:     "read",
	Short:   "Extract a hidden file from a carrier",
	Example: "  stegano read -i stego.png -f secret.txt",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		data, err := os.ReadFile(readInput)
		if err != nil {
			return fmt.Errorf("failed to read carrier: %w", err)
		}

		result, err := service.New(logger).Extract(data)
		if err != nil {
			return err
		}

		if err := os.WriteFile(readOutput, result.Payload, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", readOutput, err)
		}

		logger.Info("payload written", zap.String("output", readOutput), zap.Int("bytes", len(result.Payload)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().StringVarP(&readInput, "input", "i", "", "carrier file to read from")
	readCmd.Flags().StringVarP(&readOutput, "file", "f", "", "file to write the extracted payload to")

	readCmd.MarkFlagRequired("input")
	readCmd.MarkFlagRequired("file")
}
