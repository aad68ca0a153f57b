package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lsb-steganography/carrier"
	"lsb-steganography/quality"
	"lsb-steganography/service"
)

var (
	writeInput   string
	writeOutput  string
	writeSecret  string
	writeMinPSNR float64
)

// writeCmd represents the write command.
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Embed a file into a carrier",
	Long: `write hides the contents of a file in the least significant bits of a
carrier and stores the result in a new file of the same format.`,
	Example: "  stegano write -i cover.png -o stego.png -f secret.txt",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		for _, name := range []string{writeInput, writeOutput} {
			if !carrier.IsSupportedExtension(name) {
				return fmt.Errorf("%s: %w", name, carrier.ErrUnsupportedFormat)
			}
		}

		cover, err := os.ReadFile(writeInput)
		if err != nil {
			return fmt.Errorf("failed to read carrier: %w", err)
		}
		secret, err := os.ReadFile(writeSecret)
		if err != nil {
			return fmt.Errorf("failed to read secret file: %w", err)
		}

		result, err := service.New(logger).Embed(cover, secret)
		if err != nil {
			return err
		}

		if format, _ := carrier.FormatOf(writeOutput); format != result.Metadata.Format {
			return fmt.Errorf("output %s must use the %s extension of the carrier format", writeOutput, carrier.Extension(result.Metadata.Format))
		}

		if writeMinPSNR > 0 && !quality.ValidatePSNR(result.PSNR, writeMinPSNR) {
			return fmt.Errorf("psnr %s dB is below the required %.2f dB", quality.FormatPSNR(result.PSNR), writeMinPSNR)
		}

		if err := os.WriteFile(writeOutput, result.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", writeOutput, err)
		}

		logger.Info("carrier written",
			zap.String("output", writeOutput),
			zap.Int("payload_bytes", len(secret)),
			zap.String("percent_used", fmt.Sprintf("%.2f", result.UsagePercent)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)

	writeCmd.Flags().StringVarP(&writeInput, "input", "i", "", "carrier file to embed into")
	writeCmd.Flags().StringVarP(&writeOutput, "output", "o", "", "file to write the resulting carrier to")
	writeCmd.Flags().StringVarP(&writeSecret, "file", "f", "", "file to hide")
	writeCmd.Flags().Float64Var(&writeMinPSNR, "min-psnr", 0, "fail when the PSNR of the result falls below this value in dB")

	writeCmd.MarkFlagRequired("input")
	writeCmd.MarkFlagRequired("output")
	writeCmd.MarkFlagRequired("file")
}
