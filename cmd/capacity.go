package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lsb-steganography/service"
)

var capacityInput string

// capacityCmd represents the capacity command.
var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Print how many bytes a carrier can hold",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		data, err := os.ReadFile(capacityInput)
		if err != nil {
			return fmt.Errorf("failed to read carrier: %w", err)
		}

		result, err := service.New(logger).Capacity(data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "format:   %s (%s, %d-bit)\n", result.Metadata.Format, result.Metadata.Layout, result.Metadata.BitDepth)
		fmt.Fprintf(out, "samples:  %d\n", result.Samples)
		fmt.Fprintf(out, "capacity: %d bytes\n", result.CapacityBytes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)

	capacityCmd.Flags().StringVarP(&capacityInput, "input", "i", "", "carrier file to inspect")
	capacityCmd.MarkFlagRequired("input")
}
