// Package cmd implements the stegano command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lsb-steganography/config"
	"lsb-steganography/logging"
)

var (
	// Version is the version of the binary.
	Version = "0.0.0"

	// Commit is the commit hash of the binary.
	Commit = ""

	logLevel string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stegano",
	Short: "Hide data in the least significant bits of images and audio",
	Long: `stegano embeds an arbitrary payload into the least significant bits of a
lossless carrier (PNG, BMP, TIFF or PCM WAV) and reads it back.

The payload is prefixed with a 32-bit length header, so no key or external
length is needed to recover it.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version += " (" + Commit + ")"
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
}

func newLogger() (*zap.Logger, error) {
	return logging.New(logLevel)
}
