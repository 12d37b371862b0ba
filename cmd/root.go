// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"embedkit/internal/config"
	"embedkit/internal/embed"
	"embedkit/internal/registry"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagWidth   string
	flagAlign   string
	flagCaption string
	flagJSON    bool
	flagDebug   bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "embedkit",
	Short: "Render embeddable video markup and probe local media files",
	Long: `Embedkit turns short service/identifier references into embeddable markup,
inspects local media files with ffprobe, and fetches oEmbed descriptors.`,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(oembedCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagDebug {
		cfg.Debug = true
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[embedkit] ")
	} else {
		log.SetFlags(0)
	}

	return nil
}

// newRenderer assembles the registry and renderer from the loaded config.
func newRenderer() (*embed.Renderer, error) {
	reg, err := registry.New(cfg.Custom, cfg.Services)
	if err != nil {
		return nil, fmt.Errorf("building service registry: %w", err)
	}
	return embed.New(reg, cfg), nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the embedkit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("embedkit", Version)
	},
}
