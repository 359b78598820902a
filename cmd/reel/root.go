package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Reel renders 3D scene scripts into images and animations",
	Long: `Reel executes MDL scene scripts (or their YAML/JSON equivalent), drawing
wireframes and shaded solids. Scripts with frames/vary/basename directives
are rendered once per frame and assembled into an animated GIF.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default reel.yaml when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().String("dir", "", "Output directory for saved images (overrides config)")
}
