package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/presentation/tui"
	"github.com/aretw0/reel/pkg/observability"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <script>...",
	Short: "Render one or more scene scripts",
	Long: `Parses and executes each script in order. Static scripts run once; animated
scripts render every frame to the animation directory and are assembled at the end.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		quiet, _ := cmd.Flags().GetBool("quiet")

		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		parts, err := buildParts(s.cfg, headless)
		if err != nil {
			return err
		}
		defer parts.Close()

		engine := reel.New(engineOptions(s, parts, observability.LoggingHooks(s.logger))...)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !quiet && tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout(), reel.Version)
		}

		for _, path := range args {
			res, err := engine.RunFile(ctx, path)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), tui.Failure(path))
				return err
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), tui.Success(summary(path, res)))
			}
		}
		return nil
	},
}

func summary(path string, res *reel.Result) string {
	if res.Animation != "" {
		return fmt.Sprintf("%s: %d frames -> %s", path, res.Frames, res.Animation)
	}
	if res.Animate {
		return fmt.Sprintf("%s: %d frames", path, res.Frames)
	}
	return path
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Bool("headless", false, "Skip display commands")
	renderCmd.Flags().BoolP("quiet", "q", false, "Only report errors")
}
