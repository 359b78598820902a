package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/presentation/graph"
	"github.com/aretw0/reel/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <script>",
	Short: "Show the per-frame knob values of a script",
	Long: `Resolves the frames, basename and vary directives of a script and prints the
value of every knob at every frame as a table, JSON or a Mermaid chart.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		engine := reel.New(reel.WithEncoder(nil))
		script, err := engine.ParseFile(args[0])
		if err != nil {
			return err
		}
		plan, err := engine.Plan(script)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		title := plan.Basename
		if !plan.Animate {
			title = filepath.Base(args[0])
		}

		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		case "mermaid":
			fmt.Fprint(out, graph.GenerateMermaid(title, graph.KnobCurves(plan.Knobs)))
			return nil
		case "table":
			md := tui.TimelineMarkdown(title, plan.Animate, graph.KnobCurves(plan.Knobs))
			rendered, err := tui.NewRenderer()(md)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		}
		return fmt.Errorf("unknown format %q (want table, json or mermaid)", format)
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().StringP("format", "f", "table", "Output format: table, json or mermaid")
}
