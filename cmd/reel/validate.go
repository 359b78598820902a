package main

import (
	"fmt"
	"io"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/presentation/tui"
	"github.com/aretw0/reel/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <script>...",
	Short: "Check scripts for parse and animation errors",
	Long:  `Parses each script, resolves its animation timeline and lints the command stream without rendering anything.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := reel.New(reel.WithEncoder(nil))
		for _, path := range args {
			if err := validateScript(engine, path, cmd.ErrOrStderr()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), tui.Failure(path))
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Success(path+" is valid"))
		}
		return nil
	},
}

func validateScript(engine *reel.Engine, path string, warnings io.Writer) error {
	script, err := engine.ParseFile(path)
	if err != nil {
		return err
	}
	if _, err := engine.Plan(script); err != nil {
		return err
	}
	for _, issue := range validator.Lint(script) {
		if issue.Severity == validator.SeverityWarning {
			fmt.Fprintf(warnings, "%s: warning: %s\n", path, issue)
		}
	}
	return validator.ValidateScript(script)
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
