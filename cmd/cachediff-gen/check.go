package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cachediff-generator/internal/runner"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Fail if generated files are missing or out of date",
		RunE: func(cmd *cobra.Command, args []string) error {
			stale, err := runner.New(a.logger).Check(cmd.Context(), a.options(args))
			if err != nil {
				return err
			}

			if len(stale) == 0 {
				return nil
			}

			red := color.New(color.FgRed)
			for _, f := range stale {
				red.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f.Filename, f.Reason)
			}

			red.Fprintln(cmd.ErrOrStderr(), "run cachediff-gen gen to update")

			return errStale
		},
	}

	cmd.Flags().AddFlagSet(generationFlags())

	return cmd
}
