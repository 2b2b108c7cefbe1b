package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cachediff-generator/internal/runner"
)

func newGenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Write generated Diff methods",
		Long: `Loads the given packages (default ".") and writes a Diff method for every
selected struct into one generated file per package.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runner.New(a.logger).Write(cmd.Context(), a.options(args))
			if err != nil {
				return err
			}

			for _, f := range res.Files {
				a.logger.Debug("wrote file", zap.String("file", f.Filename))
				fmt.Fprintln(cmd.OutOrStdout(), f.Filename)
			}

			return nil
		},
	}

	cmd.Flags().AddFlagSet(generationFlags())

	return cmd
}
