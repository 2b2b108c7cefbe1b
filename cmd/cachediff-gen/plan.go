package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cachediff-generator/internal/plan"
	"cachediff-generator/internal/runner"
)

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [packages]",
		Short: "Print the resolved field plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := runner.New(a.logger).Plan(cmd.Context(), a.options(args))
			if err != nil {
				return err
			}

			switch format := a.v.GetString("format"); format {
			case "yaml", "":
				return writePlansYAML(cmd.OutOrStdout(), plans)
			case "table":
				return writePlansTable(cmd.OutOrStdout(), plans)
			default:
				return fmt.Errorf("unknown format %q: must be yaml or table", format)
			}
		},
	}

	cmd.Flags().AddFlagSet(generationFlags())
	cmd.Flags().String("format", "yaml", "Output format: yaml or table")

	return cmd
}

func writePlansYAML(w io.Writer, plans []*plan.PackagePlan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(plans); err != nil {
		return fmt.Errorf("encoding plans: %w", err)
	}

	return enc.Close()
}

// writePlansTable prints one row per planned field.
func writePlansTable(w io.Writer, plans []*plan.PackagePlan) error {
	table := tablewriter.NewWriter(w)
	table.Header("Type", "Field", "Name", "Display")

	for _, p := range plans {
		for _, r := range p.Records {
			typeName := r.Type.String()
			if r.IsGeneric() {
				typeName += "[" + strings.Join(r.TypeParams, ", ") + "]"
			}

			if len(r.Fields) == 0 {
				if err := table.Append([]string{typeName, "-", "-", "-"}); err != nil {
					return fmt.Errorf("adding %s: %w", typeName, err)
				}

				continue
			}

			for _, f := range r.Fields {
				if err := table.Append([]string{typeName, f.Field, f.Name, displayColumn(f.Display)}); err != nil {
					return fmt.Errorf("adding %s.%s: %w", typeName, f.Field, err)
				}
			}
		}
	}

	return table.Render()
}

func displayColumn(d plan.Display) string {
	if d.Kind != plan.DisplayCustom || d.Func == nil {
		return d.Kind.String()
	}

	return d.Kind.String() + " " + d.Func.String()
}
