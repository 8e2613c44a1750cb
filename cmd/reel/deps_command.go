package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reel/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			statuses = append(statuses, deps.CheckDirectoryAccess("Results directory", cfg.Paths.ResultsDir))

			rows := make([][]string, 0, len(statuses))
			missingRequired := false
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					if status.Optional {
						state = "missing (optional)"
					} else {
						state = "missing"
						missingRequired = true
					}
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}

			out := cmd.OutOrStdout()
			headers := []string{"Dependency", "Command", "Status", "Detail"}
			fmt.Fprintln(out, renderTable(out, headers, rows, nil))

			if missingRequired {
				return fmt.Errorf("required dependencies are missing")
			}
			return nil
		},
	}
}
