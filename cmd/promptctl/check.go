package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/promptchain/internal/bootstrap"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Ping every configured provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				statuses := c.Prompts.CheckProviders(cmd.Context())
				rows := make([][]string, 0, len(statuses))
				for _, s := range statuses {
					state := "ok"
					switch {
					case !s.Configured:
						state = "not configured"
					case !s.OK:
						state = "error"
					}
					latency := "-"
					if s.Configured {
						latency = s.Latency.Round(time.Millisecond).String()
					}
					rows = append(rows, []string{s.Name, s.Model, state, latency, truncate(s.Error, 60)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Provider", "Model", "Status", "Latency", "Error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}
