package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"winpin/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and last reconciliation diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Daemon:       running (pid %d)\n", resp.PID)
				if resp.LastRefresh.IsZero() {
					fmt.Fprintln(out, "Last refresh: never")
				} else {
					fmt.Fprintf(out, "Last refresh: %s\n", resp.LastRefresh.Local().Format("2006-01-02 15:04:05"))
				}
				if resp.LastError != "" {
					fmt.Fprintf(out, "Last error:   %s\n", resp.LastError)
				}
				fmt.Fprintf(out, "Database:     %s\n", resp.DBPath)

				d := resp.Diagnostics
				fmt.Fprintf(out, "Pins:         %d total, %d matched, %d missing\n", d.Total, d.Matched, d.Missing)
				if len(d.TierCounts) > 0 {
					tiers := make([]string, 0, len(d.TierCounts))
					for tier := range d.TierCounts {
						tiers = append(tiers, tier)
					}
					sort.Strings(tiers)
					for _, tier := range tiers {
						fmt.Fprintf(out, "  %-16s %d\n", tier, d.TierCounts[tier])
					}
				}
				return nil
			})
		},
	}
}
