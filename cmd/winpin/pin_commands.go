package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"winpin/internal/ipc"
	"winpin/internal/pins"
)

func newWindowsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List live windows from the last enumeration pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Windows()
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				if len(resp.Windows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No live windows; run `winpin refresh` or check the enumeration command.")
					return nil
				}
				rows := make([][]string, 0, len(resp.Windows))
				for idx, snapshot := range resp.Windows {
					number := "-"
					if snapshot.HasWindowNumber() {
						number = strconv.FormatInt(snapshot.OSWindowNumber, 10)
					}
					rows = append(rows, []string{
						strconv.Itoa(idx + 1),
						snapshot.OwnerAppName,
						snapshot.DisplayTitle(),
						number,
						formatFrame(snapshot.Frame),
						yesNo(snapshot.IsMinimized),
						snapshot.RuntimeID,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "APP", "TITLE", "NUMBER", "FRAME", "MIN", "RUNTIME ID"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newPinCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <window>",
		Short: "Pin a window (pinning an already-pinned window unpins it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				windows, err := client.Windows()
				if err != nil {
					return err
				}
				target, err := resolveWindow(windows.Windows, args[0])
				if err != nil {
					return err
				}
				resp, err := client.Pin(target.RuntimeID)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				if resp.Pinned {
					fmt.Fprintf(cmd.OutOrStdout(), "Pinned %q (%s)\n", resp.Item.Reference.DisplayName(), shortID(resp.Item.ID))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %q (%s)\n", resp.Item.Reference.DisplayName(), shortID(resp.Item.ID))
				}
				return nil
			})
		},
	}
}

func newUnpinCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <pin>",
		Short: "Remove a pinned window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				item, err := resolvePin(client, args[0])
				if err != nil {
					return err
				}
				if err := client.Unpin(item.ID); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"unpinned": item.ID})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %q (%s)\n", item.Reference.DisplayName(), shortID(item.ID))
				return nil
			})
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pinned windows in stored order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.List()
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				if len(resp.Items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No pinned windows. Pin one with `winpin pin <window>`.")
					return nil
				}
				rows := make([][]string, 0, len(resp.Items))
				for idx, item := range resp.Items {
					rows = append(rows, []string{
						strconv.Itoa(idx + 1),
						item.Reference.DisplayName(),
						item.Reference.OwnerAppName,
						itemState(item),
						tierLabel(item.Tier),
						shortID(item.ID),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "NAME", "APP", "STATE", "TIER", "ID"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <pin> [name...]",
		Short: "Set a pin's display name (omit the name to clear it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				item, err := resolvePin(client, args[0])
				if err != nil {
					return err
				}
				name := strings.TrimSpace(strings.Join(args[1:], " "))
				if err := client.Rename(item.ID, name); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"id": item.ID, "name": name})
				}
				if name == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared name for %s\n", shortID(item.ID))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", shortID(item.ID), name)
				}
				return nil
			})
		},
	}
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <pin> <position>",
		Short: "Move a pin to a new 1-based position in the list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil || position < 1 {
				return fmt.Errorf("position must be a positive integer, got %q", args[1])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				item, err := resolvePin(client, args[0])
				if err != nil {
					return err
				}
				if err := client.Move(item.ID, position-1); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"id": item.ID, "position": position})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to position %d\n", item.Reference.DisplayName(), position)
				return nil
			})
		},
	}
}

func newReassignCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reassign <pin> <window>",
		Short: "Rebind a pin to a different live window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				item, err := resolvePin(client, args[0])
				if err != nil {
					return err
				}
				windows, err := client.Windows()
				if err != nil {
					return err
				}
				target, err := resolveWindow(windows.Windows, args[1])
				if err != nil {
					return err
				}
				if err := client.Reassign(item.ID, target.RuntimeID); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"id": item.ID, "runtime_id": target.RuntimeID})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reassigned %q to %q\n", item.Reference.DisplayName(), target.DisplayTitle())
				return nil
			})
		},
	}
}

func newJumpCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "jump <pin>",
		Short: "Activate the window a pin currently resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				item, err := resolvePin(client, args[0])
				if err != nil {
					return err
				}
				if err := client.Jump(item.ID); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"activated": item.ID})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Activated %q\n", item.Reference.DisplayName())
				return nil
			})
		},
	}
}

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force an enumeration and reconciliation pass now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Refresh()
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				d := resp.Diagnostics
				fmt.Fprintf(cmd.OutOrStdout(), "Reconciled %d pins: %d matched, %d missing\n", d.Total, d.Matched, d.Missing)
				return nil
			})
		},
	}
}

func resolvePin(client *ipc.Client, selector string) (pins.Item, error) {
	resp, err := client.List()
	if err != nil {
		return pins.Item{}, err
	}
	return resolvePinItem(resp.Items, selector)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
