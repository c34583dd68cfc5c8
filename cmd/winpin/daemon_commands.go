package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"winpin/internal/daemonrun"
	"winpin/internal/ipc"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the winpind background daemon",
	}
	cmd.AddCommand(newDaemonStartCommand(ctx))
	cmd.AddCommand(newDaemonStopCommand(ctx))
	cmd.AddCommand(newDaemonStatusCommand(ctx))
	return cmd
}

func newDaemonStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start winpind in the background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if client, err := ipc.Dial(ctx.socketPath()); err == nil {
				defer client.Close()
				if resp, err := client.Ping(); err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Daemon already running (pid %d)\n", resp.PID)
					return nil
				}
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			binary, err := findDaemonBinary()
			if err != nil {
				return err
			}
			daemonArgs := []string{}
			if ctx.configFlag != nil && *ctx.configFlag != "" {
				daemonArgs = append(daemonArgs, "--config", *ctx.configFlag)
			}

			proc := exec.Command(binary, daemonArgs...)
			proc.Stdin = nil
			proc.Stdout = nil
			proc.Stderr = nil
			proc.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
			if err := proc.Start(); err != nil {
				return fmt.Errorf("start %s: %w", binary, err)
			}
			pid := proc.Process.Pid
			// Detach; the daemon outlives this CLI invocation.
			if err := proc.Process.Release(); err != nil {
				return fmt.Errorf("detach daemon process: %w", err)
			}

			if err := waitForDaemon(ctx.socketPath(), 5*time.Second); err != nil {
				return fmt.Errorf("daemon started (pid %d) but is not answering: %w", pid, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daemon started (pid %d)\n", pid)
			return nil
		},
	}
}

func newDaemonStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			pid := daemonrun.ReadPIDFile(cfg.PIDPath())
			if pid == 0 || !daemonrun.ProcessAlive(pid) {
				fmt.Fprintln(cmd.OutOrStdout(), "Daemon is not running")
				return nil
			}
			if err := daemonrun.SignalStop(pid); err != nil {
				return err
			}
			deadline := time.Now().Add(5 * time.Second)
			for time.Now().Before(deadline) {
				if !daemonrun.ProcessAlive(pid) {
					fmt.Fprintf(cmd.OutOrStdout(), "Daemon stopped (pid %d)\n", pid)
					return nil
				}
				time.Sleep(100 * time.Millisecond)
			}
			return fmt.Errorf("daemon (pid %d) did not exit within 5s", pid)
		},
	}
}

func newDaemonStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the daemon is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ipc.Dial(ctx.socketPath())
			if err == nil {
				defer client.Close()
				if resp, err := client.Ping(); err == nil {
					if ctx.jsonOutput() {
						return writeJSON(cmd, map[string]any{"running": true, "pid": resp.PID})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Daemon running (pid %d)\n", resp.PID)
					return nil
				}
			}

			cfg, cfgErr := ctx.ensureConfig()
			if cfgErr == nil {
				if pid := daemonrun.ReadPIDFile(cfg.PIDPath()); pid != 0 && daemonrun.ProcessAlive(pid) {
					if ctx.jsonOutput() {
						return writeJSON(cmd, map[string]any{"running": true, "pid": pid, "responsive": false})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Daemon process alive (pid %d) but not answering on %s\n", pid, ctx.socketPath())
					return nil
				}
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"running": false})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Daemon not running")
			return nil
		},
	}
}

// findDaemonBinary locates winpind next to the current executable, falling
// back to PATH lookup.
func findDaemonBinary() (string, error) {
	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), "winpind")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	binary, err := exec.LookPath("winpind")
	if err != nil {
		return "", fmt.Errorf("winpind binary not found next to winpin or on PATH: %w", err)
	}
	return binary, nil
}

func waitForDaemon(socket string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := ipc.Dial(socket)
		if err == nil {
			_, err = client.Ping()
			client.Close()
			if err == nil {
				return nil
			}
		}
		lastErr = err
		time.Sleep(100 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timed out waiting for %s", socket)
	}
	return lastErr
}
