// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opengazette/boearchiver/pkg/boe"
)

// RootOpts holds global CLI options.
type RootOpts struct {
	JSONOut bool
	Quiet   bool
	Config  string
}

// Execute runs the CLI with the given version string.
func Execute(version string) error {
	ro := &RootOpts{}
	ctx, cancel := signalContext(context.Background())
	defer cancel()

	root := &cobra.Command{
		Use:           "boearchiver",
		Short:         "Archive the daily bulletins of the Spanish Official Gazette (BOE)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	// Global flags
	root.PersistentFlags().BoolVar(&ro.JSONOut, "json", false, "Emit machine-readable JSON events")
	root.PersistentFlags().BoolVarP(&ro.Quiet, "quiet", "q", false, "Quiet mode (plain per-day lines, no progress bar)")
	root.PersistentFlags().StringVar(&ro.Config, "config", "", "Path to config file (JSON or YAML)")

	// Add commands
	runCmd := newRunCmd(ctx, ro)
	root.AddCommand(runCmd)
	root.AddCommand(newCleanCmd(ro))
	root.AddCommand(newUploadCmd(ctx, ro))
	root.AddCommand(newServeCmd(ro, version))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd(version))

	// Make run the default command when no subcommand is given
	root.RunE = runCmd.RunE
	root.Flags().AddFlagSet(runCmd.Flags())
	root.SetHelpCommand(&cobra.Command{Use: "help", Hidden: true})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// textProgress returns a plain per-day line handler for quiet mode.
func textProgress() boe.ProgressFunc {
	return func(ev boe.ProgressEvent) {
		switch ev.Event {
		case "day_done":
			fmt.Printf("done: %s (%d bytes)\n", ev.Date, ev.Bytes)
		case "day_cached":
			fmt.Printf("skip: %s (cached)\n", ev.Date)
		case "day_empty":
			fmt.Printf("skip: %s (no bulletin)\n", ev.Date)
		case "day_error":
			fmt.Fprintf(os.Stderr, "error: %s\n", ev.Message)
		}
	}
}

// jsonProgress returns a JSON-lines progress handler.
func jsonProgress(w io.Writer) boe.ProgressFunc {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return func(ev boe.ProgressEvent) {
		_ = enc.Encode(ev)
	}
}

func printSummary(res *boe.Result) {
	fmt.Printf("Downloaded: %d\nAlready cached: %d\nDays without bulletin: %d\nErrors: %d\n",
		res.Downloaded, res.Cached, res.NoBulletin, res.Errors)
}

func maskToken(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 4 {
		return "********"
	}
	return "********" + s[len(s)-4:]
}
