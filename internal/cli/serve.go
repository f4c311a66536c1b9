// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opengazette/boearchiver/internal/server"
)

func newServeCmd(ro *RootOpts, version string) *cobra.Command {
	var (
		addr     string
		port     int
		output   string
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP job API",
		Long: `Starts an HTTP server exposing:
  - REST API to start, inspect, and cancel archive runs
  - WebSocket with live job updates

The output path is configured server-side only (not via the API).

Example:
  boearchiver serve
  boearchiver serve --port 3000 --output /data/boe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.Config{
				Addr:      addr,
				Port:      port,
				OutputDir: output,
				Endpoint:  endpoint,
			}

			srv := server.New(cfg, version)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "0.0.0.0", "Address to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	cmd.Flags().StringVarP(&output, "output", "o", "./boe", "Archive output directory")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Gazette API base URL override")

	return cmd
}
