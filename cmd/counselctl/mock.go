package main

import (
	"os/signal"
	"syscall"

	"github.com/InsulaLabs/counsel/internal/mockapi"
	"github.com/spf13/cobra"
)

func mockCmd(a *app) *cobra.Command {
	var (
		addr  string
		token string
	)
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve an in-memory backend for trying the console locally",
		Long: `Serve an in-memory backend seeded with a few records.

Point the console at it with --base-url http://127.0.0.1:8080 and export the
token given with --token.`,
		Annotations: offline,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := mockapi.New(mockapi.WithToken(token), mockapi.WithLogger(a.logger))
			info("serving on http://%s, token %q", addr, token)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().StringVar(&token, "token", "dev-token", "Bearer token the mock accepts")
	return cmd
}
