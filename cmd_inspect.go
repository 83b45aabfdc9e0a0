package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessr/internal/audit"
	"github.com/robalobadob/guessr/internal/httpserver"
	"github.com/robalobadob/guessr/internal/words"
)

func (a *app) inspectCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve the audit log over read-only HTTP",
		Long: `Serves recorded sessions from the audit database (GUESSR_AUDIT_DB or
--audit-db) together with the state graph.

Endpoints:
  GET /health, /graph, /debug/words
  GET /sessions, /sessions/{id}/steps, /rounds

Metrics live with the playing process (guessr play --inspect), so /metrics
is not served here.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") && a.cfg.InspectAddr != "" {
				addr = a.cfg.InspectAddr
			}
			if a.cfg.AuditDB == "" {
				return errNoAudit
			}
			store, err := audit.Open(a.cfg.AuditDB)
			if err != nil {
				return err
			}
			defer store.Close()
			tbl, err := a.loadTable()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			srv := inspectServer(store, tbl)
			log.Info().Str("addr", addr).Str("db", a.cfg.AuditDB).Msg("starting inspector")
			fmt.Fprintf(cmd.OutOrStdout(), "serving %s on http://%s\n", a.cfg.AuditDB, addr)
			return srv.Start(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address (default from GUESSR_INSPECT_ADDR)")
	return cmd
}

// inspectServer serves a recorded audit log. Game metrics belong to the
// process that played, so /metrics is not mounted.
func inspectServer(store *audit.Store, tbl *words.Table) *httpserver.Server {
	return httpserver.New(
		httpserver.WithAudit(store),
		httpserver.WithTable(tbl),
	)
}
