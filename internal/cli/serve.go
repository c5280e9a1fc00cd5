package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/reoring/cardbrand/i18n"
	"github.com/reoring/cardbrand/internal/config"
	"github.com/reoring/cardbrand/internal/httpapi"
	"github.com/reoring/cardbrand/internal/logging"
	"github.com/reoring/cardbrand/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve classification over HTTP",
		Long: `Serve POST /v1/classify, GET /v1/rules, GET /healthz and GET /metrics
until interrupted. Numbers are never logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			h := httpapi.New(a.classifier, metrics.New())
			srv := httpapi.NewServer(a.cfg.Server.Addr, h.Router())
			logging.Infof("%s", i18n.T("serve.listening", map[string]any{"Addr": ln.Addr().String()}))
			return httpapi.Serve(cmd.Context(), srv, ln)
		},
	}
	cmd.Flags().String("server-addr", config.Defaults["server.addr"].(string), "listen address")
	return cmd
}
