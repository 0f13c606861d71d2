package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Meciahacks/mindful-reach-clinic-01260/modules/intake"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/config"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/environment"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/httpserver"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/logger"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/ratelimiter"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the intake HTTP API",
	Long: `Run the intake HTTP API under /api until SIGINT or SIGTERM.

Endpoints:
  POST /api/contact           submit the intake form
  POST /api/send-test-email   send the configuration-test email
  GET  /api/health            liveness
  GET  /api/ready             primary channel readiness`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		var srvCfg httpserver.Config
		if err := config.Load(&srvCfg); err != nil {
			return fmt.Errorf("load http config: %w", err)
		}

		ctx := cmd.Context()
		ids := make([]string, 0, 3)
		for _, id := range a.dispatcher.Channels() {
			ids = append(ids, string(id))
		}
		a.log.LogAttrs(ctx, slog.LevelInfo, "intake channels",
			slog.String("enabled", strings.Join(ids, ",")),
			logger.Channel(string(a.dispatcher.Primary())),
			logger.Component("cli"),
		)
		if err := a.dispatcher.Ready(ctx); err != nil {
			a.log.LogAttrs(ctx, slog.LevelWarn, "primary channel is not configured; submissions will fail",
				logger.Error(err),
				logger.Component("cli"),
			)
		}

		var svcOpts []intake.ServiceOption
		if a.cfg.RateLimit.Enabled() {
			limiter, err := ratelimiter.New(a.cfg.RateLimit)
			if err != nil {
				return fmt.Errorf("build rate limiter: %w", err)
			}
			defer limiter.Close()
			svcOpts = append(svcOpts, intake.WithRateLimiter(limiter))
		}

		router := intake.Router(intake.RouterOptions{
			AllowedOrigins: a.cfg.FrontendURL,
			Middlewares:    []func(next http.Handler) http.Handler{environment.Middleware(a.env)},
			API:            intake.NewService(a.dispatcher, a.log, svcOpts...),
		})

		srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(a.log))
		return srv.Run(ctx, router)
	},
}
