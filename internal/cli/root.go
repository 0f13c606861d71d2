// Package cli provides the intake command line: the HTTP server and the
// configuration-test email.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Meciahacks/mindful-reach-clinic-01260/modules/intake"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/clientip"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/config"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/environment"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/logger"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/requestid"
)

// AppConfig holds the process-level settings.
type AppConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"mindful-reach-intake"`
	LogLevel string `env:"LOG_LEVEL"`
}

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Clinic intake form dispatch service",
	Long: `intake receives contact-form submissions from the clinic website and
delivers each one to the configured channels: an SMTP relay, an HTTP email
API (Resend, Postmark or the local dev sender) and a Google spreadsheet log.

Configuration is read from the environment and an optional .env file.

Example:
  intake serve                                 # run the HTTP API
  intake send-test-email --to staff@clinic.com # verify email settings`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if len(envFiles) == 0 {
			return nil
		}
		return config.LoadEnv(envFiles...)
	},
}

// ExecuteContext runs the root command with ctx, which subcommands use for
// shutdown.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load; later files win, real environment wins over all")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(testEmailCmd)
}

// app is the wiring shared by every subcommand.
type app struct {
	env        environment.Environment
	log        *slog.Logger
	cfg        intake.Config
	dispatcher *intake.Dispatcher
}

func setup() (*app, error) {
	var appCfg AppConfig
	if err := config.Load(&appCfg); err != nil {
		return nil, fmt.Errorf("load app config: %w", err)
	}
	env := environment.Parse(appCfg.Env)

	opts := []logger.Option{
		logger.WithEnvironment(env, appCfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if appCfg.LogLevel != "" {
		level, err := logger.ParseLevel(appCfg.LogLevel, slog.LevelInfo)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	var cfg intake.Config
	if err := config.Load(&cfg); err != nil {
		return nil, fmt.Errorf("load intake config: %w", err)
	}

	d, err := intake.NewDispatcherFromConfig(cfg, log, intake.ChannelOptions{})
	if err != nil {
		return nil, fmt.Errorf("build dispatcher: %w", err)
	}

	return &app{env: env, log: log, cfg: cfg, dispatcher: d}, nil
}
