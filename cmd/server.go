package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coolify-notifications/push-relay/pkg"
	"github.com/coolify-notifications/push-relay/pkg/services"
	"github.com/coolify-notifications/push-relay/relay"
	"github.com/coolify-notifications/push-relay/server"
	httputil "github.com/coolify-notifications/push-relay/shared/http"
	"github.com/coolify-notifications/push-relay/shared/poller"
	"github.com/coolify-notifications/push-relay/shared/settings"
	"github.com/coolify-notifications/push-relay/shared/updater"
)

func newServerCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
		logFormat  string
	)
	var command = cobra.Command{
		Use:   "server",
		Short: "Starts the webhook relay",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := settings.Load(configPath, os.LookupEnv)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
			}
			if err := configureLogging(cfg.Log); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	command.Flags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "Configuration file location")
	command.Flags().StringVar(&logLevel, "loglevel", "", "Set the logging level. One of: debug|info|warn|error")
	command.Flags().StringVar(&logFormat, "logformat", "", "Set the logging format. One of: text|json")
	return &command
}

func configureLogging(cfg settings.Log) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if level < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		if os.Getenv("FORCE_LOG_COLORS") == "1" {
			log.SetFormatter(&log.TextFormatter{ForceColors: true})
		}
	default:
		return fmt.Errorf("Unknown log format '%s'", cfg.Format)
	}
	return nil
}

func run(ctx context.Context, cfg *settings.Config) error {
	httputil.SetCertsDir(cfg.TLSCertsDir)
	relayCfg, err := pkg.ParseConfig(cfg, os.LookupEnv)
	if err != nil {
		return err
	}
	if len(relayCfg.Gateway.Tokens()) == 0 {
		log.Warn("No Expo push tokens configured, webhook events will be rejected")
	} else {
		log.Infof("Loaded %d Expo push token(s)", len(relayCfg.Gateway.Tokens()))
	}
	for name := range relayCfg.Mirrors {
		log.Infof("Raw payloads are mirrored to %s", name)
	}

	scheduler, err := newScheduler(cfg, relayCfg.Gateway)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()
	for _, entry := range scheduler.Entries() {
		go entry.WrappedJob.Run()
	}

	registry := relay.NewMetricsRegistry()
	srv := server.NewServer(cfg.Server, relay.New(*relayCfg, registry), prometheus.Gatherers{registry, prometheus.DefaultGatherer})
	return srv.Serve(ctx)
}

// newScheduler registers the background jobs: the release check and the Coolify deployment poller.
func newScheduler(cfg *settings.Config, gateway services.ExpoService) (*cron.Cron, error) {
	scheduler := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(log.StandardLogger())),
		cron.SkipIfStillRunning(cron.PrintfLogger(log.StandardLogger())),
	))
	if cfg.Updates.Enabled {
		u := updater.NewUpdater(cfg.Updates.URL, gateway, cfg.Timeout())
		if _, err := scheduler.AddFunc(cfg.Updates.Schedule, u.Run); err != nil {
			return nil, fmt.Errorf("updates.schedule: %w", err)
		}
		log.Infof("Checking for updates %s", cfg.Updates.Schedule)
	}
	if cfg.Coolify.APIURL != "" {
		p := poller.NewPoller(cfg.Coolify.APIURL, cfg.Coolify.APIToken, cfg.Coolify.APIEndpoint, gateway, cfg.Timeout())
		if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.PollInterval()), p.Run); err != nil {
			return nil, err
		}
		log.Infof("Polling %s every %s", p.URL(), cfg.PollInterval())
	}
	return scheduler, nil
}
