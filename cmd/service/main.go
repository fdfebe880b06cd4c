package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fitnesshub/backend/internal"
	"github.com/fitnesshub/backend/internal/config"
	"github.com/fitnesshub/backend/internal/logging"
)

func main() {
	if err := newServiceCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newServiceCmd() *cobra.Command {
	var env, configPath string

	cmd := &cobra.Command{
		Use:           "service",
		Short:         "Run the fitness hub API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd.Context(), env, configPath)
			if err != nil {
				log.Errorf("service: %s", err)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	cmd.Flags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")

	return cmd
}

func run(ctx context.Context, env, configPath string) error {
	log.Warnf("---->> running in [%s] environment", env)

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	secrets := secretsFromEnv(os.Getenv)

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        secrets.SentryDSN,
		SentryServerName: "fithub-backend",
	})

	if missing := secrets.missingRequired(); len(missing) > 0 {
		return fmt.Errorf("required env vars not set: %v", missing)
	}
	for _, name := range secrets.missingOptional() {
		log.Warnf("env var %s not set", name)
	}

	versionInfo := buildRevision()
	log.Debugf("running version: %s, port: %d", versionInfo, cfg.Port)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:                  cfg,
		IpInfoAPIKey:            secrets.IPInfoAPIKey,
		UserTokenSecret:         secrets.UserTokenSecret,
		VersionInfo:             versionInfo,
		AdminUsername:           secrets.AdminUsername,
		AdminPasswordHash:       secrets.AdminPasswordHash,
		DBUser:                  secrets.DBUser,
		DBPassword:              secrets.DBPassword,
		RedisPassword:           secrets.RedisPassword,
		HoneycombTracingEnabled: secrets.HoneycombEnabled,
	})
	if err != nil {
		return fmt.Errorf("new server: %w", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received, stopping ...")
	server.GracefulShutdown()

	return nil
}

// buildRevision reads the vcs revision stamped by the go toolchain.
func buildRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	revision, dirty := "", false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return info.Main.Version
	}
	if dirty {
		return revision + "-dirty"
	}
	return revision
}
