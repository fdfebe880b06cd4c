package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/fitnesshub/backend/internal/config"
	"github.com/fitnesshub/backend/internal/launcher"
)

func newLauncherCmd(root *rootOptions) *cobra.Command {
	launcherCmd := &cobra.Command{
		Use:   "launcher",
		Short: "Manage the launcher prediction cache",
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evict expired launcher predictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.env, root.configPath)
			if err != nil {
				return err
			}

			rdb := redis.NewClient(&redis.Options{
				Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
				Password: os.Getenv("FITHUB_REDIS_PASS"),
			})
			defer rdb.Close()

			evicted, err := launcher.NewCache(rdb, cfg.LauncherCacheTTL()).Sweep(cmd.Context(), time.Now())
			if err != nil {
				return fmt.Errorf("sweep launcher cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "evicted %d expired predictions\n", evicted)
			return nil
		},
	}

	launcherCmd.AddCommand(sweepCmd)
	return launcherCmd
}
