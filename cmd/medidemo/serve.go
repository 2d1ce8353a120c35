package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/config"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/server"
)

var (
	flagPort     string
	flagSimulate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if flagPort != "" {
			cfg.Server.Port = flagPort
		}
		if cmd.Flags().Changed("simulate-latency") {
			cfg.Server.SimulateLatency = flagSimulate
		}

		if mode := os.Getenv(gin.EnvGinMode); mode != "" {
			gin.SetMode(mode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cat, db, err := openCatalog(ctx, cfg)
		if err != nil {
			return err
		}
		// a nil *sql.DB must not reach the router as a non-nil interface
		var health server.HealthChecker
		if db != nil {
			defer db.Close()
			health = db
		}

		router := server.NewRouter(cat, health, cfg.Server, cfg.Latency)
		logger.L().Infow("starting server",
			"port", cfg.Server.Port,
			"catalog", cat.Source,
			"simulate_latency", cfg.Server.SimulateLatency)
		return server.New(":"+cfg.Server.Port, router).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "listen port (overrides server.port)")
	serveCmd.Flags().BoolVar(&flagSimulate, "simulate-latency", false, "delay each API response by its latency.* setting")
	rootCmd.AddCommand(serveCmd)
}
