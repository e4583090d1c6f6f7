package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/metrics"
	"github.com/lixenwraith/vi-gravity/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation in the background behind an HTTP API",
	Long: "serve advances the simulation on a wall-clock loop and exposes its state, " +
		"controls and Prometheus metrics over HTTP.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (default :8080)")
	if err := viper.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	collector := metrics.NewCollector()
	a.sim.AddObserver(collector)

	loop := engine.NewLoop(a.sim, a.cfg.FPS, nil)
	loop.RegisterEventHandler(collector)
	loop.RegisterEventHandler(a.logEvents())
	defer a.attachSound(loop)()

	ctx, cancel := signalContext()
	defer cancel()
	if err := a.watch(ctx, cmd, loop); err != nil {
		return err
	}

	loop.Start()
	defer loop.Stop()
	a.logger.Info("loop started", zap.Int("fps", a.cfg.FPS))

	return server.New(loop, collector, a.logger).Run(ctx, a.cfg.ListenAddr)
}
