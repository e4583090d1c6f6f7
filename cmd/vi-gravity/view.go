package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/view"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive terminal viewer",
	Args:  cobra.NoArgs,
	RunE:  runView,
}

func init() {
	viewCmd.Flags().Float64("zoom", view.DefaultZoom, "initial meters per terminal column")
	viewCmd.Flags().String("log-file", "", "write logs here instead of discarding them")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the viewer, so logs go to a file or nowhere
	logOut := []string{"/dev/null"}
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		logOut = []string{path}
	}
	a, err := setup(cmd, logOut...)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	screen, err := view.NewScreen()
	if err != nil {
		return err
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	loop := engine.NewLoop(a.sim, a.cfg.FPS, nil)
	loop.RegisterEventHandler(a.logEvents())
	defer a.attachSound(loop)()

	ctx, cancel := signalContext()
	defer cancel()
	if err := a.watch(ctx, cmd, loop); err != nil {
		return err
	}

	zoom, _ := cmd.Flags().GetFloat64("zoom")
	v := view.New(screen, loop, view.Options{FPS: a.cfg.FPS, Zoom: zoom, Logger: a.logger})
	if err := v.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
