package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/config"
	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/event"
	"github.com/lixenwraith/vi-gravity/scenario"
	"github.com/lixenwraith/vi-gravity/sound"
)

const productionEnv = "production"

// newLogger creates a structured logger appropriate for the environment
// Production uses JSON, development uses console; outputs replace stderr when given
func newLogger(cfg config.Config, outputs ...string) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Environment == productionEnv {
		zc = zap.NewProductionConfig()
	}
	if cfg.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	if len(outputs) > 0 {
		zc.OutputPaths = outputs
		zc.ErrorOutputPaths = outputs
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.With(zap.String("environment", cfg.Environment)), nil
}

// app is the state shared by every simulation command
type app struct {
	cfg    config.Config
	logger *zap.Logger
	sim    *engine.Simulation
	source string
	name   string
}

// setup loads config, builds the logger and the simulation with its scenario
func setup(cmd *cobra.Command, logOutputs ...string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg, logOutputs...)
	if err != nil {
		return nil, err
	}

	sim, err := engine.New(cfg.Engine(), engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, sim: sim}

	f, source, err := scenario.Resolve(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	a.source = source
	a.name = f.Name
	if err := a.reset(cmd, sim, f); err != nil {
		return nil, err
	}
	logger.Info("simulation ready",
		zap.String("run_id", sim.RunID().String()),
		zap.String("scenario", f.Name),
		zap.String("source", source),
	)
	return a, nil
}

func (a *app) applyOverrides(cmd *cobra.Command, sim *engine.Simulation) error {
	if cmd == nil {
		return nil
	}
	if cmd.Flags().Changed("time-scale") {
		if err := sim.SetTimeScale(a.cfg.TimeScale); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("steps") {
		if err := sim.SetSteps(a.cfg.Steps); err != nil {
			return err
		}
	}
	return nil
}

// attachSound registers merge and alarm cues; audio failures only warn
func (a *app) attachSound(loop *engine.Loop) func() {
	if !a.cfg.Sound {
		return func() {}
	}
	m := sound.NewManager()
	if err := m.Initialize(); err != nil {
		a.logger.Warn("sound disabled", zap.Error(err))
		return func() {}
	}
	loop.RegisterEventHandler(m)
	return m.Cleanup
}

// watch reloads the scenario file into loop on every change until ctx is done
// Presets are embedded and never watched
func (a *app) watch(ctx context.Context, cmd *cobra.Command, loop *engine.Loop) error {
	if !a.cfg.Watch {
		return nil
	}
	if strings.HasPrefix(a.source, "preset:") {
		a.logger.Warn("watch ignored for preset", zap.String("source", a.source))
		return nil
	}
	w, err := scenario.NewWatcher(a.source, a.logger)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	go func() {
		for change := range w.Changes {
			if change.Err != nil {
				a.logger.Warn("scenario reload rejected", zap.String("path", change.Path), zap.Error(change.Err))
				continue
			}
			var err error
			loop.RunSafe(func(sim *engine.Simulation) {
				err = a.reset(cmd, sim, change.File)
			})
			if err != nil {
				a.logger.Error("scenario reload failed", zap.Error(err))
			}
		}
	}()
	a.logger.Info("watching scenario", zap.String("path", w.Path))
	return nil
}

// reset rebuilds sim from f, then reapplies explicit flag overrides
func (a *app) reset(cmd *cobra.Command, sim *engine.Simulation, f *scenario.File) error {
	s, err := scenario.Build(f, scenario.BuildOptions{
		Randomize: a.cfg.Randomize,
		Seed:      a.cfg.Seed,
		Source:    a.source,
	})
	if err != nil {
		return err
	}
	if err := sim.Reset(s); err != nil {
		return err
	}
	return a.applyOverrides(cmd, sim)
}

// logEvents logs merges and health events at the levels the kernel uses
func (a *app) logEvents() event.Handler {
	return event.HandlerFunc{
		Types: []event.EventType{event.EventBodyMerged, event.EventFocusReassigned, event.EventNonFinite},
		Fn: func(ev event.SimEvent) {
			switch p := ev.Payload.(type) {
			case *event.MergePayload:
				a.logger.Info("merge",
					zap.String("gainer", p.GainerName),
					zap.String("destroyed", p.DestroyedName),
					zap.Stringer("destroyed_kind", p.DestroyedKind),
					zap.Float64("mass", p.Mass),
					zap.Int64("frame", ev.Frame),
				)
			case *event.FocusPayload:
				a.logger.Debug("focus reassigned", zap.Uint64("from", uint64(p.Previous)), zap.Uint64("to", uint64(p.Current)))
			case *event.NonFinitePayload:
				a.logger.Warn("non-finite state", zap.String("name", p.Name), zap.Bool("photon", p.Photon))
			}
		},
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
