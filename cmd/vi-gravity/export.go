package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/scenario"
)

var exportCmd = &cobra.Command{
	Use:   "export <path|->",
	Short: "Write the current system as a scenario file",
	Long: "export loads the configured scenario, optionally advances it, and writes " +
		"the resulting bodies and photons as TOML. Use - for stdout.",
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Int("frames", 0, "frames to advance before exporting")
	exportCmd.Flags().String("name", "", "scenario name (default: source scenario name)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	frames, _ := cmd.Flags().GetInt("frames")
	interval := 1 / float64(a.cfg.FPS)
	for range frames {
		if _, err := a.sim.Step(interval); err != nil {
			return fmt.Errorf("frame %d: %w", a.sim.Frame(), err)
		}
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = a.name
	}
	f := scenario.FromSimulation(a.sim, name)

	if args[0] == "-" {
		data, err := scenario.Marshal(f)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := scenario.Save(args[0], f); err != nil {
		return err
	}
	a.logger.Info("scenario exported",
		zap.String("path", args[0]),
		zap.Int("bodies", len(f.Bodies)),
		zap.Int("photons", len(f.Photons)),
	)
	return nil
}
