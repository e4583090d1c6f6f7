package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-gravity/config"
)

var rootCmd = &cobra.Command{
	Use:   "vi-gravity",
	Short: "Relativistic 2D n-body gravity sandbox",
	Long: "vi-gravity simulates stars, planets, moons, rocks, black holes and photons " +
		"under Newtonian gravity with relativistic velocity composition and light bending.",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flagKeys maps config keys to persistent flag names
var flagKeys = map[string]string{
	"verbose":     "verbose",
	"environment": "environment",
	"scenario":    "scenario",
	"randomize":   "randomize",
	"seed":        "seed",
	"time_scale":  "time-scale",
	"steps":       "steps",
	"fps":         "fps",
	"sound":       "sound",
	"watch":       "watch",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .vi-gravity.yaml)")
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.String("environment", "development", "logger flavor: development or production")
	pf.StringP("scenario", "s", "", "preset name or scenario TOML path (default solar)")
	pf.Bool("randomize", false, "rotate unpinned bodies by a random angle")
	pf.Uint64("seed", 0, "seed for --randomize")
	pf.Float64("time-scale", 0, "simulated seconds per real second, overrides the scenario")
	pf.Int("steps", 0, "desired substeps per frame, overrides the scenario")
	pf.Int("fps", 0, "frames per second")
	pf.Bool("sound", false, "play merge and alarm cues")
	pf.Bool("watch", false, "reload the scenario file when it changes")

	bindFlags(flagKeys)
}

// bindFlags maps config keys to persistent flags
// Unchanged flags fall through to env, config file and defaults
func bindFlags(keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	return config.Init(cfgFile)
}
