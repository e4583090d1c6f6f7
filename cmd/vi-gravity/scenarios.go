package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-gravity/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in presets",
	Args:  cobra.NoArgs,
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range scenario.Presets() {
		f, err := scenario.Preset(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == scenario.DefaultPreset {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-10s %2d bodies %4d photons  %s\n",
			marker, name, len(f.Bodies), photonCount(f), f.Description)
	}
	return nil
}

func photonCount(f *scenario.File) int {
	n := len(f.Photons)
	for _, b := range f.Beams {
		n += b.Count
	}
	return n
}
