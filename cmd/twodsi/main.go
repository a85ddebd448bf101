// Package main is the entry point for the twodsi CLI: spectral phase
// reconstruction from two-dimensional spectral-shearing interferometry
// (2DSI) group-delay measurements.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the twodsi CLI.
var rootCmd = &cobra.Command{
	Use:   "twodsi",
	Short: "Spectral phase reconstruction from 2DSI measurements",
	Long: `twodsi reconstructs the spectral phase of an ultrashort laser pulse
from a measured group-delay-difference table produced by a 2DSI
reduction. The reconstruction builds a shear-synchronous frequency grid,
resamples the group-delay curve onto it, recovers absolute phase with a
bidirectional recursion anchored at the reference frequency, and removes
the unobservable constant and linear phase terms by constrained
polynomial detrending.

Use the simulate command to generate a synthetic measurement table from
a known polynomial phase for testing the reconstruction end to end.`,
}

func init() {
	rootCmd.PersistentFlags().String("config", "twodsi.yaml", "config file with reconstruction and simulation defaults")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
