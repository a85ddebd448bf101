package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/spf13/cobra"

	"twodsi/pkg/config"
	"twodsi/pkg/reconstruction"
	"twodsi/pkg/visualization"
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct",
	Short: "Reconstruct spectral phase from a measurement table",
	Long: `Reconstruct runs the full pipeline over a measurement table: build the
shear-synchronous grid, resample the group-delay-difference curve,
accumulate absolute phase anchored at the reference frequency, and
detrend the result. The output is a (frequency, phase) table.`,
	RunE: runReconstruct,
}

func init() {
	reconstructCmd.Flags().String("input", "", "measurement table (frequency, group_delay_difference, shear, reference_frequency)")
	reconstructCmd.Flags().String("output", "phase.csv", "output table for the reconstructed phase")
	reconstructCmd.Flags().String("reference", "", "optional reference phase table for validation metrics")
	reconstructCmd.Flags().String("plot", "", "optional PNG file to render the reconstructed phase to")
	reconstructCmd.Flags().Int("degree", 0, "detrending polynomial degree (0 uses the configured default)")
	reconstructCmd.Flags().Float64("offset", 0, "calibration offset added to every resampled group-delay value")
	reconstructCmd.Flags().Bool("save-intermediary", false, "save per-stage intermediary tables")
	reconstructCmd.Flags().String("intermediary-dir", "intermediary_results", "directory for intermediary tables")

	reconstructCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(reconstructCmd)
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	reference, _ := cmd.Flags().GetString("reference")
	plotFile, _ := cmd.Flags().GetString("plot")
	degree, _ := cmd.Flags().GetInt("degree")
	offset, _ := cmd.Flags().GetFloat64("offset")
	saveIntermediary, _ := cmd.Flags().GetBool("save-intermediary")
	intermediaryDir, _ := cmd.Flags().GetString("intermediary-dir")

	if degree == 0 {
		degree = cfg.Reconstruction.PolyDegree
	}
	if offset == 0 {
		offset = cfg.Reconstruction.CalibrationOffset
	}
	if cfg.Output.SaveIntermediaryResults {
		saveIntermediary = true
	}

	params := &reconstruction.Params{
		InputFile:               input,
		OutputFile:              output,
		ReferenceFile:           reference,
		PolyDegree:              degree,
		CalibrationOffset:       offset,
		SaveIntermediaryResults: saveIntermediary,
		IntermediaryDir:         intermediaryDir,
	}

	if cfg.Output.Verbose {
		fmt.Println("================================")
		fmt.Println("2DSI SPECTRAL PHASE RECONSTRUCTION")
		fmt.Println("================================")
	}

	reconstructor := reconstruction.NewReconstructor(params)

	startTime := time.Now()
	if err := reconstructor.Process(); err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}
	processingTime := time.Since(startTime)

	axis := reconstructor.Axis()
	fmt.Printf("\nReconstruction completed in %.3f seconds\n", processingTime.Seconds())
	fmt.Printf("Grid: %d points, center index %d, spacing %.4g Hz\n",
		axis.Len(), axis.CenterIndex, axis.Frequencies[1]-axis.Frequencies[0])
	fmt.Printf("Phase table saved to: %s\n", output)

	if metrics := reconstructor.Metrics(); metrics != nil {
		fmt.Printf("\nValidation against reference:\n")
		fmt.Printf("=============================\n")
		fmt.Printf("RMSE: %.6g rad\n", metrics.RMSE)
		fmt.Printf("Correlation: %.4f\n", metrics.Correlation)
		fmt.Printf("Peak deviation: %.6g rad\n", metrics.PeakDeviation)
		fmt.Printf("Compared over %d reference points\n", metrics.Points)
	}

	if saveIntermediary {
		fmt.Println("\nIntermediary results saved to:")
		fmt.Printf("%s\n", intermediaryDir)
		fmt.Println("The following stages were saved:")
		fmt.Println("- 01_resampled_group_delay: group delay on the reconstruction grid")
		fmt.Println("- 02_accumulated_phase: phase after the bidirectional recursion")
		fmt.Println("- 03_detrended_phase: phase with constant and linear terms removed")
	}

	if plotFile != "" {
		if err := savePlot(reconstructor, plotFile); err != nil {
			log.Printf("Warning: Failed to save plot: %v", err)
		} else {
			fmt.Printf("\nPhase plot saved to: %s\n", plotFile)
		}
	}

	return nil
}

// savePlot renders the detrended phase, overlaying the raw accumulated
// phase for comparison.
func savePlot(r *reconstruction.Reconstructor, path string) error {
	plotter := visualization.NewPlotter()

	detrended := r.DetrendedPhase()
	if err := plotter.AddCurve("detrended", detrended.Frequencies, detrended.Phase,
		color.RGBA{0, 0, 255, 255}); err != nil {
		return err
	}

	accumulated := r.Phase()
	if err := plotter.AddCurve("accumulated", accumulated.Frequencies, accumulated.Phase,
		color.RGBA{200, 0, 0, 255}); err != nil {
		return err
	}

	return plotter.SavePlot(path)
}
