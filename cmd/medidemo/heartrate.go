package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/heartrate"
)

var (
	flagRate int
	flagAge  int
)

var heartRateCmd = &cobra.Command{
	Use:     "heart-rate",
	Short:   "Classify a resting heart rate and show training zones",
	Example: "  medidemo heart-rate --rate 70 --age 30",
	RunE:    runHeartRate,
}

func init() {
	heartRateCmd.Flags().IntVar(&flagRate, "rate", 0, "measured heart rate in bpm (required)")
	heartRateCmd.Flags().IntVar(&flagAge, "age", 0, "age in years (required)")
	heartRateCmd.MarkFlagRequired("rate")
	heartRateCmd.MarkFlagRequired("age")
	rootCmd.AddCommand(heartRateCmd)
}

func runHeartRate(cmd *cobra.Command, args []string) error {
	return withCatalog(cmd.Context(), func(cat *catalog.Catalog) error {
		res, err := cat.HeartRate.Analyze(flagRate, flagAge)
		if err != nil {
			return err
		}
		return printResult(os.Stdout, res, func(w io.Writer) {
			fmt.Fprintf(w, "Heart rate: %d bpm (%s)\n", res.HeartRate, res.Status)
			fmt.Fprintf(w, "Age group: %s (typical resting %d-%d bpm)\n", res.AgeGroup,
				res.Reference.Resting.Low, res.Reference.Resting.High)
			fmt.Fprintf(w, "Max heart rate: %d bpm\n", res.MaxHR)
			fmt.Fprintf(w, "Target zone: %d-%d bpm\n", res.Target.Low, res.Target.High)
			printZone(w, "Recovery", res.Zones.Recovery)
			printZone(w, "Fat burn", res.Zones.FatBurn)
			printZone(w, "Aerobic", res.Zones.Aerobic)
			printZone(w, "Anaerobic", res.Zones.Anaerobic)
			printZone(w, "Maximum", res.Zones.Maximum)
			fmt.Fprintf(w, "Advice: %s\n", res.Advice)
		})
	})
}

func printZone(w io.Writer, name string, z heartrate.Zone) {
	fmt.Fprintf(w, "  %-10s %d-%d bpm\n", name, z.Low, z.High)
}
