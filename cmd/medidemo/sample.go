package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/heartrate"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/sample"
)

var (
	sampleStart    string
	sampleHours    int
	sampleInterval time.Duration
	sampleSeed     uint64
	sampleSummary  bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate synthetic demo data",
}

var sampleHeartRateCmd = &cobra.Command{
	Use:   "heart-rate",
	Short: "Generate a synthetic heart-rate series following a daily routine",
	Example: `  medidemo sample heart-rate --seed 42 > readings.ndjson
  medidemo sample heart-rate --start "2024-03-01 00:00" --hours 6 --summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := sample.ParseStart(sampleStart, sampleHours, time.Now())
		if err != nil {
			return err
		}

		readings, err := sample.HeartRateSeries(sample.Options{
			Start:    start,
			Hours:    sampleHours,
			Interval: sampleInterval,
			Seed:     sampleSeed,
		})
		if err != nil {
			return err
		}

		if !sampleSummary {
			enc := json.NewEncoder(os.Stdout)
			for _, r := range readings {
				if err := enc.Encode(r); err != nil {
					return fmt.Errorf("write reading: %w", err)
				}
			}
			return nil
		}

		summary, err := heartrate.Summarize(readings)
		if err != nil {
			return err
		}
		return printResult(os.Stdout, summary, func(w io.Writer) {
			fmt.Fprintf(w, "Readings: %d (%s to %s)\n", summary.Count,
				summary.Start.Format(time.RFC3339), summary.End.Format(time.RFC3339))
			fmt.Fprintf(w, "Mean: %.1f bpm, min: %d, max: %d\n", summary.Mean, summary.Min, summary.Max)
			for _, st := range heartrate.Statuses {
				if n := summary.ByStatus[st]; n > 0 {
					fmt.Fprintf(w, "  %-14s %d\n", st, n)
				}
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.AddCommand(sampleHeartRateCmd)

	sampleHeartRateCmd.Flags().StringVar(&sampleStart, "start", "", "start time in any common layout (default: --hours before now)")
	sampleHeartRateCmd.Flags().IntVar(&sampleHours, "hours", sample.DefaultHours, "length of the series in hours")
	sampleHeartRateCmd.Flags().DurationVar(&sampleInterval, "interval", sample.DefaultInterval, "time between readings")
	sampleHeartRateCmd.Flags().Uint64Var(&sampleSeed, "seed", 0, "random seed (0 = random)")
	sampleHeartRateCmd.Flags().BoolVar(&sampleSummary, "summary", false, "print a summary instead of the readings")
}
