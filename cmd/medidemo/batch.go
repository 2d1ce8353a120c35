package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/config"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/runner"
)

var (
	flagInput      string
	flagOutput     string
	flagRejectFile string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate NDJSON calculator requests → NDJSON outcomes",
	Long: `Reads one JSON request per line, e.g.
  {"op":"bmi","weight_kg":70,"height_cm":175}
  {"op":"heart_rate","heart_rate":70,"age":30}
  {"op":"symptoms","symptoms":["fever","cough"]}
  {"op":"drug","name":"aspirin"}
  {"op":"heart_rate_series","readings":[{"at":"2024-03-01 08:00","bpm":72}]}
and writes one outcome per line.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&flagInput, "input", "", "input file (default stdin)")
	batchCmd.Flags().StringVar(&flagOutput, "output", "", "output file (default stdout)")
	batchCmd.Flags().StringVar(&flagRejectFile, "reject-file", "", "file to store undecodable request lines")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	// Override config with command line flags
	if flagRejectFile != "" {
		cfg.Output.RejectFile = flagRejectFile
	}

	opts := runner.Options{
		InputName:  "stdin",
		OutputName: "stdout",
		RejectFile: cfg.Output.RejectFile,
		RunLog:     cfg.Logging.RunLog,
	}

	// Input reader
	var in io.Reader
	if flagInput == "" {
		in = os.Stdin
	} else {
		f, err := os.Open(flagInput)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
		opts.InputName = flagInput
	}

	// Output writer
	var out io.Writer
	if flagOutput == "" {
		out = os.Stdout
	} else {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
		opts.OutputName = flagOutput
	}

	return withCatalog(cmd.Context(), func(cat *catalog.Catalog) error {
		return runner.RunBatch(cmd.Context(), cat, in, out, opts)
	})
}
