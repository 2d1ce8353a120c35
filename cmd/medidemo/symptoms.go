package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/symptom"
)

var flagListSymptoms bool

var symptomsCmd = &cobra.Command{
	Use:   "symptoms [tag...]",
	Short: "Rank conditions by the share of their symptoms you selected",
	Example: `  medidemo symptoms fever cough headache
  medidemo symptoms --list`,
	RunE: runSymptoms,
}

func init() {
	symptomsCmd.Flags().BoolVar(&flagListSymptoms, "list", false, "list known symptom tags and exit")
	rootCmd.AddCommand(symptomsCmd)
}

func runSymptoms(cmd *cobra.Command, args []string) error {
	return withCatalog(cmd.Context(), func(cat *catalog.Catalog) error {
		if flagListSymptoms {
			known := cat.Symptoms.KnownSymptoms()
			return printResult(os.Stdout, known, func(w io.Writer) {
				fmt.Fprintln(w, strings.Join(known, "\n"))
			})
		}

		results, err := cat.Symptoms.Match(args)
		if err != nil {
			return err
		}
		return printResult(os.Stdout, results, func(w io.Writer) {
			if len(results) == 0 {
				fmt.Fprintln(w, "No matching conditions.")
				return
			}
			for i, r := range results {
				fmt.Fprintf(w, "%d. %s - %d%% (%s)\n", i+1, r.Condition, r.Percentage, r.Severity)
				fmt.Fprintf(w, "   matched: %s\n", strings.Join(r.Matched, ", "))
				fmt.Fprintf(w, "   advice: %s\n", r.Advice)
			}
			if top := symptom.HighestSeverity(results); top == symptom.SeveritySevere {
				fmt.Fprintln(w, "At least one match is severe. Please see a doctor promptly.")
			}
		})
	})
}
