package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/bmi"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
)

var (
	flagWeight float64
	flagHeight float64
)

var bmiCmd = &cobra.Command{
	Use:     "bmi",
	Short:   "Compute BMI, category and ideal weight",
	Example: "  medidemo bmi --weight 70 --height 175",
	RunE:    runBMI,
}

func init() {
	bmiCmd.Flags().Float64Var(&flagWeight, "weight", 0, "weight in kilograms (required)")
	bmiCmd.Flags().Float64Var(&flagHeight, "height", 0, "height in centimeters (required)")
	bmiCmd.MarkFlagRequired("weight")
	bmiCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(bmiCmd)
}

func runBMI(cmd *cobra.Command, args []string) error {
	return withCatalog(cmd.Context(), func(cat *catalog.Catalog) error {
		res, err := cat.BMI.Evaluate(flagWeight, flagHeight)
		if err != nil {
			return err
		}
		return printResult(os.Stdout, res, func(w io.Writer) {
			fmt.Fprintf(w, "BMI: %.1f (%s)\n", res.BMI, res.Category)
			fmt.Fprintf(w, "Ideal weight: %.1f kg\n", res.IdealWeightKg)
			switch res.Direction {
			case bmi.DirectionOver:
				fmt.Fprintf(w, "You are %.1f kg above the ideal weight\n", res.DeviationKg)
			case bmi.DirectionUnder:
				fmt.Fprintf(w, "You are %.1f kg below the ideal weight\n", -res.DeviationKg)
			default:
				fmt.Fprintln(w, "You are at the ideal weight")
			}
			fmt.Fprintf(w, "Advice: %s\n", res.Advice)
			printList(w, "Recommendations", res.Recommendations)
			printList(w, "Health risks", res.HealthRisks)
		})
	})
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}
