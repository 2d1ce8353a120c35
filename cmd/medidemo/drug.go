package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
)

var drugCmd = &cobra.Command{
	Use:     "drug <name>",
	Short:   "Look up a drug by its common name",
	Example: "  medidemo drug aspirin",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd.Context(), func(cat *catalog.Catalog) error {
			res, err := cat.Drugs.Lookup(args[0])
			if err != nil {
				return err
			}
			return printResult(os.Stdout, res, func(w io.Writer) {
				if !res.Found {
					fmt.Fprintf(w, "No entry for %q. Try: %s\n", res.Query, strings.Join(res.Suggestions, ", "))
					return
				}
				d := res.Drug
				fmt.Fprintf(w, "%s (%s)\n", d.BrandName, d.GenericName)
				fmt.Fprintf(w, "Manufacturer: %s\n", d.Manufacturer)
				fmt.Fprintf(w, "Purpose: %s\n", d.Purpose)
				fmt.Fprintf(w, "Dosage: %s\n", d.Dosage)
				fmt.Fprintf(w, "Warnings: %s\n", d.Warnings)
				fmt.Fprintf(w, "Side effects: %s\n", d.SideEffects)
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(drugCmd)
}
