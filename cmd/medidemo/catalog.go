package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/config"
)

var (
	catalogFile   string
	exportDialect string
	exportOutput  string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and export the reference catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON or YAML catalog file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := catalogFile
		if path == "" {
			path = config.Get().Catalog.File
		}
		if path == "" {
			return fmt.Errorf("--file is required (or set catalog.file)")
		}

		doc, err := catalog.LoadFile(path)
		if err != nil {
			return fmt.Errorf("catalog validation failed: %w", err)
		}

		fmt.Fprintf(os.Stdout, "catalog validated successfully\n")
		fmt.Fprintf(os.Stdout, "conditions: %d, drugs: %d, bmi categories: %d, heart rate statuses: %d\n",
			len(doc.Conditions), len(doc.Drugs), len(doc.BMI), len(doc.HeartRate))
		return nil
	},
}

var catalogExportSQLCmd = &cobra.Command{
	Use:   "export-sql",
	Short: "Emit DDL and INSERTs that seed the SQL drug source",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := catalogFile
		if path == "" {
			path = config.Get().Catalog.File
		}

		var (
			doc *config.Catalog
			err error
		)
		if path == "" {
			doc, err = catalog.Default()
		} else {
			doc, err = catalog.LoadFile(path)
		}
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}

		return catalog.WriteSQL(out, doc.Drugs, exportDialect)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogExportSQLCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogFile, "file", "", "catalog file (.json, .yaml, .yml); defaults to catalog.file or the embedded catalog")
	catalogExportSQLCmd.Flags().StringVar(&exportDialect, "dialect", "postgres", "SQL dialect: postgres|mysql")
	catalogExportSQLCmd.Flags().StringVar(&exportOutput, "output", "", "output file (default stdout)")
}
