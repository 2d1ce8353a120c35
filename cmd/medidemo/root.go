package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/config"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
)

var (
	cfgFile  string
	envFile  string
	flagJSON bool
	Version  = "v0.1"
	rootCmd  = &cobra.Command{
		Use:           "medidemo",
		Short:         "MediDemo - symptom, BMI, heart-rate and drug calculators",
		Long:          "MediDemo: informational health calculators driven by a static reference catalog. Not medical advice.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env only fills variables that are not already set
			if err := godotenv.Load(envFile); err != nil && cmd.Flags().Changed("env-file") {
				return fmt.Errorf("load env file: %w", err)
			}

			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
			} else {
				// default: ./config.yaml
				viper.SetConfigFile("config.yaml")
			}
			if err := viper.ReadInConfig(); err != nil {
				if cfgFile != "" {
					return fmt.Errorf("read config: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Warning: could not read config (%v). Using defaults and flags.\n", err)
			}
			if err := config.Load(viper.GetViper()); err != nil {
				return err
			}

			cfg := config.Get()
			if err := logger.InitLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with MEDIDEMO_* overrides")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openCatalog builds the configured catalog. The returned db is nil unless a
// drug source is configured; the caller closes it.
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, *sql.DB, error) {
	var db *sql.DB
	if src := cfg.Catalog.DrugSource; src.Driver != "" {
		var err error
		db, err = catalog.Open(ctx, src.Driver, src.DSN)
		if err != nil {
			return nil, nil, err
		}
	}

	cat, err := catalog.Load(ctx, cfg.Catalog, db)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, nil, err
	}
	return cat, db, nil
}

// withCatalog runs fn against the configured catalog and releases the drug source afterwards.
func withCatalog(ctx context.Context, fn func(*catalog.Catalog) error) error {
	cat, db, err := openCatalog(ctx, config.Get())
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	return fn(cat)
}

// printResult writes v as indented JSON when --json is set, otherwise calls text.
func printResult(w io.Writer, v any, text func(io.Writer)) error {
	if !flagJSON {
		text(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
