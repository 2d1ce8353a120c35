package catalog

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/bmi"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/config"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/drug"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/heartrate"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/symptom"
)

//go:embed default.json
var defaultJSON []byte

// Catalog bundles the four calculators built from one reference data set.
// Everything in it is read-only after construction.
type Catalog struct {
	Symptoms  *symptom.Matcher
	BMI       *bmi.Evaluator
	HeartRate *heartrate.Analyzer
	Drugs     *drug.Directory

	// Source describes where the data came from, for logs and /readyz.
	Source string
}

// Default decodes the catalog compiled into the binary.
func Default() (*config.Catalog, error) {
	doc, err := config.ValidateCatalog(bytes.NewReader(defaultJSON), config.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return doc, nil
}

// LoadFile reads and validates a JSON or YAML catalog from path.
func LoadFile(path string) (*config.Catalog, error) {
	logger.L().Debugw("Loading catalog", "path", path)

	format, err := config.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()

	doc, err := config.ValidateCatalog(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to validate catalog %s: %w", path, err)
	}

	logger.L().Debugw("Catalog validation successful",
		"path", path,
		"conditions", len(doc.Conditions),
		"drugs", len(doc.Drugs))
	return doc, nil
}

// Build turns a validated catalog document into calculators.
func Build(doc *config.Catalog, source string) *Catalog {
	conditions := make([]symptom.Condition, 0, len(doc.Conditions))
	for _, c := range doc.Conditions {
		conditions = append(conditions, symptom.Condition{
			Name:     c.Name,
			Symptoms: c.Symptoms,
			Severity: symptom.Severity(c.Severity),
			Advice:   c.Advice,
		})
	}

	guidance := make(map[bmi.Category]bmi.Guidance, len(doc.BMI))
	for cat, g := range doc.BMI {
		guidance[bmi.Category(cat)] = bmi.Guidance{
			Advice:          g.Advice,
			Recommendations: g.Recommendations,
			HealthRisks:     g.HealthRisks,
		}
	}

	advice := make(map[heartrate.Status]string, len(doc.HeartRate))
	for status, text := range doc.HeartRate {
		advice[heartrate.Status(status)] = text
	}

	records := make([]drug.Record, 0, len(doc.Drugs))
	for _, d := range doc.Drugs {
		records = append(records, drug.Record{
			Key:          d.Key,
			BrandName:    d.BrandName,
			GenericName:  d.GenericName,
			Manufacturer: d.Manufacturer,
			Purpose:      d.Purpose,
			Dosage:       d.Dosage,
			Warnings:     d.Warnings,
			SideEffects:  d.SideEffects,
		})
	}

	for _, cat := range bmi.Categories {
		if _, ok := guidance[cat]; !ok {
			logger.L().Warnw("BMI category has no guidance; default advice will be used", "category", cat)
		}
	}
	for _, st := range heartrate.Statuses {
		if _, ok := advice[st]; !ok {
			logger.L().Warnw("Heart rate status has no advice; default advice will be used", "status", st)
		}
	}

	return &Catalog{
		Symptoms:  symptom.NewMatcher(conditions),
		BMI:       bmi.NewEvaluator(guidance),
		HeartRate: heartrate.NewAnalyzer(advice),
		Drugs:     drug.NewDirectory(records),
		Source:    source,
	}
}

// Load resolves the configured catalog: the file named by cfg.File or the
// embedded default, with the drug dictionary replaced from db when a drug
// source is configured. db may be nil when no drug source is configured.
func Load(ctx context.Context, cfg config.CatalogCfg, db *sql.DB) (*Catalog, error) {
	var (
		doc    *config.Catalog
		source string
		err    error
	)
	if cfg.File != "" {
		doc, err = LoadFile(cfg.File)
		source = cfg.File
	} else {
		doc, err = Default()
		source = "embedded"
	}
	if err != nil {
		return nil, err
	}

	if cfg.DrugSource.Driver != "" {
		if db == nil {
			return nil, fmt.Errorf("drug source %q configured but no database handle supplied", cfg.DrugSource.Driver)
		}
		drugs, err := LoadDrugsSQL(ctx, db)
		if err != nil {
			return nil, err
		}
		doc.Drugs = drugs
		source += "+" + cfg.DrugSource.Driver
	}

	c := Build(doc, source)
	logger.L().Infow("Catalog loaded",
		"source", source,
		"conditions", len(doc.Conditions),
		"drugs", c.Drugs.Len())
	return c, nil
}
