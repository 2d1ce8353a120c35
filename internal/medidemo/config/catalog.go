package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConditionSpec = one row of the condition table
type ConditionSpec struct {
	Name     string   `json:"name" yaml:"name"`
	Symptoms []string `json:"symptoms" yaml:"symptoms"`
	Severity string   `json:"severity" yaml:"severity"`
	Advice   string   `json:"advice" yaml:"advice"`
}

// DrugSpec = one drug dictionary entry, keyed by its common name
type DrugSpec struct {
	Key          string `json:"key" yaml:"key"`
	BrandName    string `json:"brand_name" yaml:"brand_name"`
	GenericName  string `json:"generic_name" yaml:"generic_name"`
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	Purpose      string `json:"purpose" yaml:"purpose"`
	Dosage       string `json:"dosage" yaml:"dosage"`
	Warnings     string `json:"warnings" yaml:"warnings"`
	SideEffects  string `json:"side_effects" yaml:"side_effects"`
}

// GuidanceSpec = canned BMI text for one category
type GuidanceSpec struct {
	Advice          string   `json:"advice" yaml:"advice"`
	Recommendations []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	HealthRisks     []string `json:"health_risks,omitempty" yaml:"health_risks,omitempty"`
}

// Catalog = the full reference data set
// Conditions and Drugs keep file order; it decides tie-breaks and suggestion order.
type Catalog struct {
	Conditions []ConditionSpec         `json:"conditions" yaml:"conditions"`
	Drugs      []DrugSpec              `json:"drugs" yaml:"drugs"`
	BMI        map[string]GuidanceSpec `json:"bmi" yaml:"bmi"`
	HeartRate  map[string]string       `json:"heart_rate" yaml:"heart_rate"`
}

// Catalog encodings
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var allowedSeverities = map[string]struct{}{
	"mild": {}, "moderate": {}, "severe": {},
}

var allowedBMICategories = map[string]struct{}{
	"underweight": {}, "normal": {}, "overweight": {},
	"obese-class-1": {}, "obese-class-2": {}, "obese-class-3": {},
}

var allowedHeartRateStatuses = map[string]struct{}{
	"very-slow": {}, "slow": {}, "normal": {},
	"slightly-fast": {}, "fast": {}, "very-fast": {},
}

// FormatFromPath picks the catalog encoding from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ValidateCatalog decodes and validates a catalog document
func ValidateCatalog(r io.Reader, format string) (*Catalog, error) {
	var c Catalog
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode catalog JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode catalog YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the catalog's internal consistency.
func (c *Catalog) Validate() error {
	if len(c.Conditions) == 0 {
		return fmt.Errorf("catalog must define at least one condition")
	}
	names := map[string]struct{}{}
	for i, cond := range c.Conditions {
		if strings.TrimSpace(cond.Name) == "" {
			return fmt.Errorf("condition %d missing name", i)
		}
		if _, dup := names[cond.Name]; dup {
			return fmt.Errorf("duplicate condition %q", cond.Name)
		}
		names[cond.Name] = struct{}{}

		if len(cond.Symptoms) == 0 {
			return fmt.Errorf("condition %q must list at least one symptom", cond.Name)
		}
		tags := map[string]struct{}{}
		for j, s := range cond.Symptoms {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("condition %q symptom %d is blank", cond.Name, j)
			}
			if _, dup := tags[s]; dup {
				return fmt.Errorf("condition %q lists symptom %q twice", cond.Name, s)
			}
			tags[s] = struct{}{}
		}
		if _, ok := allowedSeverities[cond.Severity]; !ok {
			return fmt.Errorf("condition %q has invalid severity %q", cond.Name, cond.Severity)
		}
	}

	if err := ValidateDrugs(c.Drugs); err != nil {
		return err
	}

	for cat := range c.BMI {
		if _, ok := allowedBMICategories[cat]; !ok {
			return fmt.Errorf("unknown BMI category %q", cat)
		}
	}
	for status := range c.HeartRate {
		if _, ok := allowedHeartRateStatuses[status]; !ok {
			return fmt.Errorf("unknown heart rate status %q", status)
		}
	}
	return nil
}

// ValidateDrugs checks that every drug has a unique, non-blank key.
// Keys compare case-insensitively.
func ValidateDrugs(drugs []DrugSpec) error {
	if len(drugs) == 0 {
		return fmt.Errorf("catalog must define at least one drug")
	}
	keys := map[string]struct{}{}
	for i, d := range drugs {
		k := strings.ToLower(strings.TrimSpace(d.Key))
		if k == "" {
			return fmt.Errorf("drug %d missing key", i)
		}
		if _, dup := keys[k]; dup {
			return fmt.Errorf("duplicate drug key %q", k)
		}
		keys[k] = struct{}{}
		if strings.TrimSpace(d.GenericName) == "" {
			return fmt.Errorf("drug %q missing generic_name", k)
		}
	}
	return nil
}
