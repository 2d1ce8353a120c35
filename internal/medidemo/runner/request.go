package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/heartrate"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/validation"
)

// Supported operations.
const (
	OpSymptoms        = "symptoms"
	OpBMI             = "bmi"
	OpHeartRate       = "heart_rate"
	OpHeartRateSeries = "heart_rate_series"
	OpDrug            = "drug"
)

// ErrUnsupportedOp is returned by Evaluate for an unknown op.
var ErrUnsupportedOp = errors.New("unsupported op")

// Request is one line of batch input. Only the fields of the named op are read.
type Request struct {
	ID        string       `json:"id,omitempty"`
	Op        string       `json:"op"`
	Symptoms  []string     `json:"symptoms,omitempty"`
	WeightKg  *float64     `json:"weight_kg,omitempty"`
	HeightCm  *float64     `json:"height_cm,omitempty"`
	HeartRate *int         `json:"heart_rate,omitempty"`
	Age       *int         `json:"age,omitempty"`
	Name      string       `json:"name,omitempty"`
	Readings  []RawReading `json:"readings,omitempty"`
}

// RawReading carries a free-form timestamp, e.g. "2024-03-01 08:15" or an RFC 3339 string.
type RawReading struct {
	At  string `json:"at"`
	BPM int    `json:"bpm"`
}

// Evaluate runs req against the calculators in c.
func Evaluate(c *catalog.Catalog, req Request) (any, error) {
	switch req.Op {
	case OpSymptoms:
		return c.Symptoms.Match(req.Symptoms)
	case OpBMI:
		if req.WeightKg == nil {
			return nil, validation.New("weight_kg", "is required")
		}
		if req.HeightCm == nil {
			return nil, validation.New("height_cm", "is required")
		}
		return c.BMI.Evaluate(*req.WeightKg, *req.HeightCm)
	case OpHeartRate:
		if req.HeartRate == nil {
			return nil, validation.New("heart_rate", "is required")
		}
		if req.Age == nil {
			return nil, validation.New("age", "is required")
		}
		return c.HeartRate.Analyze(*req.HeartRate, *req.Age)
	case OpHeartRateSeries:
		readings, err := ParseReadings(req.Readings, time.UTC)
		if err != nil {
			return nil, err
		}
		return heartrate.Summarize(readings)
	case OpDrug:
		return c.Drugs.Lookup(req.Name)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedOp, req.Op)
	}
}

// ParseReadings converts raw readings, resolving zone-less timestamps in loc.
func ParseReadings(raw []RawReading, loc *time.Location) ([]heartrate.Reading, error) {
	out := make([]heartrate.Reading, 0, len(raw))
	for i, r := range raw {
		at, err := dateparse.ParseIn(r.At, loc)
		if err != nil {
			return nil, validation.New("readings", "reading %d: cannot parse time %q", i, r.At)
		}
		out = append(out, heartrate.Reading{At: at, BPM: r.BPM})
	}
	return out, nil
}
