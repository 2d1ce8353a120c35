package bmi

import (
	"math"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/validation"
)

// Category is one of the six BMI bands.
type Category string

const (
	Underweight Category = "underweight"
	Normal      Category = "normal"
	Overweight  Category = "overweight"
	ObeseClass1 Category = "obese-class-1"
	ObeseClass2 Category = "obese-class-2"
	ObeseClass3 Category = "obese-class-3"
)

// Categories lists the bands from lowest to highest.
var Categories = []Category{Underweight, Normal, Overweight, ObeseClass1, ObeseClass2, ObeseClass3}

// IdealBMI is the mid-normal index used for the ideal weight estimate.
const IdealBMI = 22.0

// DefaultAdvice is returned for a category with no configured guidance.
const DefaultAdvice = "Please consult a doctor."

// Direction tells whether the weight is above, below or exactly at the ideal.
type Direction string

const (
	DirectionOver  Direction = "over"
	DirectionUnder Direction = "under"
	DirectionExact Direction = "exact"
)

// Guidance is the canned text attached to a category.
type Guidance struct {
	Advice          string   `json:"advice"`
	Recommendations []string `json:"recommendations,omitempty"`
	HealthRisks     []string `json:"health_risks,omitempty"`
}

type Result struct {
	BMI             float64   `json:"bmi"`
	Category        Category  `json:"category"`
	IdealWeightKg   float64   `json:"ideal_weight_kg"`
	DeviationKg     float64   `json:"deviation_kg"`
	Direction       Direction `json:"direction"`
	Advice          string    `json:"advice"`
	Recommendations []string  `json:"recommendations,omitempty"`
	HealthRisks     []string  `json:"health_risks,omitempty"`
}

// Evaluator computes BMI results using a fixed guidance table.
type Evaluator struct {
	guidance map[Category]Guidance
}

func NewEvaluator(guidance map[Category]Guidance) *Evaluator {
	cp := make(map[Category]Guidance, len(guidance))
	for k, v := range guidance {
		cp[k] = v
	}
	return &Evaluator{guidance: cp}
}

// Evaluate computes BMI from weight in kilograms and height in centimeters.
func (e *Evaluator) Evaluate(weightKg, heightCm float64) (Result, error) {
	if !positiveFinite(weightKg) {
		return Result{}, validation.New("weight_kg", "must be a finite number greater than 0")
	}
	if !positiveFinite(heightCm) {
		return Result{}, validation.New("height_cm", "must be a finite number greater than 0")
	}

	heightM := heightCm / 100
	ideal := IdealBMI * heightM * heightM
	if !positiveFinite(ideal) {
		return Result{}, validation.New("height_cm", "out of range")
	}
	value := weightKg / (heightM * heightM)
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return Result{}, validation.New("weight_kg", "out of range")
	}
	category := Classify(value)
	deviation := weightKg - ideal

	res := Result{
		BMI:           value,
		Category:      category,
		IdealWeightKg: ideal,
		DeviationKg:   deviation,
		Direction:     direction(deviation),
	}

	g, ok := e.guidance[category]
	if !ok || g.Advice == "" {
		logger.L().Warnw("no guidance configured for BMI category, using default",
			"category", category)
		res.Advice = DefaultAdvice
	} else {
		res.Advice = g.Advice
	}
	if ok {
		res.Recommendations = append([]string(nil), g.Recommendations...)
		res.HealthRisks = append([]string(nil), g.HealthRisks...)
	}
	return res, nil
}

// Classify maps a BMI value onto its band. Upper bounds are exclusive.
func Classify(value float64) Category {
	switch {
	case value < 18.5:
		return Underweight
	case value < 25:
		return Normal
	case value < 30:
		return Overweight
	case value < 35:
		return ObeseClass1
	case value < 40:
		return ObeseClass2
	default:
		return ObeseClass3
	}
}

func direction(deviation float64) Direction {
	switch {
	case deviation > 0:
		return DirectionOver
	case deviation < 0:
		return DirectionUnder
	default:
		return DirectionExact
	}
}

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
