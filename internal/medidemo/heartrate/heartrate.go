package heartrate

import (
	"math"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/validation"
)

// Input bounds, inclusive.
const (
	MinRate = 1
	MaxRate = 300
	MinAge  = 1
	MaxAge  = 120
)

// DefaultAdvice is returned for a status with no configured advice.
const DefaultAdvice = "Please consult a doctor."

// Status classifies a measured heart rate.
type Status string

const (
	VerySlow     Status = "very-slow"
	Slow         Status = "slow"
	Normal       Status = "normal"
	SlightlyFast Status = "slightly-fast"
	Fast         Status = "fast"
	VeryFast     Status = "very-fast"
)

// Statuses lists the bands from slowest to fastest.
var Statuses = []Status{VerySlow, Slow, Normal, SlightlyFast, Fast, VeryFast}

// AgeGroup is the coarse age bracket of the person measured.
type AgeGroup string

const (
	Child  AgeGroup = "child"
	Teen   AgeGroup = "teen"
	Adult  AgeGroup = "adult"
	Senior AgeGroup = "senior"
)

// Zone is an inclusive beats-per-minute range.
type Zone struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Zones are the training sub-zones derived from the maximum heart rate.
type Zones struct {
	Recovery  Zone `json:"recovery"`
	FatBurn   Zone `json:"fat_burn"`
	Aerobic   Zone `json:"aerobic"`
	Anaerobic Zone `json:"anaerobic"`
	Maximum   Zone `json:"maximum"`
}

// ReferenceRanges are the typical rates for an age group. They are
// informational only; Status always comes from Classify.
type ReferenceRanges struct {
	Resting  Zone `json:"resting"`
	Normal   Zone `json:"normal"`
	Exercise Zone `json:"exercise"`
}

var referenceRanges = map[AgeGroup]ReferenceRanges{
	Child:  {Resting: Zone{70, 120}, Normal: Zone{80, 115}, Exercise: Zone{150, 190}},
	Teen:   {Resting: Zone{60, 100}, Normal: Zone{70, 95}, Exercise: Zone{140, 180}},
	Adult:  {Resting: Zone{60, 100}, Normal: Zone{65, 85}, Exercise: Zone{120, 170}},
	Senior: {Resting: Zone{60, 100}, Normal: Zone{65, 85}, Exercise: Zone{100, 140}},
}

type Result struct {
	HeartRate int             `json:"heart_rate"`
	Age       int             `json:"age"`
	AgeGroup  AgeGroup        `json:"age_group"`
	Reference ReferenceRanges `json:"reference_ranges"`
	MaxHR     int             `json:"max_hr"`
	Target    Zone            `json:"target_zone"`
	Status    Status          `json:"status"`
	Advice    string          `json:"advice"`
	Zones     Zones           `json:"zones"`
}

// Analyzer classifies heart rates using a fixed advice table.
type Analyzer struct {
	advice map[Status]string
}

func NewAnalyzer(advice map[Status]string) *Analyzer {
	cp := make(map[Status]string, len(advice))
	for k, v := range advice {
		cp[k] = v
	}
	return &Analyzer{advice: cp}
}

// Analyze classifies rate (beats per minute) for a person of the given age.
func (a *Analyzer) Analyze(rate, age int) (Result, error) {
	if rate < MinRate || rate > MaxRate {
		return Result{}, validation.New("heart_rate", "must be between %d and %d", MinRate, MaxRate)
	}
	if age < MinAge || age > MaxAge {
		return Result{}, validation.New("age", "must be between %d and %d", MinAge, MaxAge)
	}

	maxHR := MaxHeartRate(age)
	status := Classify(rate)
	advice, ok := a.advice[status]
	if !ok || advice == "" {
		logger.L().Warnw("no advice configured for heart rate status, using default",
			"status", status)
		advice = DefaultAdvice
	}

	group := GroupOf(age)
	return Result{
		HeartRate: rate,
		Age:       age,
		AgeGroup:  group,
		Reference: ReferenceRangesFor(group),
		MaxHR:     maxHR,
		Target:    zone(maxHR, 0.5, 0.85),
		Status:    status,
		Advice:    advice,
		Zones: Zones{
			Recovery:  zone(maxHR, 0.5, 0.6),
			FatBurn:   zone(maxHR, 0.6, 0.7),
			Aerobic:   zone(maxHR, 0.7, 0.8),
			Anaerobic: zone(maxHR, 0.8, 0.9),
			Maximum:   zone(maxHR, 0.9, 1.0),
		},
	}, nil
}

// MaxHeartRate is the age-predicted maximum, 220 - age.
func MaxHeartRate(age int) int {
	return 220 - age
}

// Classify maps a measured rate onto its status band.
func Classify(rate int) Status {
	switch {
	case rate < 50:
		return VerySlow
	case rate < 60:
		return Slow
	case rate <= 100:
		return Normal
	case rate <= 120:
		return SlightlyFast
	case rate <= 150:
		return Fast
	default:
		return VeryFast
	}
}

// GroupOf returns the age bracket for age.
func GroupOf(age int) AgeGroup {
	switch {
	case age <= 12:
		return Child
	case age <= 18:
		return Teen
	case age <= 64:
		return Adult
	default:
		return Senior
	}
}

// ReferenceRangesFor returns the typical resting, normal and exercise rates of g.
func ReferenceRangesFor(g AgeGroup) ReferenceRanges {
	return referenceRanges[g]
}

// zone rounds half up; maxHR is always positive for valid ages.
func zone(maxHR int, low, high float64) Zone {
	return Zone{
		Low:  int(math.Round(float64(maxHR) * low)),
		High: int(math.Round(float64(maxHR) * high)),
	}
}
