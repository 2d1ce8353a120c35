package heartrate

import (
	"sort"
	"time"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/validation"
)

// Reading is one timestamped heart-rate measurement.
type Reading struct {
	At  time.Time `json:"at"`
	BPM int       `json:"bpm"`
}

// SeriesSummary aggregates a run of readings.
type SeriesSummary struct {
	Count    int            `json:"count"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Mean     float64        `json:"mean"`
	Min      int            `json:"min"`
	Max      int            `json:"max"`
	ByStatus map[Status]int `json:"by_status"`
}

// Summarize computes mean, extremes and per-status counts of readings.
// Readings need not be sorted; Start and End are the earliest and latest times.
func Summarize(readings []Reading) (SeriesSummary, error) {
	if len(readings) == 0 {
		return SeriesSummary{}, validation.New("readings", "no readings supplied")
	}

	for i, r := range readings {
		if r.BPM < MinRate || r.BPM > MaxRate {
			return SeriesSummary{}, validation.New("readings", "reading %d: bpm %d outside %d-%d", i, r.BPM, MinRate, MaxRate)
		}
	}

	sorted := make([]Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	s := SeriesSummary{
		Count:    len(sorted),
		Start:    sorted[0].At,
		End:      sorted[len(sorted)-1].At,
		Min:      sorted[0].BPM,
		Max:      sorted[0].BPM,
		ByStatus: map[Status]int{},
	}
	total := 0
	for _, r := range sorted {
		total += r.BPM
		if r.BPM < s.Min {
			s.Min = r.BPM
		}
		if r.BPM > s.Max {
			s.Max = r.BPM
		}
		s.ByStatus[Classify(r.BPM)]++
	}
	s.Mean = float64(total) / float64(len(sorted))
	return s, nil
}
