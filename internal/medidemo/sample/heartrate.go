package sample

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/brianvoe/gofakeit/v7"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/heartrate"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
)

const (
	DefaultHours    = 24
	DefaultInterval = 15 * time.Minute

	// Every generated reading is clamped to this range.
	FloorBPM   = 50
	CeilingBPM = 200

	// Limits on a single series.
	MaxHours    = 24 * 366
	MinInterval = time.Second
	MaxReadings = 1 << 20

	jitter = 5
)

// band is the resting range for the hours [fromHour, toHour].
type band struct {
	fromHour, toHour int
	low, high        int
}

// dailyPattern models a typical day: sleep, waking, work, lunch, exercise, rest.
var dailyPattern = []band{
	{0, 6, 55, 70},
	{7, 8, 70, 85},
	{9, 11, 75, 90},
	{12, 13, 80, 95},
	{14, 17, 75, 90},
	{18, 19, 120, 160},
	{20, 22, 70, 85},
	{23, 23, 65, 80},
}

type Options struct {
	Start    time.Time
	Hours    int
	Interval time.Duration
	// Seed 0 picks a random seed.
	Seed uint64
}

func bandFor(hour int) band {
	for _, b := range dailyPattern {
		if hour >= b.fromHour && hour <= b.toHour {
			return b
		}
	}
	return dailyPattern[len(dailyPattern)-1]
}

// HeartRateSeries generates synthetic readings starting at opts.Start.
// The same non-zero seed always yields the same series.
func HeartRateSeries(opts Options) ([]heartrate.Reading, error) {
	if opts.Hours == 0 {
		opts.Hours = DefaultHours
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Hours < 0 || opts.Hours > MaxHours {
		return nil, fmt.Errorf("hours must be between 1 and %d, got %d", MaxHours, opts.Hours)
	}
	if opts.Interval < MinInterval {
		return nil, fmt.Errorf("interval must be at least %s, got %s", MinInterval, opts.Interval)
	}

	faker := gofakeit.New(opts.Seed)
	n := int(time.Duration(opts.Hours) * time.Hour / opts.Interval)
	if n > MaxReadings {
		return nil, fmt.Errorf("%d hours at %s intervals is %d readings, more than %d", opts.Hours, opts.Interval, n, MaxReadings)
	}
	readings := make([]heartrate.Reading, 0, n)
	for i := 0; i < n; i++ {
		at := opts.Start.Add(time.Duration(i) * opts.Interval)
		b := bandFor(at.Hour())
		bpm := faker.Number(b.low, b.high) + faker.Number(-jitter, jitter)
		readings = append(readings, heartrate.Reading{At: at, BPM: clamp(bpm)})
	}

	logger.L().Debugw("Generated heart rate series",
		"start", opts.Start,
		"readings", len(readings),
		"seed", opts.Seed)
	return readings, nil
}

func clamp(bpm int) int {
	if bpm < FloorBPM {
		return FloorBPM
	}
	if bpm > CeilingBPM {
		return CeilingBPM
	}
	return bpm
}

// ParseStart resolves a user supplied start time. An empty value means
// hours before now, so the series ends at the present.
func ParseStart(value string, hours int, now time.Time) (time.Time, error) {
	if value == "" {
		if hours == 0 {
			hours = DefaultHours
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}
	t, err := dateparse.ParseIn(value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", value, err)
	}
	return t, nil
}
