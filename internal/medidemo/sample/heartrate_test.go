package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/heartrate"
)

func TestHeartRateSeries_Defaults(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	readings, err := HeartRateSeries(Options{Start: start, Seed: 42})
	require.NoError(t, err)
	require.Len(t, readings, 96)

	assert.Equal(t, start, readings[0].At)
	assert.Equal(t, start.Add(95*15*time.Minute), readings[95].At)
	for _, r := range readings {
		assert.GreaterOrEqual(t, r.BPM, FloorBPM)
		assert.LessOrEqual(t, r.BPM, CeilingBPM)
	}
}

func TestHeartRateSeries_FollowsDailyPattern(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	readings, err := HeartRateSeries(Options{Start: start, Seed: 7})
	require.NoError(t, err)

	for _, r := range readings {
		b := bandFor(r.At.Hour())
		assert.GreaterOrEqual(t, r.BPM, max(FloorBPM, b.low-jitter), "hour %d", r.At.Hour())
		assert.LessOrEqual(t, r.BPM, min(CeilingBPM, b.high+jitter), "hour %d", r.At.Hour())
	}
}

func TestHeartRateSeries_Deterministic(t *testing.T) {
	start := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	a, err := HeartRateSeries(Options{Start: start, Hours: 6, Seed: 99})
	require.NoError(t, err)
	b, err := HeartRateSeries(Options{Start: start, Hours: 6, Seed: 99})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 24)
}

func TestHeartRateSeries_CustomInterval(t *testing.T) {
	readings, err := HeartRateSeries(Options{Start: time.Unix(0, 0).UTC(), Hours: 2, Interval: time.Hour, Seed: 1})
	require.NoError(t, err)
	assert.Len(t, readings, 2)
}

func TestHeartRateSeries_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative hours", Options{Hours: -1}},
		{"negative interval", Options{Interval: -time.Minute}},
		{"hours overflow duration", Options{Hours: 3000000}},
		{"hours above limit", Options{Hours: MaxHours + 1}},
		{"nanosecond interval", Options{Interval: time.Nanosecond}},
		{"too many readings", Options{Hours: MaxHours, Interval: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings, err := HeartRateSeries(tt.opts)
			assert.Error(t, err)
			assert.Nil(t, readings)
		})
	}
}

func TestHeartRateSeries_Limits(t *testing.T) {
	readings, err := HeartRateSeries(Options{Start: time.Unix(0, 0).UTC(), Hours: MaxHours, Seed: 1})
	require.NoError(t, err)
	assert.Len(t, readings, MaxHours*4)

	readings, err = HeartRateSeries(Options{Start: time.Unix(0, 0).UTC(), Hours: 1, Interval: MinInterval, Seed: 1})
	require.NoError(t, err)
	assert.Len(t, readings, 3600)
}

func TestHeartRateSeries_Summarizes(t *testing.T) {
	readings, err := HeartRateSeries(Options{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Seed: 3})
	require.NoError(t, err)

	summary, err := heartrate.Summarize(readings)
	require.NoError(t, err)
	assert.Equal(t, 96, summary.Count)
	assert.GreaterOrEqual(t, summary.Min, FloorBPM)
	assert.LessOrEqual(t, summary.Max, CeilingBPM)
	// exercise hours always push some readings above 100
	assert.Positive(t, summary.ByStatus[heartrate.SlightlyFast]+summary.ByStatus[heartrate.Fast]+summary.ByStatus[heartrate.VeryFast])
}

func TestParseStart(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		hours   int
		want    time.Time
		wantErr bool
	}{
		{"empty uses default window", "", 0, now.Add(-24 * time.Hour), false},
		{"empty with hours", "", 6, now.Add(-6 * time.Hour), false},
		{"rfc3339", "2024-03-01T08:00:00Z", 0, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), false},
		{"plain date", "2024-03-01", 0, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "yesterday-ish", 0, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStart(tt.value, tt.hours, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}
