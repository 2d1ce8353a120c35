package symptom

import (
	"math"
	"sort"
	"strings"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/validation"
)

// MaxResults is the number of candidate conditions reported per match.
const MaxResults = 3

// Condition is a named ailment with the symptom tags that define it.
type Condition struct {
	Name     string   `json:"name"`
	Symptoms []string `json:"symptoms"`
	Severity Severity `json:"severity"`
	Advice   string   `json:"advice"`
}

// Result is one scored condition.
type Result struct {
	Condition  string   `json:"condition"`
	Percentage int      `json:"percentage"`
	Matched    []string `json:"matched_symptoms"`
	Severity   Severity `json:"severity"`
	Advice     string   `json:"advice"`
}

// Matcher scores a fixed, ordered condition table against symptom selections.
// It is safe for concurrent use.
type Matcher struct {
	conditions []Condition
}

// NewMatcher copies conditions so later changes by the caller are not observed.
func NewMatcher(conditions []Condition) *Matcher {
	cp := make([]Condition, len(conditions))
	for i, c := range conditions {
		c.Symptoms = append([]string(nil), c.Symptoms...)
		cp[i] = c
	}
	return &Matcher{conditions: cp}
}

// Conditions returns a copy of the condition table in table order.
func (m *Matcher) Conditions() []Condition {
	out := make([]Condition, len(m.conditions))
	copy(out, m.conditions)
	return out
}

// Match scores every condition sharing at least one tag with selected and
// returns the best MaxResults, highest percentage first. Ties keep table order.
// An empty slice means nothing matched; an empty selection is a validation error.
func (m *Matcher) Match(selected []string) ([]Result, error) {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	if len(set) == 0 {
		return nil, &validation.Error{Field: "symptoms", Reason: "no symptoms selected"}
	}

	results := []Result{}
	for _, c := range m.conditions {
		if len(c.Symptoms) == 0 {
			continue
		}
		var matched []string
		for _, s := range c.Symptoms {
			if _, ok := set[s]; ok {
				matched = append(matched, s)
			}
		}
		if len(matched) == 0 {
			continue
		}
		results = append(results, Result{
			Condition:  c.Name,
			Percentage: percentage(len(matched), len(c.Symptoms)),
			Matched:    matched,
			Severity:   c.Severity,
			Advice:     c.Advice,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Percentage > results[j].Percentage
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	logger.L().Debugw("matched symptoms",
		"selected", len(set),
		"candidates", len(results))
	return results, nil
}

// KnownSymptoms returns the sorted union of all tags in the table.
func (m *Matcher) KnownSymptoms() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, c := range m.conditions {
		for _, s := range c.Symptoms {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func percentage(matched, total int) int {
	return int(math.Round(100 * float64(matched) / float64(total)))
}
