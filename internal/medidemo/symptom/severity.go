package symptom

// Severity grades a condition: mild < moderate < severe.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

var severityRank = map[Severity]int{
	SeverityMild:     1,
	SeverityModerate: 2,
	SeveritySevere:   3,
}

// Valid reports whether s is one of the known levels.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// CompareSeverity returns -1, 0 or 1. Unknown levels compare equal.
func CompareSeverity(a, b Severity) int {
	va, okA := severityRank[a]
	vb, okB := severityRank[b]
	if !okA || !okB {
		return 0
	}
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	}
	return 0
}

// HighestSeverity returns the most serious level among results, or "" if
// results is empty or carries no known level.
func HighestSeverity(results []Result) Severity {
	var best Severity
	for _, r := range results {
		if !r.Severity.Valid() {
			continue
		}
		if best == "" || CompareSeverity(r.Severity, best) > 0 {
			best = r.Severity
		}
	}
	return best
}
