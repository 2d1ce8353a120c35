package drug

import (
	"strings"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/validation"
)

// Record is one entry of the drug dictionary.
type Record struct {
	Key          string `json:"key"`
	BrandName    string `json:"brand_name"`
	GenericName  string `json:"generic_name"`
	Manufacturer string `json:"manufacturer"`
	Purpose      string `json:"purpose"`
	Dosage       string `json:"dosage"`
	Warnings     string `json:"warnings"`
	SideEffects  string `json:"side_effects"`
}

// Lookup is the outcome of a search. When Found is false, Suggestions
// lists every key the directory knows.
type Lookup struct {
	Query       string   `json:"query"`
	Found       bool     `json:"found"`
	Drug        *Record  `json:"drug,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Directory is an immutable, case-insensitive drug dictionary.
type Directory struct {
	byKey map[string]Record
	keys  []string
}

// NewDirectory indexes records by their lowercased key. Record order is kept
// for suggestions; a later duplicate key replaces the earlier record.
func NewDirectory(records []Record) *Directory {
	d := &Directory{byKey: make(map[string]Record, len(records))}
	for _, r := range records {
		k := NormalizeKey(r.Key)
		if k == "" {
			continue
		}
		if _, dup := d.byKey[k]; !dup {
			d.keys = append(d.keys, k)
		}
		r.Key = k
		d.byKey[k] = r
	}
	return d
}

// Lookup finds name by exact, case-insensitive key match. A miss is not an error.
func (d *Directory) Lookup(name string) (Lookup, error) {
	key := NormalizeKey(name)
	if key == "" {
		return Lookup{}, validation.New("name", "drug name is required")
	}

	rec, ok := d.byKey[key]
	if !ok {
		logger.L().Debugw("drug not found", "query", key)
		return Lookup{Query: key, Suggestions: d.Keys()}, nil
	}
	return Lookup{Query: key, Found: true, Drug: &rec}, nil
}

// Keys returns the known keys in dictionary order.
func (d *Directory) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Len returns the number of records.
func (d *Directory) Len() int {
	return len(d.keys)
}

// NormalizeKey trims surrounding whitespace and lowercases s.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
