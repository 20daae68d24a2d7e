// Package dataset holds the catalogue of synthetic personas and the rotation
// ledger that keeps fills from repeating recent persona/form combinations.
package dataset

import (
	"time"

	"github.com/entrhq/fillforge/pkg/field"
)

// Dataset is one named bundle of synthetic field values representing a
// fictitious identity. Datasets are immutable on the fill path; only explicit
// CRUD calls on the store change them.
type Dataset struct {
	ID       string                        `json:"id" yaml:"id"`
	Name     string                        `json:"name" yaml:"name"`
	Category string                        `json:"category" yaml:"category"`
	Data     map[field.SemanticType]string `json:"data" yaml:"data"`
}

// Value returns the dataset's value for a semantic type, and whether the
// dataset carries one.
func (d Dataset) Value(t field.SemanticType) (string, bool) {
	v, ok := d.Data[t]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// clone deep-copies the dataset so callers cannot mutate store state.
func (d Dataset) clone() Dataset {
	out := d
	out.Data = make(map[field.SemanticType]string, len(d.Data))
	for k, v := range d.Data {
		out.Data[k] = v
	}
	return out
}

// UsageRecord tracks which datasets have been used for one form fingerprint.
// One record exists per fingerprint, created lazily on first fill.
type UsageRecord struct {
	FormHash          string    `json:"formHash"`
	UsedDatasetIDs    []string  `json:"usedDatasetIds"`
	LastFillTimestamp time.Time `json:"lastFillTimestamp"`
	FillCount         int       `json:"fillCount"`

	// LastUsedIndex is maintained by the round-robin Pool variant only.
	LastUsedIndex int `json:"lastUsedIndex"`
}

func (r *UsageRecord) used(id string) bool {
	for _, u := range r.UsedDatasetIDs {
		if u == id {
			return true
		}
	}
	return false
}

func (r *UsageRecord) purge(id string) {
	out := r.UsedDatasetIDs[:0]
	for _, u := range r.UsedDatasetIDs {
		if u != id {
			out = append(out, u)
		}
	}
	r.UsedDatasetIDs = out
}
