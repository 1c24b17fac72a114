// Package duplicate screens a candidate game against an existing collection.
//
// Records that carry an external catalogue ID are matched on that ID alone.
// Manually entered records have no stable ID and are matched on the
// similarity of their case-folded names instead.
package duplicate

import (
	"fmt"
	"strings"

	"boardshelf/backend/internal/catalog"

	"golang.org/x/text/cases"
)

// DefaultThreshold is the minimum name similarity for a manual entry to be
// reported as a duplicate.
const DefaultThreshold = 0.7

// Match is a duplicate together with the score that selected it. ID matches
// always score 1.
type Match struct {
	Record catalog.Record `json:"record"`
	Score  float64        `json:"score"`
}

// Detector finds duplicates using a configurable similarity threshold. The
// zero value uses DefaultThreshold.
type Detector struct {
	Threshold float64
}

// New returns a Detector with the given threshold. Values outside (0, 1]
// select DefaultThreshold.
func New(threshold float64) *Detector {
	return &Detector{Threshold: threshold}
}

func (d Detector) threshold() float64 {
	if d.Threshold > 0 && d.Threshold <= 1 {
		return d.Threshold
	}
	return DefaultThreshold
}

// FindDuplicates runs a zero-value Detector.
func FindDuplicates(candidate catalog.Record, collection []catalog.Record) ([]catalog.Record, error) {
	return Detector{}.FindDuplicates(candidate, collection)
}

// FindDuplicates returns the records of collection that duplicate candidate,
// in collection order. Neither argument is modified.
func (d Detector) FindDuplicates(candidate catalog.Record, collection []catalog.Record) ([]catalog.Record, error) {
	matches, err := d.Matches(candidate, collection)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Record, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Record)
	}
	return out, nil
}

// Matches is FindDuplicates with scores attached.
//
// A candidate without an ID must have a name; otherwise the result is an
// error wrapping catalog.ErrInvalidRecord.
func (d Detector) Matches(candidate catalog.Record, collection []catalog.Record) ([]Match, error) {
	out := make([]Match, 0)

	if id := strings.TrimSpace(candidate.ID); id != "" {
		for _, rec := range collection {
			if rec.ID == id {
				out = append(out, Match{Record: rec.Clone(), Score: 1})
			}
		}
		return out, nil
	}

	if strings.TrimSpace(candidate.Name) == "" {
		return nil, fmt.Errorf("%w: a game without an id needs a name", catalog.ErrInvalidRecord)
	}

	// cases.Caser is stateful, so each call gets its own.
	fold := cases.Fold()
	name := fold.String(candidate.Name)
	threshold := d.threshold()
	for _, rec := range collection {
		score := Similarity(name, fold.String(rec.Name))
		if score >= threshold {
			out = append(out, Match{Record: rec.Clone(), Score: score})
		}
	}
	return out, nil
}
