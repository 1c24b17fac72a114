// Package catalog holds the canonical board-game record shared by the
// duplicate detector, the filter engine, the store and the HTTP layer.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	// ErrInvalidRecord is returned when a record lacks the fields needed to
	// compare or persist it.
	ErrInvalidRecord = errors.New("invalid game record")
	// ErrNotFound is returned when a referenced game, category, household or
	// submission does not exist.
	ErrNotFound = errors.New("record not found")
)

// Record is one catalogue entry: a board game plus the cataloguer's personal
// metadata about it.
type Record struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Language    string     `json:"language"`
	Rating      *float64   `json:"rating,omitempty"`
	MinPlayers  int        `json:"min_players"`
	MaxPlayers  int        `json:"max_players"`
	Categories  []string   `json:"categories"`
	Owners      []string   `json:"owners"`
	Tag         string     `json:"tag"`
	LastPlayed  *time.Time `json:"last_played,omitempty"`
	Designer    string     `json:"designer,omitempty"`
	Artist      string     `json:"artist,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	MinPlaytime int        `json:"min_playtime,omitempty"`
	MaxPlaytime int        `json:"max_playtime,omitempty"`
	Year        int        `json:"year,omitempty"`
	BGGURL      string     `json:"bgg_url,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Categories = slices.Clone(r.Categories)
	out.Owners = slices.Clone(r.Owners)
	if r.Rating != nil {
		v := *r.Rating
		out.Rating = &v
	}
	if r.LastPlayed != nil {
		t := *r.LastPlayed
		out.LastPlayed = &t
	}
	return out
}

// HasCategory reports whether the record is tagged with the category.
func (r Record) HasCategory(name string) bool {
	return slices.Contains(r.Categories, name)
}

// OwnedByAny reports whether any of names is one of the record's owners.
func (r Record) OwnedByAny(names []string) bool {
	for _, n := range names {
		if n != "" && slices.Contains(r.Owners, n) {
			return true
		}
	}
	return false
}

// Validate checks the fields required to persist a record.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRecord)
	}
	if r.MinPlayers < 0 || r.MaxPlayers < 0 {
		return fmt.Errorf("%w: player counts must not be negative", ErrInvalidRecord)
	}
	return nil
}

// uniqueTrimmed trims every entry, drops blanks and keeps the first
// occurrence of each value.
func uniqueTrimmed(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
