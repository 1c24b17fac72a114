// Package filter narrows a collection of game records by a declarative,
// multi-dimensional query.
package filter

import (
	"strings"
)

// All is the value of a string dimension that does not constrain anything.
const All = "All"

// CategoryMode combines the categories of a Spec.
type CategoryMode string

const (
	// MatchAll requires every requested category.
	MatchAll CategoryMode = "AND"
	// MatchAny requires at least one requested category.
	MatchAny CategoryMode = "OR"
)

// Spec is a query over a collection. The zero value matches everything.
type Spec struct {
	Mode               string       `json:"mode"`
	NumPlayers         int          `json:"num_players"`
	Rating             float64      `json:"rating"`
	Categories         []string     `json:"categories"`
	CategoryFilterType CategoryMode `json:"category_filter_type"`
	Language           string       `json:"language"`
	Owner              string       `json:"owner"`
	MyGamesOnly        bool         `json:"my_games_only"`
	HouseholdOnly      bool         `json:"household_only"`
	Query              string       `json:"q,omitempty"`

	// CurrentUser and Household are supplied by the caller, never by the
	// client: they scope MyGamesOnly and HouseholdOnly.
	CurrentUser string   `json:"-"`
	Household   []string `json:"-"`
}

// DefaultCategories is the category vocabulary offered by the catalogue.
var DefaultCategories = []string{
	"Deck Builder",
	"Teams",
	"Party Game",
	"Expansion",
	"RPG",
	"Strategy",
	"Social Deduction",
	"Engine Builder",
	"Worker Placement",
	"Cards",
	"Puzzle",
	"For Children",
	"Family",
}

// Defaults returns the spec a fresh client starts from: everything allowed,
// every category of vocabulary selected, OR combination.
func Defaults(vocabulary []string) Spec {
	return Spec{
		Mode:               All,
		Categories:         append([]string(nil), vocabulary...),
		CategoryFilterType: MatchAny,
		Language:           All,
		Owner:              All,
	}
}

// ParseCategoryMode maps user input onto a CategoryMode. The empty string
// selects MatchAny; anything unrecognised reports ok == false.
func ParseCategoryMode(s string) (CategoryMode, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(MatchAny):
		return MatchAny, true
	case string(MatchAll):
		return MatchAll, true
	default:
		return CategoryMode(s), false
	}
}

func unconstrained(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, All)
}
