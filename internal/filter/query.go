package filter

import (
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// FromQuery builds a Spec from URL query parameters. Parameters that are
// missing or fail to parse leave their dimension unconstrained.
//
// Recognised keys: mode, num_players, rating, categories (comma separated or
// repeated), category_filter_type, language, owner, my_games_only,
// household_only, q.
func FromQuery(v url.Values) Spec {
	spec := Spec{
		Mode:     v.Get("mode"),
		Language: v.Get("language"),
		Owner:    v.Get("owner"),
		Query:    v.Get("q"),
	}

	if n, err := cast.ToIntE(strings.TrimSpace(v.Get("num_players"))); err == nil && n > 0 {
		spec.NumPlayers = n
	}
	if f, err := cast.ToFloat64E(strings.TrimSpace(v.Get("rating"))); err == nil && f > 0 {
		spec.Rating = f
	}
	if b, err := cast.ToBoolE(v.Get("my_games_only")); err == nil {
		spec.MyGamesOnly = b
	}
	if b, err := cast.ToBoolE(v.Get("household_only")); err == nil {
		spec.HouseholdOnly = b
	}

	for _, raw := range v["categories"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				spec.Categories = append(spec.Categories, c)
			}
		}
	}
	spec.CategoryFilterType = CategoryMode(strings.TrimSpace(v.Get("category_filter_type")))
	return spec
}
