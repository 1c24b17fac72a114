package catalog

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// fieldAliases maps a folded payload key (lower case, no separators) to the
// canonical field it feeds. Payloads from the old UI, the SQL backend and BGG
// disagree on casing, so every spelling seen in the wild is listed here.
var fieldAliases = map[string]string{
	"id":             "id",
	"name":           "name",
	"language":       "language",
	"rating":         "rating",
	"personalrating": "rating",
	"minplayers":     "min_players",
	"maxplayers":     "max_players",
	"categories":     "categories",
	"category":       "categories",
	"owner":          "owners",
	"owners":         "owners",
	"tag":            "tag",
	"lastplayed":     "last_played",
	"designer":       "designer",
	"artist":         "artist",
	"publisher":      "publisher",
	"minplaytime":    "min_playtime",
	"maxplaytime":    "max_playtime",
	"year":           "year",
	"yearpublished":  "year",
	"bggurl":         "bgg_url",
	"imageurl":       "image_url",
	"description":    "description",
}

func foldKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
}

// Normalize converts a loosely typed payload into a Record. Unknown keys are
// ignored, unparseable optional values are left empty, and numbers encoded as
// strings are accepted. The only failure is a payload that is nil.
func Normalize(raw map[string]any) (Record, error) {
	if raw == nil {
		return Record{}, ErrInvalidRecord
	}

	fields := make(map[string]any, len(raw))
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		v := raw[k]
		canonical, ok := fieldAliases[foldKey(k)]
		if !ok || v == nil {
			continue
		}
		// Keys are visited in sorted order, so the first spelling wins
		// deterministically when a payload carries both variants.
		if _, dup := fields[canonical]; dup {
			continue
		}
		fields[canonical] = v
	}

	var r Record
	r.ID = str(fields["id"])
	r.Name = str(fields["name"])
	r.Language = str(fields["language"])
	r.Tag = str(fields["tag"])
	r.Designer = str(fields["designer"])
	r.Artist = str(fields["artist"])
	r.Publisher = str(fields["publisher"])
	r.BGGURL = str(fields["bgg_url"])
	r.ImageURL = str(fields["image_url"])
	r.Description = str(fields["description"])

	r.MinPlayers = nonNegative(fields["min_players"])
	r.MaxPlayers = nonNegative(fields["max_players"])
	r.MinPlaytime = nonNegative(fields["min_playtime"])
	r.MaxPlaytime = nonNegative(fields["max_playtime"])
	r.Year = nonNegative(fields["year"])

	if s := str(fields["rating"]); s != "" {
		if f, err := cast.ToFloat64E(s); err == nil {
			r.Rating = &f
		}
	}
	if v, ok := fields["last_played"]; ok {
		if t, ok := parseDate(v); ok {
			r.LastPlayed = &t
		}
	}

	r.Categories = uniqueTrimmed(stringList(fields["categories"]))
	r.Owners = uniqueTrimmed(stringList(fields["owners"]))
	return r, nil
}

func str(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func nonNegative(v any) int {
	if v == nil {
		return 0
	}
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return 0
	}
	n, err := cast.ToIntE(s)
	if err != nil {
		// "4.0" style values
		f, ferr := cast.ToFloat64E(s)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

// stringList accepts a single string (comma separated), a []string or a
// []any of scalars.
func stringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return strings.Split(t, ",")
	case []string:
		return t
	default:
		out, err := cast.ToStringSliceE(v)
		if err != nil {
			return nil
		}
		return out
	}
}

func parseDate(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, !t.IsZero()
	}
	s := str(v)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
