package filter

import (
	"net/url"
	"reflect"
	"testing"

	"boardshelf/backend/internal/catalog"
)

func rating(v float64) *float64 { return &v }

func names(recs []catalog.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}

func collection() []catalog.Record {
	return []catalog.Record{
		{ID: "0", Name: "Catan", Language: "en", Tag: "competitive", MinPlayers: 3, MaxPlayers: 4, Rating: rating(8.5), Categories: []string{"Strategy"}, Owners: []string{"anna"}},
		{ID: "1", Name: "Pandemic", Language: "en", Tag: "cooperative", MinPlayers: 2, MaxPlayers: 4, Rating: rating(9.2), Categories: []string{"Cooperative", "Strategy"}, Owners: []string{"ben"}},
		{ID: "2", Name: "Dixit", Language: "nl", Tag: "competitive", MinPlayers: 3, MaxPlayers: 8, Categories: []string{"Party Game", "Cards"}, Owners: []string{"anna", "carl"}},
		{ID: "3", Name: "Star Realms", Language: "de", Tag: "competitive", MinPlayers: 2, MaxPlayers: 2, Rating: rating(7), Categories: []string{"Deck Builder", "Cards"}},
	}
}

func TestUnconstrainedSpecReturnsCollection(t *testing.T) {
	coll := collection()
	for name, spec := range map[string]Spec{
		"zero":     {},
		"defaults": Defaults(nil),
	} {
		got := Apply(coll, spec)
		if !reflect.DeepEqual(got, coll) {
			t.Errorf("%s: got %v, want whole collection", name, names(got))
		}
	}
}

func TestFullVocabularyIsUnconstrained(t *testing.T) {
	coll := append(collection(), catalog.Record{ID: "4", Name: "Uncategorised"})

	got := NewEngine(DefaultCategories).Apply(coll, Defaults(DefaultCategories))
	if !reflect.DeepEqual(got, coll) {
		t.Errorf("with vocabulary: got %v, want whole collection", names(got))
	}

	// Without a vocabulary the default categories are an explicit OR filter.
	got = Apply(coll, Defaults(DefaultCategories))
	if want := []string{"Catan", "Pandemic", "Dixit", "Star Realms"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("without vocabulary: got %v, want %v", names(got), want)
	}
}

func TestCategoryAndOr(t *testing.T) {
	rec := catalog.Record{Name: "Only Strategy", Categories: []string{"Strategy"}}
	cats := []string{"Strategy", "Cards"}

	if got := Apply([]catalog.Record{rec}, Spec{Categories: cats, CategoryFilterType: MatchAll}); len(got) != 0 {
		t.Errorf("AND: got %v, want none", names(got))
	}
	if got := Apply([]catalog.Record{rec}, Spec{Categories: cats, CategoryFilterType: MatchAny}); len(got) != 1 {
		t.Errorf("OR: got %v, want the record", names(got))
	}
	if got := Apply([]catalog.Record{rec}, Spec{Categories: cats, CategoryFilterType: "and"}); len(got) != 0 {
		t.Errorf("lower-case and: got %v, want none", names(got))
	}
}

func TestScenarioPlayersRatingCategory(t *testing.T) {
	coll := []catalog.Record{
		{ID: "0", Name: "Catan", MinPlayers: 3, MaxPlayers: 4, Rating: rating(8.5), Categories: []string{"Strategy"}},
		{ID: "1", Name: "Pandemic", MinPlayers: 2, MaxPlayers: 4, Rating: rating(9.2), Categories: []string{"Cooperative", "Strategy"}},
	}
	spec := Spec{NumPlayers: 4, Rating: 9, Categories: []string{"Strategy"}, CategoryFilterType: MatchAll}
	if got := names(Apply(coll, spec)); !reflect.DeepEqual(got, []string{"Pandemic"}) {
		t.Errorf("got %v, want [Pandemic]", got)
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{"players", Spec{NumPlayers: 5}, []string{"Dixit"}},
		{"players two", Spec{NumPlayers: 2}, []string{"Pandemic", "Star Realms"}},
		{"rating excludes unrated", Spec{Rating: 7}, []string{"Catan", "Pandemic", "Star Realms"}},
		{"language", Spec{Language: "nl"}, []string{"Dixit"}},
		{"language all", Spec{Language: "All"}, []string{"Catan", "Pandemic", "Dixit", "Star Realms"}},
		{"owner", Spec{Owner: "anna"}, []string{"Catan", "Dixit"}},
		{"mode", Spec{Mode: "cooperative"}, []string{"Pandemic"}},
		{"my games", Spec{MyGamesOnly: true, CurrentUser: "ben"}, []string{"Pandemic"}},
		{"my games without user", Spec{MyGamesOnly: true}, []string{"Catan", "Pandemic", "Dixit", "Star Realms"}},
		{"household", Spec{HouseholdOnly: true, CurrentUser: "zoe", Household: []string{"carl"}}, []string{"Dixit"}},
		{"household includes me", Spec{HouseholdOnly: true, CurrentUser: "ben", Household: []string{"carl"}}, []string{"Pandemic", "Dixit"}},
		{"query", Spec{Query: "STAR"}, []string{"Star Realms"}},
		{"conjunction", Spec{Owner: "anna", Categories: []string{"Cards"}}, []string{"Dixit"}},
		{"malformed combinator", Spec{Categories: []string{"RPG"}, CategoryFilterType: "XOR"}, []string{"Catan", "Pandemic", "Dixit", "Star Realms"}},
		{"negative values", Spec{NumPlayers: -1, Rating: -3}, []string{"Catan", "Pandemic", "Dixit", "Star Realms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := names(Apply(collection(), tt.spec)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	coll := collection()
	got := Apply(coll, Spec{})
	got[0] = catalog.Record{Name: "replaced"}
	if coll[0].Name != "Catan" {
		t.Fatal("Apply returned the input slice")
	}
}

func TestFromQuery(t *testing.T) {
	v := url.Values{}
	v.Set("num_players", "4")
	v.Set("rating", "abc")
	v.Add("categories", "Strategy, Cards")
	v.Add("categories", "Family")
	v.Set("category_filter_type", "AND")
	v.Set("language", "en")
	v.Set("my_games_only", "true")
	v.Set("household_only", "maybe")

	got := FromQuery(v)
	want := Spec{
		NumPlayers:         4,
		Categories:         []string{"Strategy", "Cards", "Family"},
		CategoryFilterType: MatchAll,
		Language:           "en",
		MyGamesOnly:        true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromQuery() = %+v, want %+v", got, want)
	}
}

func TestParseCategoryMode(t *testing.T) {
	for in, want := range map[string]CategoryMode{"": MatchAny, "or": MatchAny, " AND ": MatchAll} {
		got, ok := ParseCategoryMode(in)
		if !ok || got != want {
			t.Errorf("ParseCategoryMode(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseCategoryMode("NAND"); ok {
		t.Error("NAND accepted")
	}
}
