package catalog

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNormalizeMockGamePayload(t *testing.T) {
	raw := map[string]any{
		"id":             "0",
		"name":           " Catan ",
		"language":       "English",
		"personalRating": "8.5",
		"lastPlayed":     "2023-10-15",
		"minPlayers":     "3",
		"maxPlayers":     "4",
		"bggUrl":         "https://boardgamegeek.com/boardgame/13/catan",
		"tag":            "competitive",
		"categories":     []any{"Strategy", "Resource Management", "Strategy"},
		"minPlaytime":    "60",
		"maxPlaytime":    "120",
		"owner":          "anna",
		"expansions":     []any{},
	}

	r, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if r.ID != "0" || r.Name != "Catan" {
		t.Errorf("got id=%q name=%q", r.ID, r.Name)
	}
	if r.Rating == nil || *r.Rating != 8.5 {
		t.Errorf("rating = %v, want 8.5", r.Rating)
	}
	if r.MinPlayers != 3 || r.MaxPlayers != 4 {
		t.Errorf("players = %d-%d, want 3-4", r.MinPlayers, r.MaxPlayers)
	}
	if r.MinPlaytime != 60 || r.MaxPlaytime != 120 {
		t.Errorf("playtime = %d-%d, want 60-120", r.MinPlaytime, r.MaxPlaytime)
	}
	want := time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC)
	if r.LastPlayed == nil || !r.LastPlayed.Equal(want) {
		t.Errorf("last played = %v, want %v", r.LastPlayed, want)
	}
	if !reflect.DeepEqual(r.Categories, []string{"Strategy", "Resource Management"}) {
		t.Errorf("categories = %v", r.Categories)
	}
	if !reflect.DeepEqual(r.Owners, []string{"anna"}) {
		t.Errorf("owners = %v", r.Owners)
	}
}

func TestNormalizeCasingVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"camel", map[string]any{"minPlayers": 2, "maxPlayers": 5}},
		{"lower", map[string]any{"minplayers": "2", "maxplayers": "5"}},
		{"snake", map[string]any{"min_players": 2.0, "max_players": "5.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if r.MinPlayers != 2 || r.MaxPlayers != 5 {
				t.Errorf("players = %d-%d, want 2-5", r.MinPlayers, r.MaxPlayers)
			}
		})
	}
}

func TestNormalizeDegradesOnGarbage(t *testing.T) {
	r, err := Normalize(map[string]any{
		"name":       "Azul",
		"rating":     "great",
		"minPlayers": -3,
		"lastPlayed": "yesterday",
		"categories": "Puzzle, Family,,",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if r.Rating != nil {
		t.Errorf("rating = %v, want nil", *r.Rating)
	}
	if r.MinPlayers != 0 {
		t.Errorf("min players = %d, want 0", r.MinPlayers)
	}
	if r.LastPlayed != nil {
		t.Errorf("last played = %v, want nil", r.LastPlayed)
	}
	if !reflect.DeepEqual(r.Categories, []string{"Puzzle", "Family"}) {
		t.Errorf("categories = %v", r.Categories)
	}
}

func TestNormalizeNil(t *testing.T) {
	if _, err := Normalize(nil); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("err = %v, want ErrInvalidRecord", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	rating := 7.0
	r := Record{Name: "Root", Rating: &rating, Categories: []string{"Strategy"}}
	c := r.Clone()
	c.Categories[0] = "Cards"
	*c.Rating = 1
	if r.Categories[0] != "Strategy" || *r.Rating != 7 {
		t.Fatalf("clone shares state with original: %+v", r)
	}
}

func TestValidate(t *testing.T) {
	if err := (Record{Name: "  "}).Validate(); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("blank name: err = %v, want ErrInvalidRecord", err)
	}
	if err := (Record{Name: "Root", MinPlayers: -1}).Validate(); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("negative players: err = %v, want ErrInvalidRecord", err)
	}
	if err := (Record{Name: "Root", MinPlayers: 2, MaxPlayers: 4}).Validate(); err != nil {
		t.Errorf("valid record: err = %v", err)
	}
}

func TestMergeKeepsUserValues(t *testing.T) {
	userRating := 6.0
	base := Record{Name: "My Catan", Rating: &userRating, Language: "nl", Owners: []string{"anna"}}
	fragment := Record{
		ID:         "13",
		Name:       "Catan",
		MinPlayers: 3,
		MaxPlayers: 4,
		Designer:   "Klaus Teuber",
		Categories: []string{"Negotiation"},
		Owners:     []string{"bgg"},
	}

	got := Merge(base, fragment)
	if got.ID != "13" {
		t.Errorf("id = %q, want 13", got.ID)
	}
	if got.Name != "My Catan" || got.Language != "nl" {
		t.Errorf("user fields overwritten: %+v", got)
	}
	if got.MinPlayers != 3 || got.MaxPlayers != 4 || got.Designer != "Klaus Teuber" {
		t.Errorf("fragment fields not filled: %+v", got)
	}
	if !reflect.DeepEqual(got.Owners, []string{"anna"}) {
		t.Errorf("owners = %v", got.Owners)
	}
	if !reflect.DeepEqual(got.Categories, []string{"Negotiation"}) {
		t.Errorf("categories = %v", got.Categories)
	}
	if base.ID != "" {
		t.Errorf("Merge mutated its input")
	}
}

func TestOwnedByAny(t *testing.T) {
	r := Record{Owners: []string{"anna", "ben"}}
	if !r.OwnedByAny([]string{"zoe", "ben"}) {
		t.Error("expected ben to match")
	}
	if r.OwnedByAny([]string{"", "zoe"}) {
		t.Error("unexpected match")
	}
}
