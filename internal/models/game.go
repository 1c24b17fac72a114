package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Game is a catalogue entry. Its ID is either a BoardGameGeek ID or a
// locally generated UUID, so it is a string primary key rather than
// gorm.Model's auto-increment.
type Game struct {
	ID          string `gorm:"primaryKey;size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:255;not null;index"`
	Language    string `gorm:"size:32"`
	Rating      *float64
	MinPlayers  int
	MaxPlayers  int
	Tag         string `gorm:"size:64"`
	LastPlayed  *time.Time
	Designer    string `gorm:"size:255"`
	Artist      string `gorm:"size:255"`
	Publisher   string `gorm:"size:255"`
	MinPlaytime int
	MaxPlaytime int
	Year        int
	BGGURL      string `gorm:"column:bgg_url;size:512"`
	ImageURL    string `gorm:"size:512"`
	Description string `gorm:"type:text"`
	// Owners holds owner names as a JSON array of strings.
	Owners      datatypes.JSON `gorm:"type:json"`
	CreatedByID *uint
	Categories  []*Category `gorm:"many2many:game_categories;"`
}

// OwnerList decodes Owners.
func (g *Game) OwnerList() []string {
	var arr []string
	if len(g.Owners) == 0 {
		return arr
	}
	_ = json.Unmarshal(g.Owners, &arr)
	return arr
}

// SetOwnerList encodes owners into Owners.
func (g *Game) SetOwnerList(owners []string) {
	if owners == nil {
		owners = []string{}
	}
	b, _ := json.Marshal(owners)
	g.Owners = b
}
