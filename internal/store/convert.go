package store

import (
	"slices"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"
)

func toRecord(g *models.Game) catalog.Record {
	cats := make([]string, 0, len(g.Categories))
	for _, c := range g.Categories {
		if c != nil {
			cats = append(cats, c.Name)
		}
	}
	slices.Sort(cats)

	rec := catalog.Record{
		ID:          g.ID,
		Name:        g.Name,
		Language:    g.Language,
		MinPlayers:  g.MinPlayers,
		MaxPlayers:  g.MaxPlayers,
		Categories:  cats,
		Owners:      g.OwnerList(),
		Tag:         g.Tag,
		Designer:    g.Designer,
		Artist:      g.Artist,
		Publisher:   g.Publisher,
		MinPlaytime: g.MinPlaytime,
		MaxPlaytime: g.MaxPlaytime,
		Year:        g.Year,
		BGGURL:      g.BGGURL,
		ImageURL:    g.ImageURL,
		Description: g.Description,
	}
	if g.Rating != nil {
		v := *g.Rating
		rec.Rating = &v
	}
	if g.LastPlayed != nil {
		t := g.LastPlayed.UTC()
		rec.LastPlayed = &t
	}
	return rec
}

// fromRecord copies the scalar fields of rec into a model. Categories are
// resolved separately because they need the database.
func fromRecord(rec catalog.Record) models.Game {
	g := models.Game{
		ID:          rec.ID,
		Name:        rec.Name,
		Language:    rec.Language,
		Rating:      rec.Clone().Rating,
		MinPlayers:  rec.MinPlayers,
		MaxPlayers:  rec.MaxPlayers,
		Tag:         rec.Tag,
		LastPlayed:  rec.Clone().LastPlayed,
		Designer:    rec.Designer,
		Artist:      rec.Artist,
		Publisher:   rec.Publisher,
		MinPlaytime: rec.MinPlaytime,
		MaxPlaytime: rec.MaxPlaytime,
		Year:        rec.Year,
		BGGURL:      rec.BGGURL,
		ImageURL:    rec.ImageURL,
		Description: rec.Description,
	}
	g.SetOwnerList(rec.Owners)
	return g
}
