package catalog

import "slices"

// Merge fills the empty fields of a user submission from a catalogue lookup
// fragment. Values the user supplied are never overwritten.
func Merge(base, fragment Record) Record {
	out := base.Clone()
	fillString(&out.ID, fragment.ID)
	fillString(&out.Name, fragment.Name)
	fillString(&out.Language, fragment.Language)
	fillString(&out.Tag, fragment.Tag)
	fillString(&out.Designer, fragment.Designer)
	fillString(&out.Artist, fragment.Artist)
	fillString(&out.Publisher, fragment.Publisher)
	fillString(&out.BGGURL, fragment.BGGURL)
	fillString(&out.ImageURL, fragment.ImageURL)
	fillString(&out.Description, fragment.Description)

	fillInt(&out.MinPlayers, fragment.MinPlayers)
	fillInt(&out.MaxPlayers, fragment.MaxPlayers)
	fillInt(&out.MinPlaytime, fragment.MinPlaytime)
	fillInt(&out.MaxPlaytime, fragment.MaxPlaytime)
	fillInt(&out.Year, fragment.Year)

	if out.Rating == nil && fragment.Rating != nil {
		v := *fragment.Rating
		out.Rating = &v
	}
	if out.LastPlayed == nil && fragment.LastPlayed != nil {
		t := *fragment.LastPlayed
		out.LastPlayed = &t
	}
	if len(out.Categories) == 0 {
		out.Categories = slices.Clone(fragment.Categories)
	}
	if len(out.Owners) == 0 {
		out.Owners = slices.Clone(fragment.Owners)
	}
	return out
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func fillInt(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}
