package duplicate

import (
	"strings"
	"unicode"

	"github.com/adrg/strutil/metrics"
)

var dice = &metrics.SorensenDice{CaseSensitive: true, NgramSize: 2}

// Similarity returns the Sørensen–Dice coefficient of the character bigrams
// of a and b, ignoring whitespace. Bigrams are counted with multiplicity.
// The score is symmetric, lies in [0, 1] and is 1 for identical strings.
// Strings shorter than two characters only match themselves.
func Similarity(a, b string) float64 {
	a = stripSpace(a)
	b = stripSpace(b)
	if a == b {
		return 1
	}
	if len([]rune(a)) < 2 || len([]rune(b)) < 2 {
		return 0
	}
	return dice.Compare(a, b)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
