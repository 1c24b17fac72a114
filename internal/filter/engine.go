package filter

import (
	"math"
	"slices"
	"strings"

	"boardshelf/backend/internal/catalog"
)

// Engine applies specs against a known category vocabulary. A spec whose
// categories cover the whole vocabulary does not constrain categories.
type Engine struct {
	Vocabulary []string
}

// NewEngine returns an Engine for the given vocabulary.
func NewEngine(vocabulary []string) *Engine {
	return &Engine{Vocabulary: slices.Clone(vocabulary)}
}

// Apply filters with an Engine that has no vocabulary.
func Apply(collection []catalog.Record, spec Spec) []catalog.Record {
	return Engine{}.Apply(collection, spec)
}

// Apply returns the records of collection that pass every active dimension
// of spec, in their original order. The input slice is not modified.
func (e Engine) Apply(collection []catalog.Record, spec Spec) []catalog.Record {
	preds := e.predicates(spec)
	out := make([]catalog.Record, 0, len(collection))
	for _, rec := range collection {
		if matches(rec, preds) {
			out = append(out, rec)
		}
	}
	return out
}

type predicate func(catalog.Record) bool

func matches(rec catalog.Record, preds []predicate) bool {
	for _, p := range preds {
		if !p(rec) {
			return false
		}
	}
	return true
}

// predicates compiles the active dimensions of spec. Dimensions whose value
// is missing or malformed are left out.
func (e Engine) predicates(spec Spec) []predicate {
	var preds []predicate

	if n := spec.NumPlayers; n > 0 {
		preds = append(preds, func(r catalog.Record) bool {
			return r.MinPlayers <= n && n <= r.MaxPlayers
		})
	}

	if floor := spec.Rating; floor > 0 && !math.IsInf(floor, 0) {
		preds = append(preds, func(r catalog.Record) bool {
			return r.Rating != nil && *r.Rating >= floor
		})
	}

	if !unconstrained(spec.Language) {
		lang := strings.TrimSpace(spec.Language)
		preds = append(preds, func(r catalog.Record) bool { return r.Language == lang })
	}

	if !unconstrained(spec.Owner) {
		owner := strings.TrimSpace(spec.Owner)
		preds = append(preds, func(r catalog.Record) bool { return slices.Contains(r.Owners, owner) })
	}

	if me := strings.TrimSpace(spec.CurrentUser); spec.MyGamesOnly && me != "" {
		preds = append(preds, func(r catalog.Record) bool { return slices.Contains(r.Owners, me) })
	}

	if spec.HouseholdOnly {
		scope := householdScope(spec)
		if len(scope) > 0 {
			preds = append(preds, func(r catalog.Record) bool { return r.OwnedByAny(scope) })
		}
	}

	if !unconstrained(spec.Mode) {
		mode := strings.TrimSpace(spec.Mode)
		preds = append(preds, func(r catalog.Record) bool { return r.Tag == mode })
	}

	if p := e.categoryPredicate(spec); p != nil {
		preds = append(preds, p)
	}

	if q := strings.ToLower(strings.TrimSpace(spec.Query)); q != "" {
		preds = append(preds, func(r catalog.Record) bool {
			return strings.Contains(strings.ToLower(r.Name), q)
		})
	}

	return preds
}

func householdScope(spec Spec) []string {
	scope := make([]string, 0, len(spec.Household)+1)
	for _, m := range spec.Household {
		if m = strings.TrimSpace(m); m != "" {
			scope = append(scope, m)
		}
	}
	if me := strings.TrimSpace(spec.CurrentUser); me != "" {
		scope = append(scope, me)
	}
	return scope
}

func (e Engine) categoryPredicate(spec Spec) predicate {
	wanted := make([]string, 0, len(spec.Categories))
	for _, c := range spec.Categories {
		if c = strings.TrimSpace(c); c != "" && !slices.Contains(wanted, c) {
			wanted = append(wanted, c)
		}
	}
	if len(wanted) == 0 || e.coversVocabulary(wanted) {
		return nil
	}

	mode, ok := ParseCategoryMode(string(spec.CategoryFilterType))
	if !ok {
		return nil
	}

	if mode == MatchAll {
		return func(r catalog.Record) bool {
			for _, c := range wanted {
				if !r.HasCategory(c) {
					return false
				}
			}
			return true
		}
	}
	return func(r catalog.Record) bool {
		for _, c := range wanted {
			if r.HasCategory(c) {
				return true
			}
		}
		return false
	}
}

func (e Engine) coversVocabulary(wanted []string) bool {
	if len(e.Vocabulary) == 0 {
		return false
	}
	for _, v := range e.Vocabulary {
		if !slices.Contains(wanted, v) {
			return false
		}
	}
	return true
}
