// Package cohort maps participants to comparable grouping keys.
package cohort

import "github.com/eventscore/rankd/internal/domain/model"

// Labels used when no age category applies.
const (
	// LabelAll is assigned to every participant when the event has no
	// configured age categories at all.
	LabelAll = "All"
	// LabelUnassigned is assigned when the participant's age is unknown or
	// no configured band contains it.
	LabelUnassigned = "Unassigned"
	// UnknownGender is the placeholder for participants without a gender value.
	UnknownGender = "?"
)

// AgeCategoryName resolves the age-category label for a participant age.
// Categories are scanned in stored order and the first inclusive match wins;
// overlapping bands are allowed and resolved by that order.
func AgeCategoryName(age *int, categories []model.AgeCategory, hasCategories bool) string {
	if !hasCategories {
		return LabelAll
	}
	if age == nil {
		return LabelUnassigned
	}
	for _, cat := range categories {
		if cat.MinAge <= *age && *age <= cat.MaxAge {
			return cat.Name
		}
	}
	return LabelUnassigned
}

// Gender returns the participant's gender verbatim, or UnknownGender when
// absent or empty. No case or whitespace normalization is applied; callers
// own input consistency.
func Gender(g *string) string {
	if g == nil || *g == "" {
		return UnknownGender
	}
	return *g
}
