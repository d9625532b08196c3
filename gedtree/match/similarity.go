// Package match scores candidate person-records against the existing
// tree: a weighted fuzzy similarity for duplicate detection, and a
// confidence model for research findings.
package match

import (
	"sort"
	"strings"

	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/internal/matching"
	"github.com/gedtree/gedtree/types"
)

// Similarity weights. They sum to 1.0; the gender mismatch penalty can
// push a partial score down but the final score is clamped to [0, 1].
const (
	weightName       = 0.35
	weightBirthYear  = 0.25
	weightBirthPlace = 0.20
	weightGender     = 0.10
	weightDeathYear  = 0.10

	genderMismatchPenalty = 0.05
)

// PersonSimilarity scores how likely candidate is the same person as
// existing, in [0, 1]. Components: sequence-ratio name similarity
// (35%), birth-year proximity (25%), birth-place match with component
// overlap (20%), gender agreement (10%, with a penalty when both are
// definite and differ), death-year proximity (10%). A component is
// only scored when both sides carry the field.
func PersonSimilarity(existing types.PersonDetails, candidate types.PersonSummary) float64 {
	score := 0.0

	if existing.FullName != "" && candidate.FullName != "" {
		ratio := matching.Ratio(strings.ToLower(existing.FullName), strings.ToLower(candidate.FullName))
		score += ratio * weightName
	}

	if existing.BirthYear != 0 && candidate.BirthYear != 0 {
		score += yearProximity(existing.BirthYear, candidate.BirthYear, [4]float64{0.25, 0.20, 0.15, 0.10}, [3]int{1, 3, 5})
	}

	if existing.BirthPlace != "" && candidate.BirthPlace != "" {
		score += placeScore(existing.BirthPlace, candidate.BirthPlace)
	}

	if existing.Gender != "" && candidate.Gender != "" {
		if existing.Gender == candidate.Gender {
			score += weightGender
		} else if existing.Gender != types.GenderUnknown && candidate.Gender != types.GenderUnknown {
			score -= genderMismatchPenalty
		}
	}

	if existing.DeathYear != 0 && candidate.DeathYear != 0 {
		score += yearProximity(existing.DeathYear, candidate.DeathYear, [4]float64{0.10, 0.07, 0.04, 0}, [3]int{2, 5, 5})
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// yearProximity maps the absolute year difference onto a banded score:
// exact, then three widening bands, then zero.
func yearProximity(a, b int, scores [4]float64, bands [3]int) float64 {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return scores[0]
	case diff <= bands[0]:
		return scores[1]
	case diff <= bands[1]:
		return scores[2]
	case diff <= bands[2]:
		return scores[3]
	}
	return 0
}

// placeScore compares birth places: exact match scores full weight,
// substring containment slightly less ("Boston, MA" contains
// "Boston"), and otherwise the comma-separated components are compared
// as sets, scoring by overlap fraction.
func placeScore(a, b string) float64 {
	place1 := strings.ToLower(strings.TrimSpace(a))
	place2 := strings.ToLower(strings.TrimSpace(b))

	if place1 == place2 {
		return weightBirthPlace
	}
	if strings.Contains(place1, place2) || strings.Contains(place2, place1) {
		return 0.15
	}

	parts1 := placeParts(place1)
	parts2 := placeParts(place2)
	if len(parts1) == 0 || len(parts2) == 0 {
		return 0
	}
	common := 0
	for p := range parts1 {
		if parts2[p] {
			common++
		}
	}
	denom := len(parts1)
	if len(parts2) > denom {
		denom = len(parts2)
	}
	return weightBirthPlace * float64(common) / float64(denom)
}

func placeParts(place string) map[string]bool {
	parts := make(map[string]bool)
	for _, p := range strings.Split(place, ",") {
		parts[strings.TrimSpace(p)] = true
	}
	return parts
}

// DuplicateMatch is one scored candidate duplicate. Percentage is the
// integer rendering of Similarity for display.
type DuplicateMatch struct {
	Person     types.PersonDetails `json:"person" yaml:"person"`
	Similarity float64             `json:"similarity" yaml:"similarity"`
	Percentage int                 `json:"percentage" yaml:"percentage"`
}

// DefaultDuplicateThreshold is the minimum similarity for a person to
// be reported as a potential duplicate.
const DefaultDuplicateThreshold = 0.60

// FindPotentialDuplicates scores candidate against every individual in
// the document (using the full-detail projection) and returns those at
// or above the threshold, sorted by descending similarity.
func FindPotentialDuplicates(d *document.Document, candidate types.PersonSummary, threshold float64) []DuplicateMatch {
	var matches []DuplicateMatch
	for _, indi := range d.Individuals() {
		details := document.Details(indi)
		score := PersonSimilarity(details, candidate)
		if score >= threshold {
			matches = append(matches, DuplicateMatch{
				Person:     details,
				Similarity: score,
				Percentage: int(score * 100),
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}
