package match_test

import (
	"math"
	"testing"

	"github.com/gedtree/gedtree/gedtree/match"
	"github.com/gedtree/gedtree/testutil"
	"github.com/gedtree/gedtree/types"
)

func details(p types.PersonSummary) types.PersonDetails {
	return types.PersonDetails{PersonSummary: p}
}

func TestPersonSimilarityIdentical(t *testing.T) {
	p := types.PersonSummary{
		FullName:   "Johann Schmidt",
		Gender:     "M",
		BirthYear:  1850,
		DeathYear:  1920,
		BirthPlace: "Hamburg, Germany",
	}
	got := match.PersonSimilarity(details(p), p)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical persons score %v, want 1.0", got)
	}
}

func TestPersonSimilarityAllDifferent(t *testing.T) {
	existing := details(types.PersonSummary{
		FullName:   "Johann Schmidt",
		Gender:     "M",
		BirthYear:  1850,
		BirthPlace: "Hamburg, Germany",
	})
	candidate := types.PersonSummary{
		FullName:   "Xu Qing",
		Gender:     "F",
		BirthYear:  1990,
		BirthPlace: "Chengdu, China",
	}
	got := match.PersonSimilarity(existing, candidate)
	if got > 0.30 {
		t.Errorf("unrelated persons score %v, want <= 0.30", got)
	}
}

func TestPersonSimilarityYearBands(t *testing.T) {
	base := types.PersonSummary{FullName: "Johann Schmidt", BirthYear: 1850}

	tests := []struct {
		name          string
		candidateYear int
		wantYearScore float64
	}{
		{"exact year", 1850, 0.25},
		{"one off", 1851, 0.20},
		{"three off", 1853, 0.15},
		{"five off", 1855, 0.10},
		{"six off", 1856, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := base
			candidate.BirthYear = tt.candidateYear
			got := match.PersonSimilarity(details(base), candidate)
			want := 0.35 + tt.wantYearScore // full name score plus the band
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("score = %v, want %v", got, want)
			}
		})
	}
}

func TestPersonSimilaritySkipsMissingFields(t *testing.T) {
	// Only the name is present on both sides; nothing else contributes.
	existing := details(types.PersonSummary{FullName: "Johann Schmidt", BirthYear: 1850})
	candidate := types.PersonSummary{FullName: "Johann Schmidt"}
	got := match.PersonSimilarity(existing, candidate)
	if math.Abs(got-0.35) > 1e-9 {
		t.Errorf("score = %v, want 0.35", got)
	}
}

func TestPersonSimilarityGender(t *testing.T) {
	existing := details(types.PersonSummary{FullName: "Johann Schmidt", Gender: "M"})

	same := types.PersonSummary{FullName: "Johann Schmidt", Gender: "M"}
	if got := match.PersonSimilarity(existing, same); math.Abs(got-0.45) > 1e-9 {
		t.Errorf("same gender score = %v, want 0.45", got)
	}

	mismatch := types.PersonSummary{FullName: "Johann Schmidt", Gender: "F"}
	if got := match.PersonSimilarity(existing, mismatch); math.Abs(got-0.30) > 1e-9 {
		t.Errorf("gender mismatch score = %v, want 0.30", got)
	}

	// Unknown gender neither scores nor penalizes.
	unknown := types.PersonSummary{FullName: "Johann Schmidt", Gender: "U"}
	if got := match.PersonSimilarity(existing, unknown); math.Abs(got-0.35) > 1e-9 {
		t.Errorf("unknown gender score = %v, want 0.35", got)
	}
}

func TestPersonSimilarityPlaces(t *testing.T) {
	base := details(types.PersonSummary{FullName: "Johann Schmidt", BirthPlace: "Hamburg, Germany"})

	tests := []struct {
		name  string
		place string
		want  float64
	}{
		{"exact", "Hamburg, Germany", 0.35 + 0.20},
		{"containment", "Hamburg", 0.35 + 0.15},
		{"component overlap", "Bremen, Germany", 0.35 + 0.20*0.5},
		{"no overlap", "Chengdu, China", 0.35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := types.PersonSummary{FullName: "Johann Schmidt", BirthPlace: tt.place}
			got := match.PersonSimilarity(base, candidate)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPersonSimilarityClampedAtZero(t *testing.T) {
	existing := details(types.PersonSummary{Gender: "M"})
	candidate := types.PersonSummary{Gender: "F"}
	if got := match.PersonSimilarity(existing, candidate); got != 0 {
		t.Errorf("score = %v, want clamp to 0", got)
	}
}

func TestFindPotentialDuplicates(t *testing.T) {
	doc, universe := testutil.LoadUniverse(t)

	// A candidate closely matching Johann: brother Karl also scores,
	// but lower.
	candidate := types.PersonSummary{
		FirstName:  "Johann",
		LastName:   "Schmidt",
		FullName:   "Johann Schmidt",
		Gender:     "M",
		BirthYear:  1850,
		BirthPlace: "Hamburg, Germany",
	}

	matches := match.FindPotentialDuplicates(doc, candidate, match.DefaultDuplicateThreshold)
	if len(matches) == 0 {
		t.Fatal("expected at least one duplicate")
	}
	if matches[0].Person.ID != universe.Johann {
		t.Errorf("best match = %s, want %s", matches[0].Person.ID, universe.Johann)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Similarity > matches[i-1].Similarity {
			t.Error("matches must be sorted by descending similarity")
		}
	}
	for _, m := range matches {
		if m.Similarity < match.DefaultDuplicateThreshold {
			t.Errorf("%s scored %v, below threshold", m.Person.ID, m.Similarity)
		}
		if m.Percentage != int(m.Similarity*100) {
			t.Errorf("percentage %d does not render %v", m.Percentage, m.Similarity)
		}
	}
}

func TestFindPotentialDuplicatesNoMatch(t *testing.T) {
	doc, _ := testutil.LoadUniverse(t)

	candidate := types.PersonSummary{
		FullName:  "Xu Qing",
		Gender:    "F",
		BirthYear: 1990,
	}
	if matches := match.FindPotentialDuplicates(doc, candidate, 0.60); len(matches) != 0 {
		t.Errorf("expected no duplicates, got %d", len(matches))
	}
}
