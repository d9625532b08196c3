package match

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gedtree/gedtree/internal/validation"
)

// Confidence thresholds for research findings.
const (
	ConfidenceThresholdAutoAdd = 0.90
	ConfidenceThresholdSuggest = 0.75
	ConfidenceThresholdReview  = 0.60
)

// Date precision levels, from most to least specific.
const (
	PrecisionExact     = "EXACT"
	PrecisionMonthYear = "MONTH_YEAR"
	PrecisionYearOnly  = "YEAR_ONLY"
	PrecisionCirca     = "CIRCA"
	PrecisionRange     = "RANGE"
)

// ResearchSource is one source backing a research finding.
type ResearchSource struct {
	Type        string   `json:"type" yaml:"type"` // wikidata, newspaper, book, web, wikipedia, ...
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	AccessDate  string   `json:"access_date,omitempty" yaml:"access_date,omitempty"`
	AccessDates []string `json:"access_dates,omitempty" yaml:"access_dates,omitempty"`
}

// ResearchData is the genealogical data a finding proposes.
type ResearchData struct {
	BirthDate          string `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	BirthDatePrecision string `json:"birthDatePrecision,omitempty" yaml:"birthDatePrecision,omitempty"`
	BirthPlace         string `json:"birthPlace,omitempty" yaml:"birthPlace,omitempty"`
	DeathDate          string `json:"deathDate,omitempty" yaml:"deathDate,omitempty"`
	DeathDatePrecision string `json:"deathDatePrecision,omitempty" yaml:"deathDatePrecision,omitempty"`
	DeathPlace         string `json:"deathPlace,omitempty" yaml:"deathPlace,omitempty"`
}

// Conflict records disagreeing values for one field across sources.
type Conflict struct {
	Field  string   `json:"field" yaml:"field"`
	Values []string `json:"values" yaml:"values"`
}

// Finding is a research result to be scored before it is offered for
// the tree.
type Finding struct {
	Sources   []ResearchSource `json:"sources" yaml:"sources"`
	Data      ResearchData     `json:"data" yaml:"data"`
	Conflicts []Conflict       `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// ConfidenceBreakdown itemizes the weighted component scores.
type ConfidenceBreakdown struct {
	SourceScore      float64 `json:"source_score"`
	SpecificityScore float64 `json:"specificity_score"`
	AuthorityScore   float64 `json:"authority_score"`
	ConsistencyScore float64 `json:"consistency_score"`
}

// Confidence is the scored outcome for a finding.
type Confidence struct {
	Score      float64             `json:"score"`
	Level      string              `json:"level"` // auto-add, suggest, review, low-confidence
	Breakdown  ConfidenceBreakdown `json:"breakdown"`
	BadgeColor string              `json:"badge_color"`
}

// sourceAuthority weighs how much a source type is trusted.
var sourceAuthority = map[string]float64{
	"government_record": 1.00,
	"census":            0.85,
	"wikidata":          0.90,
	"newspaper":         0.75,
	"book":              0.70,
	"wikipedia":         0.65,
	"family_tree":       0.50,
	"web":               0.30,
}

var precisionSpecificity = map[string]float64{
	PrecisionExact:     1.00,
	PrecisionMonthYear: 0.75,
	PrecisionYearOnly:  0.50,
	PrecisionCirca:     0.40,
	PrecisionRange:     0.30,
}

// CalculateResearchConfidence scores a finding: source multiplicity
// (30%, with a 0.20 penalty per conflict), data specificity (25%, over
// date precisions and place component counts), source authority (25%)
// and data consistency (20%, degraded 0.35 per conflict). The final
// score is rounded to two decimals and bucketed into a level.
func CalculateResearchConfidence(finding Finding) Confidence {
	numSources := len(finding.Sources)
	var sourceScore float64
	switch {
	case numSources >= 4:
		sourceScore = 1.00
	case numSources == 3:
		sourceScore = 0.80
	case numSources == 2:
		sourceScore = 0.60
	case numSources == 1:
		sourceScore = 0.30
	}
	conflicts := float64(len(finding.Conflicts))
	sourceScore = math.Max(0, sourceScore-conflicts*0.20)

	var specificity []float64
	for _, precision := range []string{finding.Data.BirthDatePrecision, finding.Data.DeathDatePrecision} {
		specificity = append(specificity, precisionSpecificity[precision])
	}
	for _, place := range []string{finding.Data.BirthPlace, finding.Data.DeathPlace} {
		specificity = append(specificity, placeSpecificity(place))
	}
	specificityScore := mean(specificity)

	var authority []float64
	for _, src := range finding.Sources {
		score, ok := sourceAuthority[src.Type]
		if !ok {
			score = sourceAuthority["web"]
		}
		authority = append(authority, score)
	}
	authorityScore := mean(authority)

	consistencyScore := math.Max(0, 1.0-conflicts*0.35)

	confidence := sourceScore*0.30 + specificityScore*0.25 + authorityScore*0.25 + consistencyScore*0.20
	confidence = math.Round(confidence*100) / 100

	var level, badge string
	switch {
	case confidence >= ConfidenceThresholdAutoAdd:
		level, badge = "auto-add", "green"
	case confidence >= ConfidenceThresholdSuggest:
		level, badge = "suggest", "yellow"
	case confidence >= ConfidenceThresholdReview:
		level, badge = "review", "orange"
	default:
		level, badge = "low-confidence", "gray"
	}

	return Confidence{
		Score:      confidence,
		Level:      level,
		BadgeColor: badge,
		Breakdown: ConfidenceBreakdown{
			SourceScore:      round3(sourceScore * 0.30),
			SpecificityScore: round3(specificityScore * 0.25),
			AuthorityScore:   round3(authorityScore * 0.25),
			ConsistencyScore: round3(consistencyScore * 0.20),
		},
	}
}

// placeSpecificity scores a place by how many comma-separated
// components it names: three or more (city, county, country) is fully
// specific.
func placeSpecificity(place string) float64 {
	if place == "" {
		return 0
	}
	switch parts := len(strings.Split(place, ",")); {
	case parts >= 3:
		return 1.0
	case parts == 2:
		return 0.75
	default:
		return 0.50
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// DetermineDatePrecision classifies a GEDCOM date string into a
// precision level, or "" when it carries no usable date.
func DetermineDatePrecision(date string) string {
	if date == "" {
		return ""
	}
	date = strings.ToUpper(strings.TrimSpace(date))

	for _, mod := range []string{"ABT", "ABOUT", "CIRCA", "CA", "EST"} {
		if strings.Contains(date, mod) {
			return PrecisionCirca
		}
	}
	for _, mod := range []string{"BET", "BETWEEN", "FROM", "TO"} {
		if strings.Contains(date, mod) {
			return PrecisionRange
		}
	}

	hasYear, hasMonth, hasDay := false, false, false
	for _, part := range strings.Fields(date) {
		if validation.IsMonth(part) {
			hasMonth = true
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			if len(part) == 4 {
				hasYear = true
			} else if n >= 1 && n <= 31 {
				hasDay = true
			}
		}
	}

	switch {
	case hasDay && hasMonth && hasYear:
		return PrecisionExact
	case hasMonth && hasYear:
		return PrecisionMonthYear
	case hasYear:
		return PrecisionYearOnly
	}
	return ""
}

// AssessSourceQuality maps a source type onto the GEDCOM QUAY scale,
// 0 (unreliable) to 3 (primary evidence), bumped up one for sources
// with citations and down one for transcriptions.
func AssessSourceQuality(sourceType string, hasCitations, isTranscription bool) int {
	qualityMap := map[string]int{
		"government_record": 3,
		"census":            3,
		"wikidata":          2,
		"newspaper":         2,
		"book":              2,
		"wikipedia":         1,
		"family_tree":       1,
		"web":               0,
	}
	quality := qualityMap[sourceType]
	if hasCitations && quality < 3 {
		quality++
	}
	if isTranscription && quality > 0 {
		quality--
	}
	return quality
}

// FormatConfidenceMessage renders a human-readable confidence summary
// for a researched person.
func FormatConfidenceMessage(c Confidence, personName string) string {
	percentage := int(c.Score * 100)

	var headline string
	switch c.Level {
	case "auto-add":
		headline = fmt.Sprintf("High confidence (%d%%) - Ready to add %s to tree", percentage, personName)
	case "suggest":
		headline = fmt.Sprintf("Good confidence (%d%%) - Recommend adding %s with review", percentage, personName)
	case "review":
		headline = fmt.Sprintf("Moderate confidence (%d%%) - Please review %s carefully", percentage, personName)
	default:
		headline = fmt.Sprintf("Low confidence (%d%%) - Manual verification needed for %s", percentage, personName)
	}

	var b strings.Builder
	b.WriteString(headline)
	b.WriteString("\n\nScore breakdown:\n")
	fmt.Fprintf(&b, "  - Source quality: %.2f\n", c.Breakdown.SourceScore)
	fmt.Fprintf(&b, "  - Data specificity: %.2f\n", c.Breakdown.SpecificityScore)
	fmt.Fprintf(&b, "  - Source authority: %.2f\n", c.Breakdown.AuthorityScore)
	fmt.Fprintf(&b, "  - Data consistency: %.2f", c.Breakdown.ConsistencyScore)
	return b.String()
}

// DeduplicateSources merges sources that share a URL or whose titles
// contain each other, folding access dates into the surviving entry.
func DeduplicateSources(sources []ResearchSource) []ResearchSource {
	seenURL := make(map[string]*ResearchSource)
	seenTitle := make(map[string]*ResearchSource)
	var unique []ResearchSource

	for _, source := range sources {
		url := strings.ToLower(strings.TrimSpace(source.URL))
		title := strings.ToLower(strings.TrimSpace(source.Title))

		if url != "" {
			if existing, ok := seenURL[url]; ok {
				mergeAccessDate(existing, source)
				continue
			}
		}

		merged := false
		if title != "" {
			for existingTitle, existing := range seenTitle {
				if strings.Contains(existingTitle, title) || strings.Contains(title, existingTitle) {
					mergeAccessDate(existing, source)
					merged = true
					break
				}
			}
		}
		if merged {
			continue
		}

		unique = append(unique, source)
		kept := &unique[len(unique)-1]
		if url != "" {
			seenURL[url] = kept
		}
		if title != "" {
			seenTitle[title] = kept
		}
	}
	return unique
}

func mergeAccessDate(dst *ResearchSource, src ResearchSource) {
	if src.AccessDate != "" {
		dst.AccessDates = append(dst.AccessDates, src.AccessDate)
	}
}
