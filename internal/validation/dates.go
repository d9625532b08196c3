// Package validation checks and auto-corrects GEDCOM date strings and
// enforces cross-date consistency rules for the mutation engine.
package validation

import (
	"strings"

	"github.com/gedtree/gedtree/types"
)

// Date modifiers recognized by the GEDCOM grammar. They pass through
// correction untouched.
var validModifiers = map[string]bool{
	"ABT": true, "CAL": true, "EST": true, "BEF": true,
	"AFT": true, "BET": true, "FROM": true, "TO": true,
}

// GEDCOM month abbreviations.
var validMonths = map[string]bool{
	"JAN": true, "FEB": true, "MAR": true, "APR": true,
	"MAY": true, "JUN": true, "JUL": true, "AUG": true,
	"SEP": true, "OCT": true, "NOV": true, "DEC": true,
}

// Full month names that users commonly type; corrected to the GEDCOM
// abbreviation with a warning. MAY needs no entry.
var monthCorrections = map[string]string{
	"JANUARY": "JAN", "FEBRUARY": "FEB", "MARCH": "MAR", "APRIL": "APR",
	"JUNE": "JUN", "JULY": "JUL", "AUGUST": "AUG", "SEPTEMBER": "SEP",
	"OCTOBER": "OCT", "NOVEMBER": "NOV", "DECEMBER": "DEC",
}

// IsModifier reports whether token is a recognized date modifier.
func IsModifier(token string) bool { return validModifiers[token] }

// IsMonth reports whether token is a GEDCOM month abbreviation.
func IsMonth(token string) bool { return validMonths[token] }

// ExtractYear returns the first 4-digit year token in a GEDCOM date
// string, or 0 if none is present.
func ExtractYear(date string) int {
	for _, part := range strings.Fields(date) {
		if len(part) == 4 && isDigits(part) {
			return int(part[0]-'0')*1000 + int(part[1]-'0')*100 + int(part[2]-'0')*10 + int(part[3]-'0')
		}
	}
	return 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ValidateAndCorrectDate uppercases a date string, corrects full month
// names to their GEDCOM abbreviations, and prefixes ABT when no 4-digit
// year is present. Returns the corrected date plus any warnings. An
// empty input passes through unchanged with no warnings.
func ValidateAndCorrectDate(date string) (string, []string) {
	var warnings []string
	if date == "" {
		return "", warnings
	}

	date = strings.ToUpper(strings.TrimSpace(date))
	parts := strings.Fields(date)

	hasYear := false
	for _, p := range parts {
		if len(p) == 4 && isDigits(p) {
			hasYear = true
			break
		}
	}
	if !hasYear {
		warnings = append(warnings, "Date '"+date+"' does not contain a valid 4-digit year. Treating as approximate.")
		return "ABT " + date, warnings
	}

	corrected := make([]string, 0, len(parts))
	for _, p := range parts {
		if abbr, ok := monthCorrections[p]; ok {
			warnings = append(warnings, "Corrected month '"+p+"' to '"+abbr+"'")
			corrected = append(corrected, abbr)
		} else {
			corrected = append(corrected, p)
		}
	}
	return strings.Join(corrected, " "), warnings
}

// CheckDateConsistency applies the cross-date rules: death before
// birth and a parent younger than 10 at the child's birth are
// ERROR-level (they block the triggering write); an age at death over
// 120 or a parent older than 80 at the child's birth are WARNING-level.
// Dates without an extractable year are skipped.
func CheckDateConsistency(birthDate, deathDate, parentBirthDate string) []string {
	var warnings []string

	birthYear := ExtractYear(birthDate)
	deathYear := ExtractYear(deathDate)
	parentBirthYear := ExtractYear(parentBirthDate)

	if birthYear != 0 && deathYear != 0 {
		if deathYear < birthYear {
			warnings = append(warnings, types.Errorf("Death year (%d) is before birth year (%d)", deathYear, birthYear))
		} else if deathYear-birthYear > 120 {
			warnings = append(warnings, types.Warningf("Age at death (%d) exceeds 120 years", deathYear-birthYear))
		}
	}

	if birthYear != 0 && parentBirthYear != 0 {
		parentAge := birthYear - parentBirthYear
		if parentAge < 10 {
			warnings = append(warnings, types.Errorf("Parent age at child's birth (%d) is too young (< 10)", parentAge))
		} else if parentAge > 80 {
			warnings = append(warnings, types.Warningf("Parent age at child's birth (%d) exceeds 80 years", parentAge))
		}
	}

	return warnings
}
