package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/truthweaver/internal/types"
	"github.com/jonathan/truthweaver/internal/vocabulary"
)

// The extractors below work on lower-cased text and share no state.

// extractYears returns "N years" for every match, duplicates kept.
// N is the digit run captured by the pattern with Unicode decimal digits
// written as ASCII; captures that are not all decimal digits are skipped.
func extractYears(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	years := make([]string, 0, len(matches))
	for _, m := range matches {
		digits, ok := foldDigits(m[1])
		if !ok {
			continue
		}
		years = append(years, digits+" years")
	}
	return years
}

// foldDigits rewrites every Unicode decimal digit in s as its ASCII digit.
func foldDigits(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok {
			return "", false
		}
		b.WriteByte('0' + d)
	}
	return b.String(), true
}

// digitValue returns the value of a decimal digit (category Nd).
// Nd code points come in contiguous runs of ten, zero first.
func digitValue(r rune) (byte, bool) {
	if r >= '0' && r <= '9' {
		return byte(r - '0'), true
	}
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return rangeDigit(r, lo, rune(rg.Stride))
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return rangeDigit(r, lo, rune(rg.Stride))
		}
	}
	return 0, false
}

func rangeDigit(r, lo, stride rune) (byte, bool) {
	if (r-lo)%stride != 0 {
		return 0, false
	}
	return byte((r - lo) / stride % 10), true
}

// extractLanguages returns the languages found in list order.
func extractLanguages(languages []string, text string) []string {
	return containedTerms(languages, text)
}

// extractSkillLevel returns the tag of the first level with a matching term.
func extractSkillLevel(levels []vocabulary.SkillLevel, text string) (string, bool) {
	for _, level := range levels {
		if containsAny(text, level.Terms) {
			return level.Tag, true
		}
	}
	return "", false
}

// detectLeadership classifies leadership claims over the joined transcripts.
// Leadership phrases next to solo phrases mean the leadership is fabricated.
func detectLeadership(v *vocabulary.Vocabulary, joined string) string {
	led := containsAny(joined, v.LeadershipPhrases)
	solo := containsAny(joined, v.SoloPhrases)
	switch {
	case led && solo:
		return types.LeadershipFabricated
	case led:
		return types.LeadershipTrue
	default:
		return types.LeadershipNone
	}
}

// detectTeamExperience checks individual terms before team terms.
func detectTeamExperience(v *vocabulary.Vocabulary, joined string) (string, bool) {
	if containsAny(joined, v.IndividualTerms) {
		return types.TeamIndividualContributor, true
	}
	if containsAny(joined, v.TeamTerms) {
		return types.TeamPlayer, true
	}
	return "", false
}

// extractKeywords returns the keywords found in list order.
func extractKeywords(keywords []string, text string) []string {
	return containedTerms(keywords, text)
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func containedTerms(terms []string, text string) []string {
	var found []string
	for _, t := range terms {
		if strings.Contains(text, t) {
			found = append(found, t)
		}
	}
	return found
}
