// Package analysis reconciles interview transcripts into a revealed-truth
// profile and a list of cross-session contradictions. Matching is literal:
// a regular expression for years of experience and substring tests for
// everything else.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/truthweaver/internal/types"
	"github.com/jonathan/truthweaver/internal/vocabulary"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Analyzer runs the extractor battery over a SessionSet.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	vocab   *vocabulary.Vocabulary
	yearsRe *regexp.Regexp
}

// Options tunes a single analysis call.
type Options struct {
	// WithEvidence attaches per-session matches to the result.
	WithEvidence bool
}

// New creates an Analyzer. A nil vocabulary selects the embedded defaults;
// any other vocabulary is copied and normalized first.
func New(vocab *vocabulary.Vocabulary) (*Analyzer, error) {
	if vocab == nil {
		v, err := vocabulary.Default()
		if err != nil {
			return nil, err
		}
		vocab = v
	} else {
		vocab = vocab.Clone()
		vocab.Normalize()
		if err := vocab.Validate(); err != nil {
			return nil, err
		}
	}

	re, err := vocab.YearsRegexp()
	if err != nil {
		return nil, err
	}

	return &Analyzer{vocab: vocab, yearsRe: re}, nil
}

// Analyze builds the result for one subject.
func (a *Analyzer) Analyze(shadowID string, sessions types.SessionSet) (*types.AnalysisResult, error) {
	return a.AnalyzeWithOptions(shadowID, sessions, Options{})
}

// AnalyzeWithOptions builds the result for one subject. Either every extractor
// runs over every session or the call fails with an InputError.
func (a *Analyzer) AnalyzeWithOptions(shadowID string, sessions types.SessionSet, opts Options) (*types.AnalysisResult, error) {
	if strings.TrimSpace(shadowID) == "" {
		return nil, &InputError{Field: "shadow_id", Message: "is required"}
	}
	if len(sessions) == 0 {
		return nil, &InputError{Field: "sessions", Message: "at least one session is required"}
	}
	if err := sessions.Validate(); err != nil {
		return nil, &InputError{Field: "sessions", Message: "rejected", Cause: err}
	}

	lower := cases.Lower(language.Und)
	lowered := make([]string, len(sessions))
	for i, s := range sessions {
		lowered[i] = lower.String(s.Text)
	}
	joined := lower.String(strings.Join(sessions.Texts(), " "))

	var (
		years    []string
		primary  string
		mastery  string
		keywords = make(map[string]struct{})
	)
	for _, text := range lowered {
		years = append(years, extractYears(a.yearsRe, text)...)

		if primary == "" {
			if langs := extractLanguages(a.vocab.Languages, text); len(langs) > 0 {
				primary = langs[0]
			}
		}
		if mastery == "" {
			if tag, ok := extractSkillLevel(a.vocab.SkillLevels, text); ok {
				mastery = tag
			}
		}
		for _, kw := range extractKeywords(a.vocab.Keywords, text) {
			keywords[kw] = struct{}{}
		}
	}

	if primary == "" {
		primary = types.LanguageUnknown
	}
	team, _ := detectTeamExperience(a.vocab, joined)

	result := &types.AnalysisResult{
		ShadowID: shadowID,
		RevealedTruth: types.RevealedTruth{
			ProgrammingExperience: summarizeExperience(years),
			ProgrammingLanguage:   primary,
			SkillMastery:          mastery,
			LeadershipClaims:      detectLeadership(a.vocab, joined),
			TeamExperience:        team,
			Skills:                sortedKeys(keywords),
		},
		DeceptionPatterns: []types.DeceptionPattern{},
	}

	if distinct := distinctClaims(years); len(distinct) > 1 {
		result.DeceptionPatterns = append(result.DeceptionPatterns, types.DeceptionPattern{
			LieType:             types.LieTypeExperienceInflation,
			ContradictoryClaims: distinct,
		})
	}

	if opts.WithEvidence {
		result.Evidence = collectEvidence(a.vocab, sessions, lowered)
	}

	return result, nil
}

// Vocabulary returns a copy of the terms this analyzer matches.
func (a *Analyzer) Vocabulary() *vocabulary.Vocabulary {
	return a.vocab.Clone()
}

// summarizeExperience reports "N years" when every claim has the same value
// and "min-max years" otherwise, taken over the full multiset of claims.
func summarizeExperience(claims []string) string {
	if len(claims) == 0 {
		return ""
	}

	lo := claimValue(claims[0])
	hi := lo
	for _, c := range claims[1:] {
		v := claimValue(c)
		if compareValues(v, lo) < 0 {
			lo = v
		}
		if compareValues(v, hi) > 0 {
			hi = v
		}
	}

	if lo == hi {
		return lo + " years"
	}
	return lo + "-" + hi + " years"
}

// distinctClaims returns the unique literal claims ordered by value, then text.
func distinctClaims(claims []string) []string {
	seen := make(map[string]struct{}, len(claims))
	var out []string
	for _, c := range claims {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		if cmp := compareValues(claimValue(out[i]), claimValue(out[j])); cmp != 0 {
			return cmp < 0
		}
		return out[i] < out[j]
	})
	return out
}

// claimValue extracts the digit run of a claim without leading zeros.
func claimValue(claim string) string {
	v := strings.TrimLeft(strings.TrimSuffix(claim, " years"), "0")
	if v == "" {
		return "0"
	}
	return v
}

// compareValues orders digit strings numerically without overflow.
func compareValues(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// collectEvidence attributes phrase matches to the sessions that contain them.
// A phrase that only appears across a session boundary in the joined text has
// no per-session evidence.
func collectEvidence(v *vocabulary.Vocabulary, sessions types.SessionSet, lowered []string) []types.Evidence {
	var evidence []types.Evidence
	add := func(sessionID, category string, terms []string, text string) {
		for _, term := range containedTerms(terms, text) {
			evidence = append(evidence, types.Evidence{SessionID: sessionID, Category: category, Term: term})
		}
	}

	for i, s := range sessions {
		text := lowered[i]
		add(s.ID, types.EvidenceLeadership, v.LeadershipPhrases, text)
		add(s.ID, types.EvidenceSolo, v.SoloPhrases, text)
		add(s.ID, types.EvidenceIndividual, v.IndividualTerms, text)
		add(s.ID, types.EvidenceTeam, v.TeamTerms, text)
		for _, level := range v.SkillLevels {
			add(s.ID, types.EvidenceSkillLevel, level.Terms, text)
		}
	}
	return evidence
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
