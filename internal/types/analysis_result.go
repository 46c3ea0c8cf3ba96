// Package types provides type definitions for structured data used throughout truthweaver.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Leadership verdicts.
const (
	LeadershipFabricated = "fabricated"
	LeadershipTrue       = "true"
	LeadershipNone       = "none"
)

// Team experience values.
const (
	TeamIndividualContributor = "individual contributor"
	TeamPlayer                = "team player"
)

// LanguageUnknown is reported when no session names a programming language.
const LanguageUnknown = "unknown"

// LieTypeExperienceInflation tags sessions that disagree about years of experience.
const LieTypeExperienceInflation = "experience_inflation"

// Evidence categories.
const (
	EvidenceLeadership = "leadership"
	EvidenceSolo       = "solo"
	EvidenceIndividual = "individual"
	EvidenceTeam       = "team"
	EvidenceSkillLevel = "skill_level"
)

// AnalysisResult is the reconciled profile for one subject.
type AnalysisResult struct {
	ShadowID          string             `json:"shadow_id"`
	RevealedTruth     RevealedTruth      `json:"revealed_truth"`
	DeceptionPatterns []DeceptionPattern `json:"deception_patterns"`
	Evidence          []Evidence         `json:"evidence,omitempty"`
}

// RevealedTruth holds the single best answer per attribute.
// Empty strings mean no claim was found; use the accessors to tell absence apart.
type RevealedTruth struct {
	ProgrammingExperience string   `json:"programming_experience"`
	ProgrammingLanguage   string   `json:"programming_language"`
	SkillMastery          string   `json:"skill_mastery"`
	LeadershipClaims      string   `json:"leadership_claims"`
	TeamExperience        string   `json:"team_experience"`
	Skills                []string `json:"skills and other keywords"`
}

// Experience returns the experience claim and whether one was found.
func (r RevealedTruth) Experience() (string, bool) {
	return r.ProgrammingExperience, r.ProgrammingExperience != ""
}

// Language returns the primary language and whether one was found.
func (r RevealedTruth) Language() (string, bool) {
	if r.ProgrammingLanguage == "" || r.ProgrammingLanguage == LanguageUnknown {
		return "", false
	}
	return r.ProgrammingLanguage, true
}

// Mastery returns the skill level tag and whether one was found.
func (r RevealedTruth) Mastery() (string, bool) {
	return r.SkillMastery, r.SkillMastery != ""
}

// Team returns the team experience and whether one was found.
func (r RevealedTruth) Team() (string, bool) {
	return r.TeamExperience, r.TeamExperience != ""
}

// DeceptionPattern is an inconsistency detected across sessions.
type DeceptionPattern struct {
	LieType             string   `json:"lie_type"`
	ContradictoryClaims []string `json:"contradictory_claims"`
}

// Evidence records which session contained a matched term.
type Evidence struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
	Term      string `json:"term"`
}
