// Package vocabulary holds the match terms used by the transcript analyzer.
// Defaults are embedded at compile time; a YAML or JSON file can replace any
// of the lists without touching the matching logic.
package vocabulary

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// SkillLevel maps a mastery tag to the terms that signal it.
type SkillLevel struct {
	Tag   string   `yaml:"tag" json:"tag" validate:"required"`
	Terms []string `yaml:"terms" json:"terms" validate:"required,min=1,dive,required"`
}

// Vocabulary is the full set of match terms, grouped by category.
// List order is significant for languages and skill levels.
type Vocabulary struct {
	YearsPattern      string       `yaml:"years_pattern" json:"years_pattern" validate:"required"`
	Languages         []string     `yaml:"languages" json:"languages" validate:"required,min=1,dive,required"`
	SkillLevels       []SkillLevel `yaml:"skill_levels" json:"skill_levels" validate:"required,min=1,dive"`
	LeadershipPhrases []string     `yaml:"leadership_phrases" json:"leadership_phrases" validate:"required,min=1,dive,required"`
	SoloPhrases       []string     `yaml:"solo_phrases" json:"solo_phrases" validate:"required,min=1,dive,required"`
	IndividualTerms   []string     `yaml:"individual_terms" json:"individual_terms" validate:"required,min=1,dive,required"`
	TeamTerms         []string     `yaml:"team_terms" json:"team_terms" validate:"required,min=1,dive,required"`
	Keywords          []string     `yaml:"keywords" json:"keywords" validate:"required,min=1,dive,required"`
}

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
	defaultErr   error

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns a copy of the embedded vocabulary.
func Default() (*Vocabulary, error) {
	defaultOnce.Do(func() {
		var v Vocabulary
		if err := yaml.Unmarshal(defaultYAML, &v); err != nil {
			defaultErr = &LoadError{Path: "(embedded)", Message: "failed to decode", Cause: err}
			return
		}
		v.Normalize()
		if err := v.Validate(); err != nil {
			defaultErr = err
			return
		}
		defaultVocab = &v
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultVocab.Clone(), nil
}

// MustDefault returns the embedded vocabulary, panicking if it is broken.
func MustDefault() *Vocabulary {
	v, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load default vocabulary: %v", err))
	}
	return v
}

// Load reads a vocabulary file. Lists present in the file replace the
// defaults; lists left out keep them. An empty path returns the defaults.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return decode(data, path)
}

// Parse decodes vocabulary content the same way Load does.
func Parse(data []byte) (*Vocabulary, error) {
	return decode(data, "(inline)")
}

func decode(data []byte, source string) (*Vocabulary, error) {
	v, err := Default()
	if err != nil {
		return nil, err
	}

	// JSON documents are valid YAML, so one decoder serves both formats.
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, &LoadError{Path: source, Message: "failed to decode", Cause: err}
	}

	v.Normalize()
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks that every list is populated and the years pattern is usable.
func (v *Vocabulary) Validate() error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &InvalidError{
				Field:   strings.TrimPrefix(fe.Namespace(), "Vocabulary."),
				Message: fmt.Sprintf("failed %q check", fe.Tag()),
			}
		}
		return &InvalidError{Message: err.Error()}
	}

	re, err := regexp.Compile(v.YearsPattern)
	if err != nil {
		return &InvalidError{Field: "years_pattern", Message: err.Error()}
	}
	if re.NumSubexp() != 1 {
		return &InvalidError{
			Field:   "years_pattern",
			Message: fmt.Sprintf("must have exactly one capture group, found %d", re.NumSubexp()),
		}
	}

	tags := make(map[string]struct{}, len(v.SkillLevels))
	for _, level := range v.SkillLevels {
		if _, dup := tags[level.Tag]; dup {
			return &InvalidError{Field: "skill_levels", Message: fmt.Sprintf("duplicate tag %q", level.Tag)}
		}
		tags[level.Tag] = struct{}{}
	}

	return nil
}

// YearsRegexp compiles the years pattern.
func (v *Vocabulary) YearsRegexp() (*regexp.Regexp, error) {
	re, err := regexp.Compile(v.YearsPattern)
	if err != nil {
		return nil, &InvalidError{Field: "years_pattern", Message: err.Error()}
	}
	return re, nil
}

// Clone returns a deep copy.
func (v *Vocabulary) Clone() *Vocabulary {
	out := &Vocabulary{
		YearsPattern:      v.YearsPattern,
		Languages:         cloneStrings(v.Languages),
		LeadershipPhrases: cloneStrings(v.LeadershipPhrases),
		SoloPhrases:       cloneStrings(v.SoloPhrases),
		IndividualTerms:   cloneStrings(v.IndividualTerms),
		TeamTerms:         cloneStrings(v.TeamTerms),
		Keywords:          cloneStrings(v.Keywords),
	}
	if v.SkillLevels != nil {
		out.SkillLevels = make([]SkillLevel, len(v.SkillLevels))
		for i, level := range v.SkillLevels {
			out.SkillLevels[i] = SkillLevel{Tag: level.Tag, Terms: cloneStrings(level.Terms)}
		}
	}
	return out
}

// Marshal renders the vocabulary as YAML.
func (v *Vocabulary) Marshal() ([]byte, error) {
	return yaml.Marshal(v)
}

// Normalize trims and lower-cases every term so matching against
// lower-cased transcripts is a plain substring test.
func (v *Vocabulary) Normalize() {
	lower := cases.Lower(language.Und)
	norm := func(terms []string) {
		for i, t := range terms {
			terms[i] = lower.String(strings.TrimSpace(t))
		}
	}

	norm(v.Languages)
	norm(v.LeadershipPhrases)
	norm(v.SoloPhrases)
	norm(v.IndividualTerms)
	norm(v.TeamTerms)
	norm(v.Keywords)
	for i := range v.SkillLevels {
		v.SkillLevels[i].Tag = strings.TrimSpace(v.SkillLevels[i].Tag)
		norm(v.SkillLevels[i].Terms)
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
