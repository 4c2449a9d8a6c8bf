// Package catalog holds every piece of response text the engine can emit:
// question banks keyed by category, feature, design term and focus topic,
// plus the template families for acknowledgements, redirections and
// clarifications. The engine never hardcodes phrasing; it only picks from
// here, which is what keeps replies swappable without touching rule logic.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the full response vocabulary. Any field left empty in a YAML
// overlay keeps its built-in default.
type Catalog struct {
	CategoryQuestions map[string][]string `yaml:"category_questions"`
	FeatureQuestions  map[string][]string `yaml:"feature_questions"`
	DesignQuestions   map[string][]string `yaml:"design_questions"`
	FocusQuestions    map[string][]string `yaml:"focus_questions"`

	StageGuidance map[string]string `yaml:"stage_guidance"`

	MissingInfoQuestions map[string]string `yaml:"missing_info_questions"`
	MissingInfoExamples  map[string]string `yaml:"missing_info_examples"`

	AgreementFeatureTemplates []string `yaml:"agreement_feature_templates"`
	AgreementDesignTemplates  []string `yaml:"agreement_design_templates"`
	AgreementGeneralTemplates []string `yaml:"agreement_general_templates"`
	DeclineSubjectTemplates   []string `yaml:"decline_subject_templates"`
	DeclineGeneralTemplates   []string `yaml:"decline_general_templates"`
	ApologeticTemplates       []string `yaml:"apologetic_templates"`
	AcknowledgingTemplates    []string `yaml:"acknowledging_templates"`
	VagueTemplates            []string `yaml:"vague_templates"`
	ValidationTemplates       []string `yaml:"validation_templates"`
	RedirectionTemplates      []string `yaml:"redirection_templates"`
	CompletionTemplates       []string `yaml:"completion_templates"`
	EncouragementLines        []string `yaml:"encouragement_lines"`

	GenericCategoryTemplates []string `yaml:"generic_category_templates"`
	GenericFeatureTemplates  []string `yaml:"generic_feature_templates"`
	GenericDesignTemplates   []string `yaml:"generic_design_templates"`

	OffTopicLexicon    []string `yaml:"off_topic_lexicon"`
	AppRelevantLexicon []string `yaml:"app_relevant_lexicon"`
}

// CategoryBank returns the question bank for an app category, or nil.
func (c *Catalog) CategoryBank(category string) []string {
	return c.CategoryQuestions[category]
}

// FeatureBank returns the question bank for a feature, or nil.
func (c *Catalog) FeatureBank(feature string) []string {
	return c.FeatureQuestions[feature]
}

// DesignBank returns the question bank for a design term or color, or nil.
func (c *Catalog) DesignBank(term string) []string {
	return c.DesignQuestions[term]
}

// FocusBank returns the question bank for a stage focus topic, or nil.
func (c *Catalog) FocusBank(topic string) []string {
	return c.FocusQuestions[topic]
}

// Guidance returns the per-stage redirection guidance line.
func (c *Catalog) Guidance(stage string) string {
	if g, ok := c.StageGuidance[stage]; ok {
		return g
	}
	return "tell me more about the app you want to build"
}

// Load reads a YAML overlay and merges it over the built-in defaults.
// An empty path returns the defaults untouched.
func Load(path string) (*Catalog, error) {
	cat := Default()
	if path == "" {
		return cat, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog overlay: %w", err)
	}
	var overlay Catalog
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("parse catalog overlay: %w", err)
	}
	cat.merge(&overlay)
	return cat, nil
}

// merge copies every non-empty overlay field over the receiver. Maps merge
// per key so an overlay can add one category without restating the rest.
func (c *Catalog) merge(o *Catalog) {
	mergeBanks(c.CategoryQuestions, o.CategoryQuestions)
	mergeBanks(c.FeatureQuestions, o.FeatureQuestions)
	mergeBanks(c.DesignQuestions, o.DesignQuestions)
	mergeBanks(c.FocusQuestions, o.FocusQuestions)
	mergeStrings(c.StageGuidance, o.StageGuidance)
	mergeStrings(c.MissingInfoQuestions, o.MissingInfoQuestions)
	mergeStrings(c.MissingInfoExamples, o.MissingInfoExamples)

	overwrite(&c.AgreementFeatureTemplates, o.AgreementFeatureTemplates)
	overwrite(&c.AgreementDesignTemplates, o.AgreementDesignTemplates)
	overwrite(&c.AgreementGeneralTemplates, o.AgreementGeneralTemplates)
	overwrite(&c.DeclineSubjectTemplates, o.DeclineSubjectTemplates)
	overwrite(&c.DeclineGeneralTemplates, o.DeclineGeneralTemplates)
	overwrite(&c.ApologeticTemplates, o.ApologeticTemplates)
	overwrite(&c.AcknowledgingTemplates, o.AcknowledgingTemplates)
	overwrite(&c.VagueTemplates, o.VagueTemplates)
	overwrite(&c.ValidationTemplates, o.ValidationTemplates)
	overwrite(&c.RedirectionTemplates, o.RedirectionTemplates)
	overwrite(&c.CompletionTemplates, o.CompletionTemplates)
	overwrite(&c.EncouragementLines, o.EncouragementLines)
	overwrite(&c.GenericCategoryTemplates, o.GenericCategoryTemplates)
	overwrite(&c.GenericFeatureTemplates, o.GenericFeatureTemplates)
	overwrite(&c.GenericDesignTemplates, o.GenericDesignTemplates)
	overwrite(&c.OffTopicLexicon, o.OffTopicLexicon)
	overwrite(&c.AppRelevantLexicon, o.AppRelevantLexicon)
}

func mergeBanks(dst, src map[string][]string) {
	for key, bank := range src {
		if len(bank) > 0 {
			dst[key] = bank
		}
	}
}

func mergeStrings(dst, src map[string]string) {
	for key, value := range src {
		if value != "" {
			dst[key] = value
		}
	}
}

func overwrite(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}
