package engine

import (
	"strconv"
	"strings"

	"appforge-pipeline/internal/models"
)

// Extractor turns raw user text into a ParsedMessage: intent, flags,
// entities, sentiment and a confidence estimate. It is stateless and
// deterministic, so a single instance is shared across conversations.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Parse(text string) models.ParsedMessage {
	lower := strings.ToLower(strings.TrimSpace(text))
	cleaned := strings.TrimSpace(wordSplitPattern.ReplaceAllString(cleanupPattern.ReplaceAllString(lower, " "), " "))

	var tokens []string
	if cleaned != "" {
		tokens = strings.Fields(cleaned)
	}

	parsed := models.ParsedMessage{
		OriginalText: text,
		CleanedText:  cleaned,
		Tokens:       tokens,
		IsQuestion:   questionPattern.MatchString(lower),
		IsReference:  referencePattern.MatchString(lower),
		Entities:     e.extractEntities(lower),
	}

	parsed.IsAgreement, parsed.IsDisagreement = detectAgreement(lower)
	parsed.IsVague = detectVagueness(lower, tokens)
	parsed.Intent = detectIntent(lower, parsed)
	parsed.Sentiment = detectSentiment(lower, parsed.IsReference)
	parsed.Confidence = estimateConfidence(tokens, parsed)
	return parsed
}

// detectAgreement resolves yes/no cues. Strong cues outrank mild ones, and
// when both polarities match at the same strength, agreement wins.
func detectAgreement(lower string) (agreement, disagreement bool) {
	strongYes := strongYesPattern.MatchString(lower)
	strongNo := strongNoPattern.MatchString(lower)
	if strongYes {
		return true, false
	}
	if strongNo {
		return false, true
	}
	if mildYesPattern.MatchString(lower) {
		return true, false
	}
	if mildNoPattern.MatchString(lower) {
		return false, true
	}
	return false, false
}

func detectVagueness(lower string, tokens []string) bool {
	if exactVaguePattern.MatchString(lower) {
		return true
	}
	return len(tokens) <= 4 && vagueFillerPattern.MatchString(lower)
}

func detectIntent(lower string, parsed models.ParsedMessage) models.Intent {
	if parsed.IsAgreement && len(parsed.Tokens) <= 4 {
		return models.IntentAgreeing
	}
	if parsed.IsDisagreement && len(parsed.Tokens) <= 4 {
		return models.IntentDeclining
	}
	// Repetition language means the user is pointing back at something they
	// already said, not volunteering new information.
	if parsed.IsReference {
		return models.IntentClarifying
	}
	for _, rule := range intentRules {
		if rule.pattern.MatchString(lower) {
			return rule.intent
		}
	}
	if len(parsed.Entities.Categories) > 0 {
		return models.IntentDescribingAppType
	}
	if len(parsed.Entities.Features) > 0 {
		return models.IntentDescribingFeatures
	}
	if len(parsed.Entities.Colors) > 0 || len(parsed.Entities.DesignStyles) > 0 {
		return models.IntentDescribingDesign
	}
	return models.IntentGeneralDescription
}

func (e *Extractor) extractEntities(lower string) models.EntityBundle {
	bundle := models.EntityBundle{}

	for _, entry := range categoryVocab {
		if entry.pattern.MatchString(lower) {
			bundle.Categories = append(bundle.Categories, entry.name)
		}
	}
	for _, entry := range featureVocab {
		if entry.pattern.MatchString(lower) {
			bundle.Features = append(bundle.Features, entry.name)
		}
	}

	bundle.Colors = appendMatches(bundle.Colors, colorPattern.FindAllString(lower, -1))
	bundle.Colors = appendMatches(bundle.Colors, hexColorPattern.FindAllString(lower, -1))
	bundle.DesignStyles = appendMatches(bundle.DesignStyles, designStylePattern.FindAllString(lower, -1))
	bundle.Technologies = appendMatches(bundle.Technologies, technologyPattern.FindAllString(lower, -1))

	for _, entry := range platformVocab {
		if entry.pattern.MatchString(lower) {
			bundle.Platforms = append(bundle.Platforms, entry.name)
		}
	}

	for _, raw := range numberPattern.FindAllString(lower, -1) {
		if n, err := strconv.Atoi(raw); err == nil {
			bundle.Numbers = append(bundle.Numbers, n)
		}
	}
	return bundle
}

// detectSentiment leans on the reference flag: a user repeating themselves
// is treated as frustrated even without explicit frustration words.
func detectSentiment(lower string, isReference bool) models.Sentiment {
	if isReference || frustrationPattern.MatchString(lower) {
		return models.SentimentFrustrated
	}
	positive := positiveWordPattern.MatchString(lower)
	negative := negativeWordPattern.MatchString(lower)
	switch {
	case positive && !negative:
		return models.SentimentPositive
	case negative && !positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// estimateConfidence scores how sure we are about the parse: vague or empty
// messages bottom out at 10, everything else starts at 50 and climbs with
// length and recognized entities, capped at 100.
func estimateConfidence(tokens []string, parsed models.ParsedMessage) int {
	if parsed.IsVague || len(tokens) == 0 {
		return 10
	}
	confidence := 50
	if len(tokens) > 10 {
		confidence += 20
	}
	if len(tokens) > 20 {
		confidence += 10
	}
	if parsed.Entities.HasAny() {
		confidence += 20
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// appendMatches dedupes while preserving first-seen order.
func appendMatches(dst []string, matches []string) []string {
	for _, m := range matches {
		seen := false
		for _, existing := range dst {
			if existing == m {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, m)
		}
	}
	return dst
}
