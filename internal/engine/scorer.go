package engine

import (
	"regexp"
	"strings"

	"appforge-pipeline/internal/models"
)

// Scorer grades message quality across seven dimensions and converts the
// total into a progress delta. Stateless; shared across conversations.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

const (
	maxProgressDelta   = 15
	progressThreshold  = 15
	excellentThreshold = 40
	goodThreshold      = 25
	basicThreshold     = 10
)

// Score grades one parsed message against the accumulated context and the
// recent history. History is ordered oldest first.
func (s *Scorer) Score(parsed models.ParsedMessage, ctx *models.ConversationContext, history []models.Message) models.MessageScore {
	breakdown := models.ScoreBreakdown{
		WordCount:      scoreWordCount(len(parsed.Tokens)),
		DetailLevel:    scoreDetailLevel(parsed.CleanedText),
		Specificity:    scoreSpecificity(parsed.Entities),
		FeatureDensity: scoreFeatureDensity(parsed.CleanedText, ctx),
		TechnicalDepth: scoreTechnicalDepth(parsed.CleanedText),
		Clarity:        scoreClarity(parsed),
		Relevance:      scoreRelevance(parsed, ctx, history),
	}

	total := breakdown.WordCount + breakdown.DetailLevel + breakdown.Specificity +
		breakdown.FeatureDensity + breakdown.TechnicalDepth + breakdown.Clarity +
		breakdown.Relevance
	if total < 0 {
		total = 0
	}

	repeat := isVerbatimRepeat(parsed, history)
	score := models.MessageScore{
		Breakdown: breakdown,
		Total:     total,
		Quality:   qualityTier(total),
		Feedback:  assembleFeedback(breakdown, parsed, repeat),
	}
	if total >= progressThreshold && !parsed.NeedsClarification() && !repeat {
		score.ShouldIncreaseProgress = true
		score.ProgressDelta = total
		if score.ProgressDelta > maxProgressDelta {
			score.ProgressDelta = maxProgressDelta
		}
	}
	return score
}

// assembleFeedback concatenates short notes for whichever strength and issue
// flags the breakdown triggered. Purely descriptive; nothing reads it back.
func assembleFeedback(b models.ScoreBreakdown, parsed models.ParsedMessage, repeat bool) string {
	var notes []string
	switch {
	case b.WordCount == 0:
		notes = append(notes, "very short message")
	case b.WordCount >= 7:
		notes = append(notes, "good level of detail")
	}
	if b.Specificity >= 6 {
		notes = append(notes, "concrete specifics")
	}
	if b.TechnicalDepth > 0 {
		notes = append(notes, "useful technical detail")
	}
	if b.Clarity <= 4 {
		notes = append(notes, "hard to read")
	}
	if parsed.NeedsClarification() {
		notes = append(notes, "needs clarification")
	}
	if repeat {
		notes = append(notes, "repeats an earlier message")
	}
	if len(notes) == 0 {
		return "clear and on topic"
	}
	return strings.Join(notes, "; ")
}

// isVerbatimRepeat reports whether the user already sent exactly this
// message. Repeats earn no progress no matter how rich they are.
func isVerbatimRepeat(parsed models.ParsedMessage, history []models.Message) bool {
	current := strings.TrimSpace(parsed.OriginalText)
	for _, msg := range history {
		if msg.SenderRole == models.SenderUser &&
			strings.EqualFold(strings.TrimSpace(msg.Content), current) {
			return true
		}
	}
	return false
}

// Validate is the cheap front gate: it rejects messages no scoring dimension
// could rescue. Returns the failure reason for the clarification reply.
func Validate(text string) (bool, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false, "empty message"
	}
	if !letterPattern.MatchString(trimmed) {
		return false, "no readable words"
	}
	if hasRepeatedRun(trimmed) {
		return false, "repeated characters"
	}
	meaningful := 0
	for _, token := range strings.Fields(strings.ToLower(trimmed)) {
		if isMeaningfulWord(token) {
			meaningful++
		}
	}
	if meaningful < 2 {
		return false, "needs at least a couple of real words"
	}
	return true, ""
}

// hasRepeatedRun reports whether any rune repeats five or more times in a
// row, the signature of keyboard mashing like "aaaaaah". RE2 has no
// backreferences, so the run is counted by hand.
func hasRepeatedRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= 5 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

func isMeaningfulWord(token string) bool {
	if len(token) < 2 {
		return false
	}
	if !vowelPattern.MatchString(token) {
		return false
	}
	return !consonantRunPattern.MatchString(token)
}

func scoreWordCount(n int) int {
	switch {
	case n < 3:
		return 0
	case n < 5:
		return 1
	case n < 10:
		return 3
	case n < 20:
		return 5
	case n < 40:
		return 7
	case n < 60:
		return 9
	default:
		return 10
	}
}

// scoreDetailLevel rewards elaboration markers: causal qualifiers, examples,
// comparisons, quantities and sequences. Two points per family present.
func scoreDetailLevel(cleaned string) int {
	score := 0
	for _, pattern := range []*regexp.Regexp{
		qualifierPattern, examplePattern, comparisonPattern,
		quantityPattern, sequencePattern,
	} {
		if pattern.MatchString(cleaned) {
			score += 2
		}
	}
	if score > 10 {
		score = 10
	}
	return score
}

func scoreSpecificity(entities models.EntityBundle) int {
	score := len(entities.Categories)*3 +
		len(entities.Features)*2 +
		len(entities.Platforms)*2 +
		len(entities.Technologies)*2 +
		len(entities.Colors) +
		len(entities.DesignStyles) +
		len(entities.Numbers)
	if score > 15 {
		score = 15
	}
	return score
}

// scoreFeatureDensity rewards talk that is dense in features typical of the
// app's known category, plus concrete action verbs.
func scoreFeatureDensity(cleaned string, ctx *models.ConversationContext) int {
	categoryHits := 0
	if ctx != nil && ctx.AppCategory != "" {
		for _, entry := range categoryVocab {
			if entry.name != ctx.AppCategory {
				continue
			}
			for _, hint := range entry.featureHints {
				if strings.Contains(cleaned, hint) {
					categoryHits++
				}
			}
			break
		}
	}
	categoryScore := categoryHits * 2
	if categoryScore > 10 {
		categoryScore = 10
	}

	verbScore := len(actionVerbPattern.FindAllString(cleaned, -1))
	if verbScore > 5 {
		verbScore = 5
	}

	score := categoryScore + verbScore
	if score > 12 {
		score = 12
	}
	return score
}

func scoreTechnicalDepth(cleaned string) int {
	score := cappedMatches(cleaned, integrationPattern, 2, 8) +
		cappedMatches(cleaned, storagePattern, 2, 6) +
		cappedMatches(cleaned, authDepthPattern, 2, 4) +
		cappedMatches(cleaned, advancedPattern, 2, 4)
	if score > 15 {
		score = 15
	}
	return score
}

func cappedMatches(cleaned string, pattern *regexp.Regexp, perMatch, limit int) int {
	score := len(pattern.FindAllString(cleaned, -1)) * perMatch
	if score > limit {
		score = limit
	}
	return score
}

// scoreClarity starts everyone at 10 and subtracts for noise. Gibberish
// (no vowels, long consonant runs, repeated characters, punctuation spam)
// drives it to zero; well-formed sentences earn small bonuses.
func scoreClarity(parsed models.ParsedMessage) int {
	score := 10
	lower := strings.ToLower(parsed.OriginalText)

	score -= 2 * len(vagueFillerPattern.FindAllString(lower, -1))

	if !letterPattern.MatchString(parsed.OriginalText) {
		score -= 10
	} else if !vowelPattern.MatchString(parsed.OriginalText) {
		score -= 8
	}
	for _, token := range parsed.Tokens {
		if consonantRunPattern.MatchString(token) {
			score -= 8
			break
		}
	}
	if hasRepeatedRun(lower) {
		score -= 10
	}
	score -= 2 * len(punctuationRunPattern.FindAllString(parsed.OriginalText, -1))

	trimmed := strings.TrimSpace(parsed.OriginalText)
	if trimmed != "" {
		first := rune(trimmed[0])
		if first >= 'A' && first <= 'Z' {
			score++
		}
		last := trimmed[len(trimmed)-1]
		if last == '.' || last == '!' || last == '?' {
			score++
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 12 {
		score = 12
	}
	return score
}

// scoreRelevance checks whether the reply engages with what was just asked
// and what the conversation is about. Repeating an earlier message verbatim
// zeroes the dimension.
func scoreRelevance(parsed models.ParsedMessage, ctx *models.ConversationContext, history []models.Message) int {
	score := 0
	cleaned := parsed.CleanedText

	if question := lastAssistantMessage(history); question != "" {
		if answersQuestion(strings.ToLower(question), parsed) {
			score += 5
		}
	}
	if ctx != nil && ctx.AppCategory != "" &&
		strings.Contains(cleaned, strings.ReplaceAll(ctx.AppCategory, "_", " ")) {
		score += 3
	}
	if ctx != nil {
		for _, feature := range ctx.Features {
			if strings.Contains(cleaned, feature) {
				score += 2
				break
			}
		}
	}

	if isVerbatimRepeat(parsed, history) {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score
}

// answersQuestion matches the assistant's question topic against the kind of
// content the user came back with.
func answersQuestion(question string, parsed models.ParsedMessage) bool {
	switch {
	case strings.Contains(question, "feature") || strings.Contains(question, "able to do"):
		return len(parsed.Entities.Features) > 0 || actionVerbPattern.MatchString(parsed.CleanedText)
	case strings.Contains(question, "look") || strings.Contains(question, "design") || strings.Contains(question, "color"):
		return len(parsed.Entities.Colors) > 0 || len(parsed.Entities.DesignStyles) > 0
	case strings.Contains(question, "who") || strings.Contains(question, "audience") || strings.Contains(question, "users"):
		return parsed.Intent == models.IntentDescribingAudience || strings.Contains(parsed.CleanedText, "for ")
	case strings.Contains(question, "problem") || strings.Contains(question, "solve"):
		return parsed.Intent == models.IntentDescribingProblem
	case strings.Contains(question, "kind of app") || strings.Contains(question, "what is it for"):
		return len(parsed.Entities.Categories) > 0 || parsed.Intent == models.IntentDescribingAppType
	case strings.Contains(question, "platform") || strings.Contains(question, "devices"):
		return len(parsed.Entities.Platforms) > 0
	default:
		return false
	}
}

func lastAssistantMessage(history []models.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].SenderRole == models.SenderAssistant {
			return history[i].Content
		}
	}
	return ""
}

func qualityTier(total int) models.QualityTier {
	switch {
	case total >= excellentThreshold:
		return models.QualityExcellent
	case total >= goodThreshold:
		return models.QualityGood
	case total >= basicThreshold:
		return models.QualityBasic
	default:
		return models.QualityPoor
	}
}
