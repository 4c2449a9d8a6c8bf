package engine

import (
	"strings"

	"appforge-pipeline/internal/models"
)

// Merge folds one parsed message into the accumulated context and returns a
// new context; the input is never mutated. Set fields only grow, and the app
// category is write-once: the first recognized category sticks.
func Merge(ctx *models.ConversationContext, parsed models.ParsedMessage) *models.ConversationContext {
	merged := ctx.Clone()

	if merged.AppCategory == "" && len(parsed.Entities.Categories) > 0 {
		merged.AppCategory = parsed.Entities.Categories[0]
	}

	merged.Features = appendUnique(merged.Features, parsed.Entities.Features)
	merged.DesignPrefs = appendUnique(merged.DesignPrefs, parsed.Entities.Colors)
	merged.DesignPrefs = appendUnique(merged.DesignPrefs, parsed.Entities.DesignStyles)
	merged.Platforms = appendUnique(merged.Platforms, parsed.Entities.Platforms)
	merged.TechStack = appendUnique(merged.TechStack, parsed.Entities.Technologies)

	if !parsed.NeedsClarification() {
		switch parsed.Intent {
		case models.IntentDescribingProblem:
			merged.ProblemStatement = parsed.CleanedText
		case models.IntentDescribingAudience:
			if audience := extractAudience(parsed.CleanedText); audience != "" {
				merged.TargetAudience = audience
			} else {
				merged.TargetAudience = parsed.CleanedText
			}
		}
		if merged.UniqueValue == "" && mentionsUniqueness(parsed.CleanedText) {
			merged.UniqueValue = parsed.CleanedText
		}
	}

	merged.CurrentFocus = parsed.Intent
	return merged
}

// MissingInformation lists the unfilled context slots in priority order.
// Core features count as missing until at least three are known.
func MissingInformation(ctx *models.ConversationContext) []string {
	var missing []string
	if ctx.AppCategory == "" {
		missing = append(missing, models.InfoAppType)
	}
	if len(ctx.Features) < 3 {
		missing = append(missing, models.InfoCoreFeatures)
	}
	if ctx.ProblemStatement == "" {
		missing = append(missing, models.InfoProblemStatement)
	}
	if ctx.TargetAudience == "" {
		missing = append(missing, models.InfoTargetAudience)
	}
	if len(ctx.DesignPrefs) == 0 {
		missing = append(missing, models.InfoDesignPreferences)
	}
	if len(ctx.Platforms) == 0 {
		missing = append(missing, models.InfoPlatform)
	}
	return missing
}

// Completeness computes the structural completion percentage from what the
// context holds, independent of how the conversation got there.
func Completeness(ctx *models.ConversationContext) int {
	score := 0
	if ctx.AppCategory != "" {
		score += 20
	}
	if len(ctx.Features) >= 3 {
		score += 25
	}
	if len(ctx.Features) >= 5 {
		score += 10
	}
	if ctx.ProblemStatement != "" {
		score += 15
	}
	if ctx.TargetAudience != "" {
		score += 10
	}
	if len(ctx.DesignPrefs) > 0 {
		score += 10
	}
	if len(ctx.Platforms) > 0 {
		score += 5
	}
	if ctx.UniqueValue != "" {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

func mentionsUniqueness(cleaned string) bool {
	return strings.Contains(cleaned, "unique") ||
		strings.Contains(cleaned, "stand out") ||
		strings.Contains(cleaned, "different from") ||
		strings.Contains(cleaned, "unlike")
}

func extractAudience(cleaned string) string {
	match := audiencePattern.FindStringSubmatch(cleaned)
	if len(match) > 1 {
		return match[1]
	}
	return ""
}

func appendUnique(dst []string, src []string) []string {
	for _, item := range src {
		found := false
		for _, existing := range dst {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, item)
		}
	}
	return dst
}
