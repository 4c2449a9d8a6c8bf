package engine

import (
	"strings"

	"appforge-pipeline/internal/catalog"
	"appforge-pipeline/internal/models"
)

// stageRequirements define each stage's completion band and questioning
// focus. Bands deliberately overlap so a conversation never thrashes at a
// boundary; lookup takes the first band containing the percentage.
var stageRequirements = []models.StageRequirement{
	{
		Stage:         models.StageInitial,
		MinPercentage: 0,
		MaxPercentage: 15,
		RequiredInfo:  []string{},
		PrimaryFocus:  models.InfoAppType,
	},
	{
		Stage:          models.StageAppTypeDiscovery,
		MinPercentage:  10,
		MaxPercentage:  30,
		RequiredInfo:   []string{models.InfoAppType},
		PrimaryFocus:   models.InfoAppType,
		SecondaryFocus: []string{models.InfoCoreFeatures},
	},
	{
		Stage:          models.StageFeatureGathering,
		MinPercentage:  25,
		MaxPercentage:  55,
		RequiredInfo:   []string{models.InfoAppType, models.InfoCoreFeatures},
		PrimaryFocus:   models.InfoCoreFeatures,
		SecondaryFocus: []string{models.InfoProblemStatement, models.InfoTargetAudience},
	},
	{
		Stage:          models.StageDesignExploration,
		MinPercentage:  50,
		MaxPercentage:  75,
		RequiredInfo:   []string{models.InfoAppType, models.InfoCoreFeatures},
		PrimaryFocus:   models.InfoDesignPreferences,
		SecondaryFocus: []string{models.InfoUserFlow},
	},
	{
		Stage:          models.StageTechnicalDetails,
		MinPercentage:  70,
		MaxPercentage:  90,
		RequiredInfo:   []string{models.InfoAppType, models.InfoCoreFeatures, models.InfoDesignPreferences},
		PrimaryFocus:   models.InfoTechnical,
		SecondaryFocus: []string{"integrations", models.InfoPlatform},
	},
	{
		Stage:          models.StageRefinement,
		MinPercentage:  85,
		MaxPercentage:  99,
		RequiredInfo:   []string{models.InfoAppType, models.InfoCoreFeatures, models.InfoDesignPreferences},
		PrimaryFocus:   "additional_details",
		SecondaryFocus: []string{models.InfoUniqueValue, "monetization"},
	},
	{
		Stage:         models.StageComplete,
		MinPercentage: 100,
		MaxPercentage: 100,
		RequiredInfo:  []string{models.InfoAppType, models.InfoCoreFeatures},
		PrimaryFocus:  "additional_details",
	},
}

// RequirementFor returns the requirement row for a stage.
func RequirementFor(stage models.Stage) models.StageRequirement {
	for _, req := range stageRequirements {
		if req.Stage == stage {
			return req
		}
	}
	return stageRequirements[0]
}

// DeriveStage maps a completion percentage to a stage. When the first
// containing band's required information is still missing, the conversation
// is held one stage back until the gap is filled.
func DeriveStage(percentage int, ctx *models.ConversationContext) models.Stage {
	missing := MissingInformation(ctx)
	for i, req := range stageRequirements {
		if percentage < req.MinPercentage || percentage > req.MaxPercentage {
			continue
		}
		if i > 0 && !infoSatisfied(req.RequiredInfo, missing) {
			return stageRequirements[i-1].Stage
		}
		return req.Stage
	}
	return models.StageComplete
}

func infoSatisfied(required, missing []string) bool {
	for _, info := range required {
		for _, m := range missing {
			if m == info {
				return false
			}
		}
	}
	return true
}

// Blocker descriptions surfaced in state and API responses.
const (
	BlockerNoAppType   = "app type not specified"
	BlockerFewFeatures = "need at least 3 core features"
	BlockerLowQuality  = "last message needs more detail"
)

// Blockers reports what is holding the conversation back right now.
func Blockers(percentage int, ctx *models.ConversationContext, lastScore *models.MessageScore) []string {
	blockers := []string{}
	if ctx.AppCategory == "" && percentage > 15 {
		blockers = append(blockers, BlockerNoAppType)
	}
	if len(ctx.Features) < 3 && percentage > 30 {
		blockers = append(blockers, BlockerFewFeatures)
	}
	if lastScore != nil && lastScore.Quality == models.QualityPoor {
		blockers = append(blockers, BlockerLowQuality)
	}
	return blockers
}

// IsOffTopic flags messages about unrelated subjects. A message is only
// off-topic when it hits the off-topic lexicon and carries no app-relevant
// vocabulary at all, so "a weather app" stays on topic.
func IsOffTopic(text string, cat *catalog.Catalog) bool {
	lower := strings.ToLower(text)
	hit := false
	for _, term := range cat.OffTopicLexicon {
		if strings.Contains(lower, term) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, term := range cat.AppRelevantLexicon {
		if strings.Contains(lower, term) {
			return false
		}
	}
	return true
}
