// Package engine implements the deterministic conversation engine: entity
// extraction, context accumulation, message scoring, stage derivation and
// rule-based response selection. The engine is pure - it performs no I/O and
// never mutates its inputs - so callers own persistence and serialization.
package engine

import (
	"math/rand"

	"appforge-pipeline/internal/catalog"
	"appforge-pipeline/internal/models"
	"appforge-pipeline/internal/pkg/logger"
)

type Engine struct {
	extractor *Extractor
	scorer    *Scorer
	responder *Responder
	catalog   *catalog.Catalog
	logger    *logger.Logger
}

// New builds an engine around a catalog. rng seeds response phrasing; pass
// nil for time-seeded behavior, or a fixed seed for reproducible replies.
// log may be nil.
func New(cat *catalog.Catalog, rng *rand.Rand, log *logger.Logger) *Engine {
	return &Engine{
		extractor: NewExtractor(),
		scorer:    NewScorer(),
		responder: NewResponder(cat, rng),
		catalog:   cat,
		logger:    log,
	}
}

// TurnInput is one user turn plus the conversation's accumulated context,
// state and recent history (oldest first).
type TurnInput struct {
	Text    string
	Context *models.ConversationContext
	State   *models.ConversationState
	History []models.Message
}

// TurnResult carries the updated context and state alongside the selected
// reply. Inputs are never mutated; callers persist the returned values.
type TurnResult struct {
	Context *models.ConversationContext
	State   *models.ConversationState
	Reply   string
	Rule    string
	Parsed  models.ParsedMessage
	Score   models.MessageScore
}

// ProcessTurn runs the full pipeline for one message: parse, merge, score,
// advance, respond. It never fails; unusable input degrades into a
// clarification reply with zero progress.
func (e *Engine) ProcessTurn(in TurnInput) TurnResult {
	ctx := in.Context
	if ctx == nil {
		ctx = models.NewConversationContext()
	}
	state := in.State
	if state == nil {
		state = models.NewConversationState()
	}

	parsed := e.extractor.Parse(in.Text)
	valid, reason := Validate(in.Text)
	offTopic := IsOffTopic(in.Text, e.catalog)

	// Invalid and off-topic turns never move the needle: no context merge,
	// no progress, not even through structural completeness.
	merged := ctx.Clone()
	if valid && !offTopic {
		merged = Merge(ctx, parsed)
	}
	score := e.scorer.Score(parsed, merged, in.History)

	percentage := state.CompletionPercentage
	if valid && !offTopic {
		percentage += score.ProgressDelta
		if structural := Completeness(merged); structural > percentage {
			percentage = structural
		}
		if percentage < state.CompletionPercentage {
			percentage = state.CompletionPercentage
		}
		if percentage > 100 {
			percentage = 100
		}
	} else {
		score.ShouldIncreaseProgress = false
		score.ProgressDelta = 0
	}

	next := state.Clone()
	next.CompletionPercentage = percentage
	next.Stage = DeriveStage(percentage, merged)
	next.MessageCount++
	next.NeedsClarification = parsed.NeedsClarification() || score.Quality == models.QualityPoor
	next.Blockers = Blockers(percentage, merged, &score)
	recordTopics(next, merged)

	resp := e.responder.Respond(turnFacts{
		parsed:   parsed,
		prevCtx:  ctx,
		ctx:      merged,
		state:    next,
		history:  in.History,
		valid:    valid,
		reason:   reason,
		offTopic: offTopic,
	})
	next.RecordQuestion(resp.Question)

	e.logger.Debug("turn processed",
		"intent", string(parsed.Intent),
		"quality", string(score.Quality),
		"rule", resp.Rule,
		"stage", string(next.Stage),
		"completion_pct", next.CompletionPercentage,
	)

	return TurnResult{
		Context: merged,
		State:   next,
		Reply:   resp.Message,
		Rule:    resp.Rule,
		Parsed:  parsed,
		Score:   score,
	}
}

func recordTopics(state *models.ConversationState, ctx *models.ConversationContext) {
	if ctx.AppCategory != "" {
		state.AddTopic(models.InfoAppType)
	}
	if len(ctx.Features) > 0 {
		state.AddTopic(models.InfoCoreFeatures)
	}
	if len(ctx.DesignPrefs) > 0 {
		state.AddTopic(models.InfoDesignPreferences)
	}
	if ctx.ProblemStatement != "" {
		state.AddTopic(models.InfoProblemStatement)
	}
	if ctx.TargetAudience != "" {
		state.AddTopic(models.InfoTargetAudience)
	}
	if len(ctx.Platforms) > 0 {
		state.AddTopic(models.InfoPlatform)
	}
	if len(ctx.TechStack) > 0 {
		state.AddTopic(models.InfoTechnical)
	}
}
