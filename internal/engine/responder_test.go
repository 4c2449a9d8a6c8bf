package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appforge-pipeline/internal/catalog"
	"appforge-pipeline/internal/models"
)

func newTestResponder(seed int64) *Responder {
	return NewResponder(catalog.Default(), rand.New(rand.NewSource(seed)))
}

func baseFacts() turnFacts {
	return turnFacts{
		parsed:  models.ParsedMessage{Intent: models.IntentGeneralDescription, Tokens: []string{"a", "b", "c"}},
		prevCtx: models.NewConversationContext(),
		ctx:     models.NewConversationContext(),
		state:   models.NewConversationState(),
		valid:   true,
	}
}

func TestRespondValidationRuleWinsFirst(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.valid = false
	in.reason = "repeated characters"
	// Even with a fresh category in play, validity outranks everything.
	in.ctx.AppCategory = "fitness"

	resp := r.Respond(in)
	assert.Equal(t, "validation", resp.Rule)
	assert.Contains(t, resp.Message, "repeated characters")
}

func TestRespondOffTopicRedirects(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.offTopic = true
	in.state.Stage = models.StageFeatureGathering

	resp := r.Respond(in)
	assert.Equal(t, "off_topic", resp.Rule)
	assert.Contains(t, resp.Message, "features")
}

func TestRespondCompletionOverridesEverything(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.state.CompletionPercentage = 100
	in.state.Stage = models.StageComplete
	in.ctx.AppCategory = "habit_tracker"
	// A feature rule would otherwise fire here.
	in.ctx.Features = []string{"streaks"}

	resp := r.Respond(in)
	assert.Equal(t, "completion", resp.Rule)
	assert.Contains(t, resp.Message, "habit tracker")
}

func TestRespondAgreementPicksUpSubject(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.parsed.Intent = models.IntentAgreeing
	in.history = []models.Message{
		{Content: "Do you want chat so users can talk to each other?", SenderRole: models.SenderAssistant},
	}

	resp := r.Respond(in)
	assert.Equal(t, "agreement", resp.Rule)
	assert.Contains(t, resp.Message, "chat")
	assert.NotEmpty(t, resp.Question, "agreement replies carry a follow-up question")
}

func TestRespondDeclineGeneral(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.parsed.Intent = models.IntentDeclining

	resp := r.Respond(in)
	assert.Equal(t, "disagreement", resp.Rule)
	assert.NotEmpty(t, resp.Message)
}

func TestRespondVagueOffersExample(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.parsed.IsVague = true

	resp := r.Respond(in)
	assert.Equal(t, "vague", resp.Rule)
	assert.Contains(t, resp.Message, "what kind of app you want to build")
	assert.Contains(t, resp.Message, "For example")
}

func TestRespondNewCategoryDrawsFromBankWithoutRepeats(t *testing.T) {
	r := newTestResponder(7)
	cat := catalog.Default()
	bank := cat.CategoryBank("ecommerce")
	require.NotEmpty(t, bank)

	in := baseFacts()
	in.ctx.AppCategory = "ecommerce"
	state := models.NewConversationState()
	in.state = state

	asked := map[string]bool{}
	for i := 0; i < len(bank); i++ {
		resp := r.Respond(in)
		require.Equal(t, "category", resp.Rule)
		assert.False(t, asked[resp.Message], "question repeated: %q", resp.Message)
		asked[resp.Message] = true
		state.RecordQuestion(resp.Question)
	}

	// Bank exhausted: the generic template takes over.
	resp := r.Respond(in)
	assert.Equal(t, "category", resp.Rule)
	assert.Contains(t, resp.Message, "ecommerce")
	assert.Empty(t, resp.Question)
}

func TestRespondNewFeatureQuestion(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.prevCtx.AppCategory = "messaging"
	in.ctx.AppCategory = "messaging"
	in.ctx.Features = []string{"notifications"}

	resp := r.Respond(in)
	assert.Equal(t, "feature", resp.Rule)
	assert.Contains(t, strings.ToLower(resp.Message), "notification")
}

func TestRespondStageFallbackNeverRepeats(t *testing.T) {
	r := newTestResponder(3)
	in := baseFacts()
	in.state.Stage = models.StageInitial

	seen := map[string]bool{}
	for i := 0; i < 6; i++ {
		resp := r.Respond(in)
		require.Equal(t, "stage", resp.Rule)
		require.NotEmpty(t, resp.Message)
		if resp.Question != "" {
			assert.False(t, seen[resp.Question], "question repeated: %q", resp.Question)
			seen[resp.Question] = true
			in.state.RecordQuestion(resp.Question)
		}
	}
}

func TestRespondFrustrationApologizes(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.parsed.Sentiment = models.SentimentFrustrated
	in.ctx.AppCategory = "fitness"

	resp := r.Respond(in)
	assert.Equal(t, "reference", resp.Rule)
	assert.Contains(t, resp.Message, "fitness app")
}

func TestRespondReferenceAcknowledgesRepeat(t *testing.T) {
	r := newTestResponder(1)
	in := baseFacts()
	in.parsed.IsReference = true
	in.parsed.Intent = models.IntentClarifying
	in.ctx.AppCategory = "fitness"
	in.ctx.Features = []string{"tracking"}

	resp := r.Respond(in)
	assert.Equal(t, "reference", resp.Rule)
	assert.Contains(t, resp.Message, "fitness app")
}

func TestRespondDeterministicWithSameSeed(t *testing.T) {
	first := newTestResponder(42).Respond(baseFacts())
	second := newTestResponder(42).Respond(baseFacts())
	assert.Equal(t, first, second)
}
