package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"appforge-pipeline/internal/models"
)

func TestParseAgreementTiers(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name         string
		text         string
		agreement    bool
		disagreement bool
	}{
		{"strong yes", "Yes, definitely!", true, false},
		{"mild yes", "okay sure", true, false},
		{"strong no", "nope, never", false, true},
		{"mild no", "not really", false, true},
		{"strong yes beats mild no", "yes, but not sure about that", true, false},
		{"no cue", "the app tracks habits", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := e.Parse(tt.text)
			assert.Equal(t, tt.agreement, parsed.IsAgreement)
			assert.Equal(t, tt.disagreement, parsed.IsDisagreement)
		})
	}
}

func TestParseShoppingAppMessage(t *testing.T) {
	e := NewExtractor()
	parsed := e.Parse("I want to build a shopping app where users can browse products, add to cart, and checkout")

	assert.Equal(t, models.IntentDescribingAppType, parsed.Intent)
	assert.Contains(t, parsed.Entities.Categories, "ecommerce")
	assert.Contains(t, parsed.Entities.Features, "cart")
	assert.Contains(t, parsed.Entities.Features, "payment")
	assert.Contains(t, parsed.Entities.Features, "search")
	assert.False(t, parsed.IsVague)
	assert.False(t, parsed.NeedsClarification())
	assert.GreaterOrEqual(t, parsed.Confidence, 70)
}

func TestParseVagueMessages(t *testing.T) {
	e := NewExtractor()

	for _, text := range []string{"idk", "something", "idk maybe something", "whatever"} {
		parsed := e.Parse(text)
		assert.True(t, parsed.IsVague, "expected %q to be vague", text)
		assert.True(t, parsed.NeedsClarification())
		assert.Equal(t, 10, parsed.Confidence)
	}

	// Filler words inside a substantial message do not make it vague.
	parsed := e.Parse("maybe the app could let users track workouts and share progress with friends")
	assert.False(t, parsed.IsVague)
}

func TestParseIntents(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		text   string
		intent models.Intent
	}{
		{"yes", models.IntentAgreeing},
		{"no thanks", models.IntentDeclining},
		{"what do you mean by that", models.IntentClarifying},
		{"it solves the problem of forgetting habits", models.IntentDescribingProblem},
		{"it's for students mostly", models.IntentDescribingAudience},
		{"I want a dark theme with modern design", models.IntentDescribingDesign},
		{"it needs a database and offline sync", models.IntentDescribingTechnical},
		{"users can post photos and comment", models.IntentDescribingFeatures},
	}
	for _, tt := range tests {
		parsed := e.Parse(tt.text)
		assert.Equal(t, tt.intent, parsed.Intent, "text: %q", tt.text)
	}
}

func TestParseReferenceDetection(t *testing.T) {
	e := NewExtractor()

	// Repetition language marks the message as pointing back at something
	// already said: clarifying intent, frustrated sentiment.
	for _, text := range []string{
		"as I said, it needs chat",
		"I already told you the app is for runners",
		"again, users log their meals",
		"like I mentioned before",
	} {
		parsed := e.Parse(text)
		assert.True(t, parsed.IsReference, "text: %q", text)
		assert.Equal(t, models.IntentClarifying, parsed.Intent, "text: %q", text)
		assert.Equal(t, models.SentimentFrustrated, parsed.Sentiment, "text: %q", text)
	}

	// Ordinary pronouns are not references.
	for _, text := range []string{
		"I want it to have chat and payments",
		"this should work on android",
		"that sounds good",
	} {
		assert.False(t, e.Parse(text).IsReference, "text: %q", text)
	}
}

func TestParseDesignEntities(t *testing.T) {
	e := NewExtractor()
	parsed := e.Parse("I'd like a minimal look with navy blue and #FF5733 accents")

	assert.Contains(t, parsed.Entities.DesignStyles, "minimal")
	assert.Contains(t, parsed.Entities.Colors, "navy")
	assert.Contains(t, parsed.Entities.Colors, "blue")
	assert.Contains(t, parsed.Entities.Colors, "#ff5733")
}

func TestParsePlatformsAndTech(t *testing.T) {
	e := NewExtractor()
	parsed := e.Parse("it should work on iphone and android, built with react native and firebase")

	assert.Contains(t, parsed.Entities.Platforms, "ios")
	assert.Contains(t, parsed.Entities.Platforms, "android")
	assert.Contains(t, parsed.Entities.Technologies, "firebase")
}

func TestParseSentiment(t *testing.T) {
	e := NewExtractor()

	assert.Equal(t, models.SentimentPositive, e.Parse("I love this, it's perfect").Sentiment)
	assert.Equal(t, models.SentimentNegative, e.Parse("that looks terrible").Sentiment)
	assert.Equal(t, models.SentimentFrustrated, e.Parse("ugh, this is not working at all").Sentiment)
	assert.Equal(t, models.SentimentNeutral, e.Parse("the app shows a list of tasks").Sentiment)
}

func TestParseNeverPanicsOnNoise(t *testing.T) {
	e := NewExtractor()

	for _, text := range []string{"", "   ", "!!!111", "????", "\n\t"} {
		assert.NotPanics(t, func() {
			parsed := e.Parse(text)
			assert.True(t, parsed.NeedsClarification())
		})
	}
}
