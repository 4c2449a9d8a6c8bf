package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsComplete(t *testing.T) {
	cat := Default()

	assert.NotEmpty(t, cat.CategoryQuestions)
	assert.NotEmpty(t, cat.FeatureQuestions)
	assert.NotEmpty(t, cat.DesignQuestions)
	assert.NotEmpty(t, cat.FocusQuestions)
	assert.NotEmpty(t, cat.VagueTemplates)
	assert.NotEmpty(t, cat.RedirectionTemplates)
	assert.NotEmpty(t, cat.CompletionTemplates)
	assert.NotEmpty(t, cat.OffTopicLexicon)
	assert.NotEmpty(t, cat.AppRelevantLexicon)

	// Every missing-info question has a matching example.
	for key := range cat.MissingInfoQuestions {
		assert.Contains(t, cat.MissingInfoExamples, key)
	}

	// Templates reference the placeholders the responder fills.
	for _, tmpl := range cat.VagueTemplates {
		assert.Contains(t, tmpl, "{question}")
	}
	for _, tmpl := range cat.RedirectionTemplates {
		assert.Contains(t, tmpl, "{guidance}")
	}
	for _, tmpl := range cat.CompletionTemplates {
		assert.Contains(t, tmpl, "{category}")
	}
}

func TestGuidanceFallback(t *testing.T) {
	cat := Default()
	assert.NotEmpty(t, cat.Guidance("feature_gathering"))
	assert.Equal(t, "tell me more about the app you want to build", cat.Guidance("no_such_stage"))
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().CategoryQuestions["fitness"], cat.CategoryQuestions["fitness"])
}

func TestLoadOverlayMergesPerKey(t *testing.T) {
	overlay := `
category_questions:
  fitness:
    - "Custom fitness question?"
encouragement_lines:
  - "Custom encouragement."
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)

	// Overridden key replaced, untouched keys kept.
	assert.Equal(t, []string{"Custom fitness question?"}, cat.CategoryQuestions["fitness"])
	assert.Equal(t, Default().CategoryQuestions["ecommerce"], cat.CategoryQuestions["ecommerce"])
	assert.Equal(t, []string{"Custom encouragement."}, cat.EncouragementLines)
	assert.NotEmpty(t, cat.VagueTemplates)
}

func TestLoadRejectsBadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("category_questions: [not, a, map]"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse catalog overlay"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
