package models

import (
	"time"
)

type SenderRole string

const (
	SenderUser      SenderRole = "user"
	SenderAssistant SenderRole = "assistant"
)

// Message is one entry in the stored conversation history.
type Message struct {
	Content    string     `json:"content"`
	SenderRole SenderRole `json:"sender_role"`
	Timestamp  time.Time  `json:"timestamp"`
}

type Sentiment string

const (
	SentimentPositive   Sentiment = "positive"
	SentimentNeutral    Sentiment = "neutral"
	SentimentNegative   Sentiment = "negative"
	SentimentFrustrated Sentiment = "frustrated"
)

type Intent string

const (
	IntentAgreeing            Intent = "agreeing"
	IntentDeclining           Intent = "declining"
	IntentClarifying          Intent = "clarifying"
	IntentDescribingAppType   Intent = "describing_app_type"
	IntentDescribingFeatures  Intent = "describing_features"
	IntentDescribingDesign    Intent = "describing_design"
	IntentDescribingTechnical Intent = "describing_technical"
	IntentDescribingUserFlow  Intent = "describing_user_flow"
	IntentDescribingProblem   Intent = "describing_problem"
	IntentDescribingAudience  Intent = "describing_target_audience"
	IntentGeneralDescription  Intent = "general_description"
)

// EntityBundle holds every app-domain entity extracted from a single message.
type EntityBundle struct {
	Categories   []string `json:"categories"`
	Features     []string `json:"features"`
	Colors       []string `json:"colors"`
	DesignStyles []string `json:"design_styles"`
	Platforms    []string `json:"platforms"`
	Technologies []string `json:"technologies"`
	Numbers      []int    `json:"numbers"`
}

func (b EntityBundle) HasAny() bool {
	return len(b.Categories)+len(b.Features)+len(b.Colors)+
		len(b.DesignStyles)+len(b.Platforms)+len(b.Technologies) > 0
}

// ParsedMessage is the extractor's full reading of one user message.
type ParsedMessage struct {
	OriginalText   string       `json:"original_text"`
	CleanedText    string       `json:"cleaned_text"`
	Tokens         []string     `json:"tokens"`
	Intent         Intent       `json:"intent"`
	IsQuestion     bool         `json:"is_question"`
	IsAgreement    bool         `json:"is_agreement"`
	IsDisagreement bool         `json:"is_disagreement"`
	IsVague        bool         `json:"is_vague"`
	IsReference    bool         `json:"is_reference"`
	Entities       EntityBundle `json:"entities"`
	Sentiment      Sentiment    `json:"sentiment"`
	Confidence     int          `json:"confidence"`
}

// NeedsClarification reports whether the message is too thin to act on.
func (p ParsedMessage) NeedsClarification() bool {
	return p.IsVague || len(p.Tokens) < 3
}

// ConversationContext is everything learned so far about the app being
// described. Slice fields behave as ordered sets: first mention wins the
// position, duplicates never re-enter.
type ConversationContext struct {
	AppCategory      string   `json:"app_category"`
	Features         []string `json:"features"`
	DesignPrefs      []string `json:"design_prefs"`
	Platforms        []string `json:"platforms"`
	TechStack        []string `json:"tech_stack"`
	ProblemStatement string   `json:"problem_statement"`
	TargetAudience   string   `json:"target_audience"`
	UniqueValue      string   `json:"unique_value"`
	CurrentFocus     Intent   `json:"current_focus"`
}

func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		Features:     []string{},
		DesignPrefs:  []string{},
		Platforms:    []string{},
		TechStack:    []string{},
		CurrentFocus: IntentGeneralDescription,
	}
}

// Clone returns a deep copy safe to mutate independently.
func (c *ConversationContext) Clone() *ConversationContext {
	clone := *c
	clone.Features = append([]string{}, c.Features...)
	clone.DesignPrefs = append([]string{}, c.DesignPrefs...)
	clone.Platforms = append([]string{}, c.Platforms...)
	clone.TechStack = append([]string{}, c.TechStack...)
	return &clone
}

type QualityTier string

const (
	QualityPoor      QualityTier = "poor"
	QualityBasic     QualityTier = "basic"
	QualityGood      QualityTier = "good"
	QualityExcellent QualityTier = "excellent"
)

// ScoreBreakdown carries the per-dimension sub-scores behind a total.
type ScoreBreakdown struct {
	WordCount      int `json:"word_count"`
	DetailLevel    int `json:"detail_level"`
	Specificity    int `json:"specificity"`
	FeatureDensity int `json:"feature_density"`
	TechnicalDepth int `json:"technical_depth"`
	Clarity        int `json:"clarity"`
	Relevance      int `json:"relevance"`
}

type MessageScore struct {
	Breakdown              ScoreBreakdown `json:"breakdown"`
	Total                  int            `json:"total"`
	Quality                QualityTier    `json:"quality"`
	ShouldIncreaseProgress bool           `json:"should_increase_progress"`
	ProgressDelta          int            `json:"progress_delta"`
	Feedback               string         `json:"feedback"`
}

type Stage string

const (
	StageInitial           Stage = "initial"
	StageAppTypeDiscovery  Stage = "app_type_discovery"
	StageFeatureGathering  Stage = "feature_gathering"
	StageDesignExploration Stage = "design_exploration"
	StageTechnicalDetails  Stage = "technical_details"
	StageRefinement        Stage = "refinement"
	StageComplete          Stage = "complete"
)

// StageRequirement describes one stage's completion band and focus topics.
type StageRequirement struct {
	Stage          Stage
	MinPercentage  int
	MaxPercentage  int
	RequiredInfo   []string
	PrimaryFocus   string
	SecondaryFocus []string
}

// Missing-information keys, in descending priority.
const (
	InfoAppType           = "app_type"
	InfoCoreFeatures      = "core_features"
	InfoProblemStatement  = "problem_statement"
	InfoTargetAudience    = "target_audience"
	InfoDesignPreferences = "design_preferences"
	InfoPlatform          = "platform"
	InfoUserFlow          = "user_flow"
	InfoTechnical         = "technical_requirements"
	InfoUniqueValue       = "unique_value"
)

// ConversationState is the engine's progress ledger for one conversation.
type ConversationState struct {
	Stage                Stage    `json:"stage"`
	CompletionPercentage int      `json:"completion_percentage"`
	MessageCount         int      `json:"message_count"`
	QuestionsAsked       []string `json:"questions_asked"`
	TopicsDiscussed      []string `json:"topics_discussed"`
	NeedsClarification   bool     `json:"needs_clarification"`
	Blockers             []string `json:"blockers"`
}

func NewConversationState() *ConversationState {
	return &ConversationState{
		Stage:           StageInitial,
		QuestionsAsked:  []string{},
		TopicsDiscussed: []string{},
		Blockers:        []string{},
	}
}

func (s *ConversationState) Clone() *ConversationState {
	clone := *s
	clone.QuestionsAsked = append([]string{}, s.QuestionsAsked...)
	clone.TopicsDiscussed = append([]string{}, s.TopicsDiscussed...)
	clone.Blockers = append([]string{}, s.Blockers...)
	return &clone
}

func (s *ConversationState) HasAsked(question string) bool {
	for _, asked := range s.QuestionsAsked {
		if asked == question {
			return true
		}
	}
	return false
}

func (s *ConversationState) RecordQuestion(question string) {
	if question == "" || s.HasAsked(question) {
		return
	}
	s.QuestionsAsked = append(s.QuestionsAsked, question)
}

func (s *ConversationState) AddTopic(topic string) {
	for _, t := range s.TopicsDiscussed {
		if t == topic {
			return
		}
	}
	s.TopicsDiscussed = append(s.TopicsDiscussed, topic)
}

// TurnRequest is the HTTP body for posting a user message.
type TurnRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// TurnResponse is what the API returns for one processed turn.
type TurnResponse struct {
	ConversationID       string      `json:"conversation_id"`
	RequestID            string      `json:"request_id"`
	Reply                string      `json:"reply"`
	Rule                 string      `json:"rule"`
	Stage                Stage       `json:"stage"`
	CompletionPercentage int         `json:"completion_percentage"`
	Quality              QualityTier `json:"quality"`
	ProgressDelta        int         `json:"progress_delta"`
	Blockers             []string    `json:"blockers"`
	Timestamp            time.Time   `json:"timestamp"`
	TotalTimeMS          float64     `json:"total_time_ms"`
}

// TurnUpdate is the event published to the conversation's Redis stream.
type TurnUpdate struct {
	Type                 string    `json:"type"`
	ConversationID       string    `json:"conversation_id"`
	RequestID            string    `json:"request_id"`
	Stage                Stage     `json:"stage"`
	CompletionPercentage int       `json:"completion_percentage"`
	Rule                 string    `json:"rule"`
	Reply                string    `json:"reply"`
	Blockers             []string  `json:"blockers"`
	Timestamp            time.Time `json:"timestamp"`
}

// ConversationSnapshot is the persisted form of a conversation.
type ConversationSnapshot struct {
	Context   *ConversationContext `json:"context"`
	State     *ConversationState   `json:"state"`
	UpdatedAt time.Time            `json:"updated_at"`
}
