package engine

import (
	"math/rand"
	"strings"
	"time"

	"appforge-pipeline/internal/catalog"
	"appforge-pipeline/internal/models"
)

// Responder picks the reply for a turn by walking an ordered rule cascade.
// The first rule whose condition holds builds the reply from catalog
// templates; phrasing variety comes from the injected rand source, which
// tests seed for reproducibility.
type Responder struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

func NewResponder(cat *catalog.Catalog, rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Responder{catalog: cat, rng: rng}
}

// Response is one selected reply. Question, when set, is the catalog
// question embedded in the reply; the caller records it so banks never
// repeat within a conversation.
type Response struct {
	Message  string
	Rule     string
	Question string
}

// turnFacts is everything the cascade conditions look at. prevCtx is the
// context before this turn's merge, ctx after; state is already updated
// with this turn's percentage and stage.
type turnFacts struct {
	parsed   models.ParsedMessage
	prevCtx  *models.ConversationContext
	ctx      *models.ConversationContext
	state    *models.ConversationState
	history  []models.Message
	valid    bool
	reason   string
	offTopic bool
}

type responseRule struct {
	name    string
	applies func(in turnFacts) bool
	build   func(r *Responder, in turnFacts) Response
}

// The cascade, highest priority first. Exactly one rule fires per turn;
// the stage fallback always applies.
var responseRules = []responseRule{
	{
		name:    "validation",
		applies: func(in turnFacts) bool { return !in.valid },
		build:   (*Responder).buildValidation,
	},
	{
		name:    "off_topic",
		applies: func(in turnFacts) bool { return in.offTopic },
		build:   (*Responder).buildRedirection,
	},
	{
		name:    "completion",
		applies: func(in turnFacts) bool { return in.state.CompletionPercentage >= 100 },
		build:   (*Responder).buildCompletion,
	},
	{
		name: "agreement",
		applies: func(in turnFacts) bool {
			return in.parsed.Intent == models.IntentAgreeing || in.parsed.Intent == models.IntentDeclining
		},
		build: (*Responder).buildAgreement,
	},
	{
		name:    "reference",
		applies: refersBack,
		build:   (*Responder).buildReference,
	},
	{
		name:    "vague",
		applies: func(in turnFacts) bool { return in.parsed.NeedsClarification() },
		build:   (*Responder).buildVague,
	},
	{
		name: "category",
		applies: func(in turnFacts) bool {
			return in.prevCtx.AppCategory == "" && in.ctx.AppCategory != ""
		},
		build: (*Responder).buildCategory,
	},
	{
		name: "feature",
		applies: func(in turnFacts) bool {
			return len(newItems(in.prevCtx.Features, in.ctx.Features)) > 0
		},
		build: (*Responder).buildFeature,
	},
	{
		name: "design",
		applies: func(in turnFacts) bool {
			return len(newItems(in.prevCtx.DesignPrefs, in.ctx.DesignPrefs)) > 0
		},
		build: (*Responder).buildDesign,
	},
	{
		name:    "stage",
		applies: func(in turnFacts) bool { return true },
		build:   (*Responder).buildStageQuestion,
	},
}

// Respond walks the cascade and builds the first applicable reply.
func (r *Responder) Respond(in turnFacts) Response {
	for _, rule := range responseRules {
		if rule.applies(in) {
			resp := rule.build(r, in)
			if resp.Rule == "" {
				resp.Rule = rule.name
			}
			return resp
		}
	}
	// Unreachable: the stage rule always applies.
	return Response{Message: r.pick(r.catalog.EncouragementLines), Rule: "stage"}
}

func refersBack(in turnFacts) bool {
	return in.parsed.IsReference || in.parsed.Sentiment == models.SentimentFrustrated
}

func (r *Responder) buildValidation(in turnFacts) Response {
	msg := fill(r.pick(r.catalog.ValidationTemplates), "{reason}", in.reason)
	return Response{Message: msg}
}

func (r *Responder) buildRedirection(in turnFacts) Response {
	guidance := r.catalog.Guidance(string(in.state.Stage))
	msg := fill(r.pick(r.catalog.RedirectionTemplates), "{guidance}", guidance)
	return Response{Message: msg}
}

func (r *Responder) buildCompletion(in turnFacts) Response {
	category := humanize(in.ctx.AppCategory)
	if category == "" {
		category = "brand-new"
	}
	msg := fill(r.pick(r.catalog.CompletionTemplates), "{category}", category)
	return Response{Message: msg}
}

func (r *Responder) buildAgreement(in turnFacts) Response {
	kind, term := subjectOf(in.history)
	followUp := r.followUp(in)
	declining := in.parsed.Intent == models.IntentDeclining

	var template string
	switch {
	case declining && term != "":
		template = fill(r.pick(r.catalog.DeclineSubjectTemplates), "{feature}", humanize(term))
	case declining:
		template = r.pick(r.catalog.DeclineGeneralTemplates)
	case kind == "design" && term != "":
		template = fill(r.pick(r.catalog.AgreementDesignTemplates), "{design}", humanize(term))
	case term != "":
		template = fill(r.pick(r.catalog.AgreementFeatureTemplates), "{feature}", humanize(term))
	default:
		template = r.pick(r.catalog.AgreementGeneralTemplates)
	}

	rule := "agreement"
	if declining {
		rule = "disagreement"
	}
	return Response{
		Message:  fill(template, "{follow_up}", followUp),
		Rule:     rule,
		Question: followUp,
	}
}

func (r *Responder) buildReference(in turnFacts) Response {
	reference := "your idea"
	switch {
	case in.ctx.AppCategory != "":
		reference = "your " + humanize(in.ctx.AppCategory) + " app"
	case len(in.ctx.Features) > 0:
		reference = humanize(in.ctx.Features[len(in.ctx.Features)-1])
	}

	bank := r.catalog.AcknowledgingTemplates
	if in.parsed.Sentiment == models.SentimentFrustrated {
		bank = r.catalog.ApologeticTemplates
	}
	followUp := r.followUp(in)
	msg := fill(fill(r.pick(bank), "{reference}", reference), "{follow_up}", followUp)
	return Response{Message: msg, Question: followUp}
}

func (r *Responder) buildVague(in turnFacts) Response {
	missing := MissingInformation(in.ctx)
	key := models.InfoAppType
	if len(missing) > 0 {
		key = missing[0]
	}
	question := r.catalog.MissingInfoQuestions[key]
	example := r.catalog.MissingInfoExamples[key]
	msg := fill(fill(r.pick(r.catalog.VagueTemplates), "{question}", question), "{example}", example)
	return Response{Message: msg}
}

func (r *Responder) buildCategory(in turnFacts) Response {
	category := in.ctx.AppCategory
	if question, ok := r.pickUnasked(r.catalog.CategoryBank(category), in.state); ok {
		return Response{Message: question, Question: question}
	}
	msg := fill(r.pick(r.catalog.GenericCategoryTemplates), "{category}", humanize(category))
	return Response{Message: msg}
}

func (r *Responder) buildFeature(in turnFacts) Response {
	feature := newItems(in.prevCtx.Features, in.ctx.Features)[0]
	if question, ok := r.pickUnasked(r.catalog.FeatureBank(feature), in.state); ok {
		return Response{Message: question, Question: question}
	}
	msg := fill(r.pick(r.catalog.GenericFeatureTemplates), "{feature}", humanize(feature))
	return Response{Message: msg}
}

func (r *Responder) buildDesign(in turnFacts) Response {
	term := newItems(in.prevCtx.DesignPrefs, in.ctx.DesignPrefs)[0]
	if question, ok := r.pickUnasked(r.catalog.DesignBank(term), in.state); ok {
		return Response{Message: question, Question: question}
	}
	msg := fill(r.pick(r.catalog.GenericDesignTemplates), "{term}", humanize(term))
	return Response{Message: msg}
}

func (r *Responder) buildStageQuestion(in turnFacts) Response {
	if question := r.followUp(in); question != "" {
		return Response{Message: question, Question: question}
	}
	return Response{Message: r.pick(r.catalog.EncouragementLines)}
}

// followUp picks the next unasked question: unmet prerequisites first, then
// the stage's primary and secondary focus topics, then any remaining
// missing-information topic. Empty when every bank is exhausted.
func (r *Responder) followUp(in turnFacts) string {
	var topics []string
	missing := MissingInformation(in.ctx)
	for _, key := range missing {
		if key == models.InfoAppType || key == models.InfoCoreFeatures {
			topics = append(topics, key)
		}
	}
	req := RequirementFor(in.state.Stage)
	topics = append(topics, req.PrimaryFocus)
	topics = append(topics, req.SecondaryFocus...)
	topics = append(topics, missing...)

	seen := map[string]bool{}
	for _, topic := range topics {
		if seen[topic] {
			continue
		}
		seen[topic] = true
		if question, ok := r.pickUnasked(r.catalog.FocusBank(topic), in.state); ok {
			return question
		}
	}
	return ""
}

func (r *Responder) pick(bank []string) string {
	if len(bank) == 0 {
		return ""
	}
	return bank[r.rng.Intn(len(bank))]
}

func (r *Responder) pickUnasked(bank []string, state *models.ConversationState) (string, bool) {
	var fresh []string
	for _, question := range bank {
		if !state.HasAsked(question) {
			fresh = append(fresh, question)
		}
	}
	if len(fresh) == 0 {
		return "", false
	}
	return fresh[r.rng.Intn(len(fresh))], true
}

// subjectOf finds what the assistant's last question was about, so a bare
// "yes" can be attributed to a concrete feature or design term.
func subjectOf(history []models.Message) (kind, term string) {
	question := strings.ToLower(lastAssistantMessage(history))
	if question == "" {
		return "", ""
	}
	if match := designStylePattern.FindString(question); match != "" {
		return "design", match
	}
	if match := colorPattern.FindString(question); match != "" {
		return "design", match
	}
	for _, entry := range featureVocab {
		if strings.Contains(question, strings.ReplaceAll(entry.name, "_", " ")) {
			return "feature", entry.name
		}
	}
	return "", ""
}

func newItems(before, after []string) []string {
	var added []string
	for _, item := range after {
		found := false
		for _, existing := range before {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			added = append(added, item)
		}
	}
	return added
}

func fill(template, placeholder, value string) string {
	return strings.ReplaceAll(template, placeholder, value)
}

func humanize(term string) string {
	return strings.ReplaceAll(term, "_", " ")
}
