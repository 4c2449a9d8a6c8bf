package catalog

// Default returns the built-in catalog. Templates use {placeholder} slots
// that the responder fills in: {category}, {feature}, {design}, {term},
// {reference}, {follow_up}, {question}, {example}, {guidance}, {reason}.
func Default() *Catalog {
	return &Catalog{
		CategoryQuestions: map[string][]string{
			"ecommerce": {
				"What kinds of products will people buy in your store?",
				"Will you sell your own inventory, or host other sellers like a marketplace?",
				"How should customers pay - cards, wallets, or something else?",
				"Do you need order tracking and shipping notifications?",
			},
			"social_media": {
				"What will people share on your platform - photos, text, videos?",
				"Should users follow each other, or connect mutually like friends?",
				"Do you want public profiles, private ones, or both?",
				"How should people discover new content - a feed, search, or recommendations?",
			},
			"fitness": {
				"What kind of workouts should the app support - gym, running, yoga?",
				"Should users be able to log custom exercises and routines?",
				"Do you want progress charts showing improvement over time?",
				"Would you like social features, like sharing workouts with friends?",
			},
			"habit_tracker": {
				"What kinds of habits do you imagine people tracking?",
				"Should habits repeat daily, weekly, or on custom schedules?",
				"Do you want streaks and reminders to keep people motivated?",
				"Should users see statistics about their consistency over time?",
			},
			"food_recipe": {
				"Will users browse recipes, save their own, or both?",
				"Should the app build shopping lists from selected recipes?",
				"Do you want filtering by diet - vegetarian, gluten-free, and so on?",
				"Should users be able to rate and review recipes?",
			},
			"productivity": {
				"What should people organize with it - tasks, notes, projects?",
				"Do you want deadlines and reminders for tasks?",
				"Should tasks be shareable with teammates, or is it personal only?",
				"How should items be organized - lists, boards, tags?",
			},
			"messaging": {
				"Is this one-on-one chat, group chat, or both?",
				"Should messages support photos, voice notes, or files?",
				"Do you need read receipts and typing indicators?",
				"Is end-to-end encryption important for your users?",
			},
			"education": {
				"What subject or skill will people learn with your app?",
				"Should lessons be structured courses, or bite-sized exercises?",
				"Do you want quizzes and progress tracking for learners?",
				"Will there be teachers or mentors in the app, or is it self-guided?",
			},
			"game": {
				"What genre of game are you imagining - puzzle, arcade, strategy?",
				"Is it single-player, multiplayer, or both?",
				"Do you want leaderboards and achievements?",
				"Should players be able to buy items or upgrades?",
			},
			"finance": {
				"Should the app track spending, budgets, investments, or all three?",
				"Do you want automatic import from bank accounts, or manual entry?",
				"Should users set savings goals and see progress toward them?",
				"Do you need charts summarizing where money goes each month?",
			},
			"booking": {
				"What will people book - appointments, tables, rooms, services?",
				"Should providers manage their own availability in the app?",
				"Do you want automatic reminders before a booking?",
				"Should users be able to cancel or reschedule themselves?",
			},
			"marketplace": {
				"What will people buy and sell on your marketplace?",
				"How should buyers and sellers communicate - chat, offers, both?",
				"Do you want ratings so buyers can trust sellers?",
				"Will the app handle payments, or just connect people?",
			},
		},

		FeatureQuestions: map[string][]string{
			"authentication": {
				"Should people sign up with email, phone, or social accounts like Google?",
				"Do you want guest access, or must everyone create an account?",
			},
			"payment": {
				"Which payment methods matter most - cards, PayPal, Apple Pay?",
				"Are these one-time purchases, or subscriptions too?",
			},
			"chat": {
				"Should chat be one-on-one, group, or both?",
				"Do you want media sharing inside chat - photos, voice notes?",
			},
			"notifications": {
				"What should trigger a notification - messages, reminders, updates?",
				"Should users fine-tune which notifications they receive?",
			},
			"search": {
				"What will people search for most often?",
				"Do you want filters and sorting alongside search?",
			},
			"profile": {
				"What should a profile show - photo, bio, activity, stats?",
				"Can users customize how their profile looks?",
			},
			"feed": {
				"Should the feed be chronological, or ranked by relevance?",
				"Can users react to and comment on feed items?",
			},
			"map": {
				"What should appear on the map - places, people, events?",
				"Do you need turn-by-turn directions, or just locations?",
			},
			"camera": {
				"Will people take photos in-app, or upload existing ones?",
				"Do you want filters or editing before posting?",
			},
			"cart": {
				"Should the cart persist across sessions and devices?",
				"Do you want saved-for-later and wishlist options?",
			},
			"review": {
				"Should reviews be star ratings, written text, or both?",
				"Can anyone review, or only verified customers?",
			},
			"booking": {
				"Should bookings confirm instantly, or wait for approval?",
				"Do you want a calendar view of upcoming bookings?",
			},
			"analytics": {
				"What numbers matter most for users to see about themselves?",
				"Should there be weekly or monthly summary reports?",
			},
			"gamification": {
				"What should earn points or badges in your app?",
				"Do you want leaderboards comparing users?",
			},
			"offline": {
				"Which parts of the app must work without internet?",
				"Should changes sync automatically when back online?",
			},
			"sharing": {
				"Where should people share to - inside the app, or out to social media?",
				"What exactly gets shared - links, images, summaries?",
			},
		},

		DesignQuestions: map[string][]string{
			"modern": {
				"Great - modern and clean. Lots of white space, or denser layouts?",
				"For a modern look, do you prefer sharp edges or rounded corners?",
			},
			"minimal": {
				"Minimal it is. Should we hide advanced options behind menus to keep screens sparse?",
				"For a minimal style, one accent color or pure monochrome?",
			},
			"dark": {
				"Dark mode by default, or let users switch between light and dark?",
				"For dark themes, do you want a pure black or a softer dark gray?",
			},
			"playful": {
				"Playful sounds fun - should we add animations and illustrations?",
				"For a playful feel, bold colors everywhere or just accents?",
			},
			"professional": {
				"For a professional look, do you lean corporate blue or neutral gray?",
				"Should the tone of the interface text be formal too?",
			},
			"colorful": {
				"Colorful - nice. A few vibrant accents, or a full rainbow palette?",
				"Should colors carry meaning, like a color per section?",
			},
		},

		FocusQuestions: map[string][]string{
			"app_type": {
				"What kind of app do you want to build?",
				"Tell me about the app you have in mind - what is it for?",
				"If you described your app in one sentence, what would it be?",
			},
			"core_features": {
				"What are the main things people will do in your app?",
				"What three features would your app be useless without?",
				"Walk me through what a user does the first time they open the app.",
			},
			"problem_statement": {
				"What problem does your app solve for people?",
				"What frustrates people today that your app would fix?",
			},
			"target_audience": {
				"Who is this app for - who do you picture using it?",
				"Describe your ideal user: age, habits, what they care about.",
			},
			"design_preferences": {
				"How should the app look and feel - modern, playful, minimal?",
				"Any colors or visual style you already have in mind?",
			},
			"user_flow": {
				"Walk me through a typical session from open to close.",
				"After signing in, what is the first screen a user should see?",
			},
			"technical_requirements": {
				"Do you need accounts and sign-in, or can people use it anonymously?",
				"Should data sync across devices, or live on one phone?",
				"Any services you want to connect - maps, payments, social logins?",
			},
			"integrations": {
				"Should your app connect to any outside services, like Stripe or Google Maps?",
				"Do you want social media integration for sharing or sign-in?",
			},
			"platform": {
				"Should this run on iPhone, Android, the web, or everywhere?",
				"Is mobile-first the priority, or do desktop users matter too?",
			},
			"additional_details": {
				"Is there anything unusual about your app I should know?",
				"Any feature you have seen elsewhere that you want to borrow?",
			},
			"unique_value": {
				"What makes your app different from the ones that already exist?",
				"Why would someone pick your app over the alternatives?",
			},
			"monetization": {
				"How should the app make money - ads, subscriptions, purchases?",
				"Is this free for users, or paid?",
			},
		},

		StageGuidance: map[string]string{
			"initial":            "start by telling me what kind of app you want to build",
			"app_type_discovery": "tell me more about what kind of app this is",
			"feature_gathering":  "focus on the features your app needs",
			"design_exploration": "tell me how you want the app to look and feel",
			"technical_details":  "talk about platforms and technical needs",
			"refinement":         "share any final details about your app",
			"complete":           "review what we have - your app description is complete",
		},

		MissingInfoQuestions: map[string]string{
			InfoAppTypeKey:   "what kind of app you want to build",
			InfoFeaturesKey:  "which features your app needs",
			InfoProblemKey:   "what problem your app solves",
			InfoAudienceKey:  "who will use your app",
			InfoDesignKey:    "how the app should look",
			InfoPlatformKey:  "which devices it should run on",
			InfoUserFlowKey:  "how a user moves through the app",
			InfoTechnicalKey: "what technical needs the app has",
			InfoUniqueKey:    "what makes your app special",
		},
		MissingInfoExamples: map[string]string{
			InfoAppTypeKey:   "For example: 'a fitness app for tracking runs' or 'a marketplace for handmade goods'.",
			InfoFeaturesKey:  "For example: 'users can post photos, follow friends, and get notifications'.",
			InfoProblemKey:   "For example: 'people forget their habits, so the app reminds them daily'.",
			InfoAudienceKey:  "For example: 'busy parents' or 'college students on a budget'.",
			InfoDesignKey:    "For example: 'clean and minimal with a dark theme'.",
			InfoPlatformKey:  "For example: 'iPhone and Android' or 'web only'.",
			InfoUserFlowKey:  "For example: 'open the app, see today's tasks, tap one to complete it'.",
			InfoTechnicalKey: "For example: 'needs sign-in with Google and offline support'.",
			InfoUniqueKey:    "For example: 'unlike other trackers, it pairs you with a buddy'.",
		},

		AgreementFeatureTemplates: []string{
			"Perfect, {feature} is in. {follow_up}",
			"Great, I've added {feature} to your app. {follow_up}",
			"Noted - {feature} it is. {follow_up}",
		},
		AgreementDesignTemplates: []string{
			"Love it, we'll go with {design}. {follow_up}",
			"Great choice - {design} suits this app. {follow_up}",
		},
		AgreementGeneralTemplates: []string{
			"Great! {follow_up}",
			"Sounds good. {follow_up}",
			"Perfect. {follow_up}",
		},
		DeclineSubjectTemplates: []string{
			"No problem, we'll skip {feature}. {follow_up}",
			"Okay, dropping {feature} from the plan. {follow_up}",
		},
		DeclineGeneralTemplates: []string{
			"That's fine, we can leave that out. {follow_up}",
			"Understood, let's set that aside. {follow_up}",
		},
		ApologeticTemplates: []string{
			"Sorry about the confusion. You mentioned {reference} - {follow_up}",
			"My mistake - let's get back on track. About {reference}: {follow_up}",
		},
		AcknowledgingTemplates: []string{
			"Right, about {reference} - {follow_up}",
			"Good point. Coming back to {reference}: {follow_up}",
		},
		VagueTemplates: []string{
			"No worries! Let's start simple: {question}? {example}",
			"That's okay - how about this: {question}? {example}",
			"Let me make it easier. Can you tell me {question}? {example}",
		},
		ValidationTemplates: []string{
			"I couldn't quite read that ({reason}). Could you rephrase it in a full sentence?",
			"Hmm, that didn't come through ({reason}). Try describing it in a few words?",
		},
		RedirectionTemplates: []string{
			"That's interesting, but let's stay focused on your app - {guidance}.",
			"We can chat about that later! For now, {guidance}.",
			"Let's keep building your idea - {guidance}.",
		},
		CompletionTemplates: []string{
			"Fantastic - your {category} app is fully described! We have the features, design, and platforms covered. Ready to start building whenever you are.",
			"That's everything I need! Your {category} app has a complete picture now - features, audience, look and feel, the works. Great job thinking it through.",
		},
		EncouragementLines: []string{
			"This is shaping up really well - keep the details coming.",
			"Great progress! Anything else you want your app to do?",
			"You've covered a lot of ground. What else comes to mind?",
		},

		GenericCategoryTemplates: []string{
			"A {category} app - nice choice! What are the main things users should be able to do?",
			"Got it, a {category} app. What would make yours stand out?",
		},
		GenericFeatureTemplates: []string{
			"Tell me more about how {feature} should work in your app.",
			"Interesting - what should happen when a user uses {feature}?",
		},
		GenericDesignTemplates: []string{
			"Nice, {term} - tell me more about the look you're going for.",
			"{term} sounds good. Should that carry through the whole app?",
		},

		OffTopicLexicon: []string{
			"weather", "sports", "football", "basketball", "movie", "movies",
			"politics", "election", "recipe for", "cook dinner", "stock market",
			"crypto price", "bitcoin price", "joke", "tell me a joke", "song",
			"lyrics", "celebrity", "gossip", "horoscope", "lottery",
		},
		AppRelevantLexicon: []string{
			"app", "build", "feature", "features", "user", "users", "screen",
			"design", "platform", "mobile", "website", "web", "button", "page",
			"login", "track", "tracking", "notification", "profile", "account",
		},
	}
}

// Missing-information keys, mirrored here so the catalog stays a pure data
// package. Values must match the keys the accumulator reports.
const (
	InfoAppTypeKey   = "app_type"
	InfoFeaturesKey  = "core_features"
	InfoProblemKey   = "problem_statement"
	InfoAudienceKey  = "target_audience"
	InfoDesignKey    = "design_preferences"
	InfoPlatformKey  = "platform"
	InfoUserFlowKey  = "user_flow"
	InfoTechnicalKey = "technical_requirements"
	InfoUniqueKey    = "unique_value"
)
