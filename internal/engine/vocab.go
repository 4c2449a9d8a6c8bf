package engine

import (
	"regexp"

	"appforge-pipeline/internal/models"
)

// Recognition vocabulary for the extractor and scorer. Patterns operate on
// lowercased text. Canonical feature and category names line up with the
// catalog's question bank keys.

var (
	strongYesPattern = regexp.MustCompile(`\b(yes|yeah|yep|definitely|absolutely|exactly|for sure|of course)\b`)
	mildYesPattern   = regexp.MustCompile(`\b(ok|okay|sure|sounds good|fine|alright|why not|i guess so)\b`)
	strongNoPattern  = regexp.MustCompile(`\b(no|nope|nah|definitely not|absolutely not|never)\b`)
	mildNoPattern    = regexp.MustCompile(`\b(not really|i don't think|rather not|maybe not|skip that|not sure about that)\b`)

	referencePattern = regexp.MustCompile(`\b(i (already|just) (said|told you|mentioned)|like i (said|mentioned|told you)|as i (said|mentioned)|i repeat|i'?ll say again|that'?s what i (said|meant))\b|\bagain,`)
	questionPattern  = regexp.MustCompile(`\?|^(what|how|why|when|where|who|can|could|should|would|is|are|do|does)\b`)

	exactVaguePattern  = regexp.MustCompile(`^(idk|dunno|whatever|anything|something|stuff|things|hmm+|um+|uh+|meh)[.!?]*$`)
	vagueFillerPattern = regexp.MustCompile(`\b(idk|dunno|maybe|whatever|not sure|no idea|i guess|kind of|sort of|something like that)\b`)

	frustrationPattern = regexp.MustCompile(`\b(frustrat\w*|annoying|annoyed|this is stupid|not working|you don't understand|forget it|ugh|wtf|useless|keep asking|already told)\b`)

	positiveWordPattern = regexp.MustCompile(`\b(love|great|awesome|amazing|perfect|excellent|nice|cool|fantastic|wonderful|excited|happy)\b`)
	negativeWordPattern = regexp.MustCompile(`\b(hate|bad|terrible|awful|horrible|worst|boring|ugly|wrong|disappointing)\b`)
)

// intentRules map cue phrases to intents, checked in order after the
// agreement short-circuit. First match wins.
var intentRules = []struct {
	intent  models.Intent
	pattern *regexp.Regexp
}{
	{models.IntentClarifying, regexp.MustCompile(`\b(what do you mean|i meant|to clarify|let me explain|in other words|actually i)\b`)},
	{models.IntentDescribingAppType, regexp.MustCompile(`\b(an? \w+ app|app for|app that|app like|platform for|website for|build an?|create an?|make an?|something like (uber|airbnb|instagram|tiktok|amazon|spotify))\b`)},
	{models.IntentDescribingProblem, regexp.MustCompile(`\b(problem|solve|solves|solution|struggle|frustrat\w*|pain point|hard to|difficult to|waste of time)\b`)},
	{models.IntentDescribingAudience, regexp.MustCompile(`\b(for (teens|teenagers|kids|children|students|parents|seniors|professionals|businesses|everyone)|target audience|my users|aimed at|demographic)\b`)},
	{models.IntentDescribingDesign, regexp.MustCompile(`\b(design|look and feel|looks like|color|colors|colour|theme|style|styling|ui|interface|layout|font|minimal|modern|dark mode)\b`)},
	{models.IntentDescribingTechnical, regexp.MustCompile(`\b(database|backend|frontend|api|apis|server|cloud|hosting|integration|integrate|sdk|framework|offline|sync|encryption)\b`)},
	{models.IntentDescribingUserFlow, regexp.MustCompile(`\b(first they|then they|after that|user flow|when they open|sign up flow|onboarding|step by step|navigates? to)\b`)},
	{models.IntentDescribingFeatures, regexp.MustCompile(`\b(feature|features|should be able to|users can|they can|i want it to|needs to have|must have|ability to|function)\b`)},
}

// categoryVocab maps surface phrases to a canonical app category, plus the
// features typical of that category. The feature hints feed the scorer's
// density dimension.
type categoryEntry struct {
	name         string
	pattern      *regexp.Regexp
	featureHints []string
}

var categoryVocab = []categoryEntry{
	{"ecommerce", regexp.MustCompile(`\b(e-?commerce|online store|online shop|shopping|shop|store|marketplace app|sell(ing)? products|buy(ing)? products|retail)\b`),
		[]string{"cart", "checkout", "product", "products", "payment", "wishlist", "order", "orders", "shipping", "inventory"}},
	{"social_media", regexp.MustCompile(`\b(social media|social network|social app|like instagram|like tiktok|like twitter|like facebook|photo sharing|share photos)\b`),
		[]string{"feed", "post", "posts", "follow", "followers", "likes", "comments", "stories", "profile", "share"}},
	{"fitness", regexp.MustCompile(`\b(fitness|workout|gym|exercise|training app|running app|yoga)\b`),
		[]string{"workout", "workouts", "exercises", "reps", "sets", "calories", "progress", "routine", "steps", "goals"}},
	{"habit_tracker", regexp.MustCompile(`\b(habit|habits|daily routine|streak tracker|track.{0,20}habits)\b`),
		[]string{"streak", "streaks", "reminder", "reminders", "daily", "goals", "progress", "calendar", "checklist"}},
	{"food_recipe", regexp.MustCompile(`\b(recipe|recipes|cooking app|meal plan\w*|food app|restaurant app|diet app)\b`),
		[]string{"recipes", "ingredients", "shopping list", "meal", "meals", "nutrition", "calories", "favorites"}},
	{"productivity", regexp.MustCompile(`\b(to-?do|todo|task manager|task app|productivity|note[- ]?taking|notes app|project management)\b`),
		[]string{"tasks", "deadlines", "reminders", "lists", "projects", "tags", "calendar", "notes", "priorities"}},
	{"messaging", regexp.MustCompile(`\b(messag\w+ app|chat app|like whatsapp|like telegram|instant messag\w+)\b`),
		[]string{"messages", "groups", "voice", "video call", "emoji", "encryption", "contacts", "read receipts"}},
	{"education", regexp.MustCompile(`\b(education|learning app|e-?learning|study app|language learning|tutoring|courses? app|like duolingo)\b`),
		[]string{"lessons", "quizzes", "courses", "progress", "flashcards", "certificates", "streak", "exercises"}},
	{"game", regexp.MustCompile(`\b(game|gaming|puzzle app|arcade|multiplayer)\b`),
		[]string{"levels", "score", "leaderboard", "achievements", "multiplayer", "rewards", "coins", "characters"}},
	{"finance", regexp.MustCompile(`\b(finance|budget\w*|expense\w*|money (tracker|manager|app)|banking app|invest\w* app|spending)\b`),
		[]string{"budget", "expenses", "transactions", "savings", "goals", "charts", "accounts", "categories"}},
	{"dating", regexp.MustCompile(`\b(dating|matchmaking|like tinder|like bumble)\b`),
		[]string{"matches", "swipe", "profiles", "chat", "photos", "preferences", "location"}},
	{"travel", regexp.MustCompile(`\b(travel|trip planner|itinerary|vacation app|flight\w* app)\b`),
		[]string{"itinerary", "bookings", "flights", "hotels", "map", "destinations", "budget"}},
	{"music", regexp.MustCompile(`\b(music app|like spotify|playlist\w*|podcast app|audio streaming)\b`),
		[]string{"playlists", "streaming", "artists", "albums", "offline", "recommendations", "lyrics"}},
	{"health", regexp.MustCompile(`\b(health app|medical|meditation|mental health|sleep track\w*|therapy|wellness)\b`),
		[]string{"tracking", "reminders", "sessions", "journal", "mood", "sleep", "appointments"}},
	{"booking", regexp.MustCompile(`\b(booking|appointment\w*|reservation\w*|schedul\w+ app|salon app)\b`),
		[]string{"appointments", "calendar", "availability", "reminders", "cancellations", "providers", "slots"}},
	{"delivery", regexp.MustCompile(`\b(delivery|food delivery|like doordash|like uber eats|courier)\b`),
		[]string{"orders", "tracking", "drivers", "menu", "checkout", "ratings", "tips", "map"}},
	{"real_estate", regexp.MustCompile(`\b(real estate|property app|house hunting|apartment\w* app|like zillow)\b`),
		[]string{"listings", "photos", "map", "filters", "favorites", "agents", "mortgage", "tours"}},
	{"news", regexp.MustCompile(`\b(news app|news reader|news aggregat\w+|headlines app)\b`),
		[]string{"articles", "categories", "bookmarks", "notifications", "sources", "trending", "offline"}},
	{"marketplace", regexp.MustCompile(`\b(marketplace|peer[- ]to[- ]peer|buy and sell|like etsy|like ebay|classifieds)\b`),
		[]string{"listings", "sellers", "buyers", "payments", "ratings", "chat", "categories", "shipping"}},
	{"weather", regexp.MustCompile(`\b(weather app|forecast app)\b`),
		[]string{"forecast", "alerts", "locations", "radar", "widgets", "hourly"}},
}

// featureVocab maps surface phrases to canonical feature names.
var featureVocab = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"authentication", regexp.MustCompile(`\b(log ?in|sign ?(up|in)|authentication|register|account creation|password|oauth|sso)\b`)},
	{"payment", regexp.MustCompile(`\b(payment|payments|checkout|purchase|buy|pay|stripe|paypal|billing|subscription|subscriptions)\b`)},
	{"chat", regexp.MustCompile(`\b(chat|messaging|direct message|dm|dms|talk to each other|send messages)\b`)},
	{"notifications", regexp.MustCompile(`\b(notification|notifications|push|alert|alerts|remind me|reminders?)\b`)},
	{"search", regexp.MustCompile(`\b(search|find|look ?up|browse|filter|filters|sort)\b`)},
	{"profile", regexp.MustCompile(`\b(profile|profiles|bio|avatar|user page)\b`)},
	{"feed", regexp.MustCompile(`\b(feed|timeline|stream of posts|news ?feed)\b`)},
	{"map", regexp.MustCompile(`\b(map|maps|location|gps|nearby|directions)\b`)},
	{"camera", regexp.MustCompile(`\b(camera|photo|photos|picture|pictures|selfie|scan|upload images?)\b`)},
	{"video", regexp.MustCompile(`\b(video|videos|live ?stream\w*|recording)\b`)},
	{"cart", regexp.MustCompile(`\b(cart|basket|add to cart|shopping bag)\b`)},
	{"review", regexp.MustCompile(`\b(review|reviews|rating|ratings|stars|feedback from users)\b`)},
	{"booking", regexp.MustCompile(`\b(book|booking|reserve|reservation|appointment|schedule a)\b`)},
	{"sharing", regexp.MustCompile(`\b(share|sharing|invite|send to friends|social share)\b`)},
	{"favorites", regexp.MustCompile(`\b(favorite|favorites|wishlist|bookmark|bookmarks|save for later|saved items)\b`)},
	{"comments", regexp.MustCompile(`\b(comment|comments|reply|replies|discussion)\b`)},
	{"analytics", regexp.MustCompile(`\b(analytics|statistics|stats|dashboard|insights|charts|graphs|reports)\b`)},
	{"gamification", regexp.MustCompile(`\b(points|badges|achievements|leaderboard|levels|rewards|streaks?)\b`)},
	{"offline", regexp.MustCompile(`\b(offline|without internet|no connection|local storage|works offline)\b`)},
	{"calendar", regexp.MustCompile(`\b(calendar|events|agenda|dates)\b`)},
	{"follow", regexp.MustCompile(`\b(follow|followers|following|friend request|connections)\b`)},
	{"tracking", regexp.MustCompile(`\b(track|tracking|log|logging|monitor|record my|history of)\b`)},
}

var colorPattern = regexp.MustCompile(`\b(red|blue|green|yellow|orange|purple|pink|black|white|gray|grey|teal|navy|gold|silver|cyan|magenta|beige|brown|turquoise|lavender|coral|maroon)\b`)

var hexColorPattern = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`)

var designStylePattern = regexp.MustCompile(`\b(modern|minimal|minimalist|clean|sleek|playful|professional|elegant|bold|colorful|dark|light|flat|retro|vintage|futuristic|cartoonish|glassmorphism|neumorphism|material)\b`)

var platformVocab = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"ios", regexp.MustCompile(`\b(ios|iphone|ipad|apple devices?|app store)\b`)},
	{"android", regexp.MustCompile(`\b(android|google play|play store|samsung|pixel)\b`)},
	{"web", regexp.MustCompile(`\b(web|website|browser|webapp|web app|desktop site)\b`)},
	{"desktop", regexp.MustCompile(`\b(desktop|windows app|mac app|macos|linux app)\b`)},
	{"cross_platform", regexp.MustCompile(`\b(cross[- ]platform|both platforms|all platforms|everywhere|any device)\b`)},
}

var technologyPattern = regexp.MustCompile(`\b(react|react native|flutter|swift|kotlin|firebase|aws|azure|node\.?js|python|django|graphql|rest api|postgres\w*|mysql|mongodb|redis|stripe|twilio|websocket\w*|machine learning|ai|blockchain)\b`)

var numberPattern = regexp.MustCompile(`\b\d+\b`)

// Scorer vocabulary.

var (
	qualifierPattern  = regexp.MustCompile(`\b(because|since|so that|in order to|which means|specifically|especially|particularly|mainly)\b`)
	examplePattern    = regexp.MustCompile(`\b(for example|for instance|like when|such as|e\.g\.|say,|imagine)\b`)
	comparisonPattern = regexp.MustCompile(`\b(like|similar to|unlike|compared to|instead of|rather than|better than)\b`)
	quantityPattern   = regexp.MustCompile(`\b(\d+|few|several|many|most|all|every|each|some)\b`)
	sequencePattern   = regexp.MustCompile(`\b(first|second|third|then|next|after|finally|before|once|when)\b`)

	actionVerbPattern = regexp.MustCompile(`\b(create|add|delete|edit|update|share|post|upload|download|send|receive|search|filter|sort|track|save|browse|swipe|tap|click|view|manage|customize|invite|book|order|rate)\b`)

	integrationPattern = regexp.MustCompile(`\b(api|integration|integrate|third[- ]party|stripe|paypal|google maps|twilio|webhook\w*|sdk|oauth|social login)\b`)
	storagePattern     = regexp.MustCompile(`\b(database|storage|store data|save data|cloud|sync|backup|cache|persist\w*)\b`)
	authDepthPattern   = regexp.MustCompile(`\b(authentication|authorization|login|permissions|roles|two[- ]factor|2fa|encryption|secure|privacy)\b`)
	advancedPattern    = regexp.MustCompile(`\b(machine learning|ai|recommendation\w*|real[- ]?time|websocket\w*|push notification\w*|geolocation|offline mode|analytics pipeline|scalab\w+)\b`)

	specificDesignPattern = regexp.MustCompile(`\b(gradient|rounded corners|card layout|bottom navigation|tab bar|sidebar|hero section|typography|font|spacing|padding|animation\w*|transition\w*|icon\w*|splash screen|onboarding screens?)\b`)

	punctuationRunPattern = regexp.MustCompile(`[!?.,;:]{3,}`)
	letterPattern         = regexp.MustCompile(`[a-zA-Z]`)
	vowelPattern          = regexp.MustCompile(`[aeiouAEIOU]`)
	consonantRunPattern   = regexp.MustCompile(`[bcdfghjklmnpqrstvwxz]{4,}`)

	wordSplitPattern = regexp.MustCompile(`\s+`)
	cleanupPattern   = regexp.MustCompile(`[^\p{L}\p{N}\s'#-]`)
)

// audiencePattern pulls out a short audience phrase for the context.
var audiencePattern = regexp.MustCompile(`\bfor ((?:busy |young |older )?(?:teens|teenagers|kids|children|students|parents|seniors|professionals|businesses|families|travelers|athletes|gamers|developers|everyone|anyone))\b`)
