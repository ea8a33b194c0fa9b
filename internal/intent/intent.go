// Package intent routes raw query text to a pipeline branch. Classification
// is a pure transform over a fixed rule table; ambiguous phrasing falls back
// to search, which degrades gracefully to "no results".
package intent

import (
	"regexp"
	"strings"

	"github.com/clipsight/clipsight/internal/models"
)

// rule pairs a lowercase substring pattern with the intent it signals
type rule struct {
	pattern string
	intent  models.Intent
}

// rules is evaluated in order; first match wins. The list intent is only
// reachable through the explicit catalog entry point, never through text.
var rules = []rule{
	{"recommend", models.IntentRecommend},
	{"suggestion", models.IntentRecommend},
	{"what videos", models.IntentRecommend},
	{"list videos", models.IntentRecommend},
	{"available videos", models.IntentRecommend},
	{"show videos", models.IntentRecommend},
	{"most popular", models.IntentRecommend},
	{"most viewed", models.IntentRecommend},
	{"best video", models.IntentRecommend},
	{"top video", models.IntentRecommend},
	{"latest", models.IntentRecommend},
	{"newest", models.IntentRecommend},
	{"recent", models.IntentRecommend},
	{"featured", models.IntentRecommend},
	{"what should i watch", models.IntentRecommend},
	{"where to start", models.IntentRecommend},
	{"what do you have", models.IntentRecommend},
	{"what can you show", models.IntentRecommend},
	{"what topics", models.IntentRecommend},
	{"what content", models.IntentRecommend},
	{"help", models.IntentRecommend},
}

// stopWords are filtered out of queries before keyword extraction
var stopWords = map[string]struct{}{
	"what": {}, "about": {}, "the": {}, "is": {}, "are": {}, "we": {},
	"in": {}, "an": {}, "a": {}, "and": {}, "or": {}, "to": {}, "of": {},
	"for": {}, "on": {}, "with": {}, "how": {}, "why": {}, "when": {},
	"where": {}, "did": {}, "does": {}, "do": {}, "say": {}, "said": {},
	"tell": {}, "me": {}, "us": {}, "can": {}, "could": {}, "would": {},
	"should": {}, "have": {}, "has": {}, "had": {}, "be": {}, "been": {},
	"being": {}, "was": {}, "were": {}, "will": {}, "think": {},
	"thinks": {}, "thought": {},
}

var mentionRe = regexp.MustCompile(`(?i)^@\S+\s*`)

// Classify tags raw query text with an intent. It is pure and never
// returns IntentList.
func Classify(text string) models.Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, r := range rules {
		if strings.Contains(normalized, r.pattern) {
			return r.intent
		}
	}
	return models.IntentSearch
}

// Clean strips a leading @mention handle and surrounding whitespace
func Clean(text string) string {
	return strings.TrimSpace(mentionRe.ReplaceAllString(strings.TrimSpace(text), ""))
}

// Keywords extracts meaningful terms from a query for follow-up templating
func Keywords(text string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, `.,!?"'`)
		if len(word) < 3 {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}
