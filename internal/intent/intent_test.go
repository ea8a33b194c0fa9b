package intent

import (
	"testing"

	"github.com/clipsight/clipsight/internal/models"
)

func TestClassify(t *testing.T) {
	t.Run("Recommendation markers", func(t *testing.T) {
		queries := []string{
			"help",
			"What videos do you have?",
			"Show me the most popular videos",
			"list videos",
			"what should I watch",
			"where to start",
			"recommend something on markets",
			"latest uploads please",
			"featured content",
			"What topics are covered?",
		}
		for _, q := range queries {
			if got := Classify(q); got != models.IntentRecommend {
				t.Errorf("Classify(%q) = %s, want recommend", q, got)
			}
		}
	})

	t.Run("Everything else is search", func(t *testing.T) {
		queries := []string{
			"What are AI bubble risks?",
			"Tell me about emerging markets",
			"china innovation strategy",
			"",
		}
		for _, q := range queries {
			if got := Classify(q); got != models.IntentSearch {
				t.Errorf("Classify(%q) = %s, want search", q, got)
			}
		}
	})

	t.Run("Case and whitespace insensitive", func(t *testing.T) {
		if got := Classify("  RECOMMEND a video  "); got != models.IntentRecommend {
			t.Errorf("expected recommend, got %s", got)
		}
	})
}

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"@jess What about AI?", "What about AI?"},
		{"@AGENT AI bubble", "AI bubble"},
		{"What about AI?", "What about AI?"},
		{"  padded query  ", "padded query"},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestKeywords(t *testing.T) {
	t.Run("Filters stop words and short words", func(t *testing.T) {
		keywords := Keywords("What did Andy say about AI bubbles?")

		has := func(w string) bool {
			for _, k := range keywords {
				if k == w {
					return true
				}
			}
			return false
		}

		if !has("bubbles") {
			t.Errorf("expected 'bubbles' in keywords, got %v", keywords)
		}
		if has("what") || has("about") || has("say") {
			t.Errorf("stop words leaked into keywords: %v", keywords)
		}
		// "AI" is under the length threshold
		if has("ai") {
			t.Errorf("expected short words filtered, got %v", keywords)
		}
	})

	t.Run("Strips punctuation", func(t *testing.T) {
		keywords := Keywords("inflation, tariffs!")
		if len(keywords) != 2 || keywords[0] != "inflation" || keywords[1] != "tariffs" {
			t.Errorf("unexpected keywords: %v", keywords)
		}
	})

	t.Run("Empty query", func(t *testing.T) {
		if got := Keywords(""); len(got) != 0 {
			t.Errorf("expected no keywords, got %v", got)
		}
	})
}
