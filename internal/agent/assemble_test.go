package agent

import (
	"errors"
	"strings"
	"testing"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/transport"
)

func newAssembler() *Assembler {
	return NewAssembler(&config.SearchConfig{
		MaxResults:  5,
		URLTemplate: "https://youtube.com/watch?v={video_id}&t={start}s",
	})
}

func TestFollowUps(t *testing.T) {
	a := newAssembler()

	t.Run("Capped at five", func(t *testing.T) {
		got := a.followUps("inflation tariffs semiconductors governance volatility innovation manufacturing")
		if len(got) > 5 {
			t.Errorf("Expected at most 5 follow-ups, got %d", len(got))
		}
	})

	t.Run("Deduplicated, insertion order preserved", func(t *testing.T) {
		got := a.followUps("markets bonds strategy")
		seen := make(map[string]struct{})
		for _, s := range got {
			if _, dup := seen[s]; dup {
				t.Errorf("Duplicate follow-up: %q", s)
			}
			seen[s] = struct{}{}
		}
		if len(got) == 0 || !strings.Contains(got[0], "markets") {
			t.Errorf("Expected first follow-up from first keyword, got %v", got)
		}
	})

	t.Run("Defaults when no keywords survive", func(t *testing.T) {
		got := a.followUps("what is it")
		if len(got) == 0 || len(got) > 5 {
			t.Fatalf("Expected default examples, got %v", got)
		}
	})
}

func TestFailureResponse(t *testing.T) {
	a := newAssembler()

	t.Run("Transport kinds get distinct generic messages", func(t *testing.T) {
		messages := make(map[string]struct{})
		for _, kind := range []transport.ErrorKind{
			transport.ConnectionFailed, transport.Timeout, transport.ProtocolError, transport.ToolError,
		} {
			resp := a.FailureResponse(&transport.Error{Kind: kind, Tool: "search", Message: "secret stack detail"})

			if resp.Success || resp.VideoInfo != nil {
				t.Errorf("%s: invariant violated: %+v", kind, resp)
			}
			if strings.Contains(resp.Content, "secret stack detail") {
				t.Errorf("%s: raw message leaked", kind)
			}
			messages[resp.Content] = struct{}{}
		}
		if len(messages) != 4 {
			t.Errorf("Expected 4 distinct messages, got %d", len(messages))
		}
	})

	t.Run("Unknown errors get the fallback message", func(t *testing.T) {
		resp := a.FailureResponse(errors.New("plain error"))
		if resp.Success || resp.Content == "" {
			t.Errorf("Expected generic failure, got %+v", resp)
		}
	})
}

func TestSearchResponseCitation(t *testing.T) {
	a := newAssembler()

	segments := []models.VideoSegment{
		{VideoID: "early", Title: "Early", StartTime: 10, Relevance: 0.9},
		{VideoID: "late", Title: "Late", StartTime: 20, Relevance: 0.9},
		{VideoID: "weak", Title: "Weak", StartTime: 30, Relevance: 0.1},
	}

	resp := a.SearchResponse(models.Query{Text: "anything"}, segments, "answer")

	if resp.VideoInfo.VideoID != "early" {
		t.Errorf("Stable tie-break broken, got %s", resp.VideoInfo.VideoID)
	}
	if resp.VideoInfo.StartTime != 10 || resp.VideoInfo.Timestamp != "0:10" {
		t.Errorf("Unexpected citation timing: %+v", resp.VideoInfo)
	}
}

func TestRecommendationIntros(t *testing.T) {
	a := newAssembler()
	videos := []models.VideoMetadata{{VideoID: "x", Title: "X", ViewCount: 5}}

	cases := []struct {
		ordering Ordering
		want     string
	}{
		{OrderPopular, "most popular"},
		{OrderLatest, "latest"},
		{OrderFeatured, "featured"},
		{OrderDefault, "available"},
	}
	for _, c := range cases {
		resp := a.RecommendationResponse(videos, c.ordering)
		if !strings.Contains(strings.ToLower(resp.Content), c.want) {
			t.Errorf("Ordering %v: expected intro mentioning %q, got %q", c.ordering, c.want, resp.Content)
		}
	}
}
