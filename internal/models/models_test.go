package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{65.5, "1:05"},
		{154, "2:34"},
		{3599, "59:59"},
		{3600, "60:00"},
	}
	for _, c := range cases {
		if got := FormatTimestamp(c.seconds); got != c.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestWatchURL(t *testing.T) {
	url := WatchURL("https://youtube.com/watch?v={video_id}&t={start}s", "abc123", 65)
	if url != "https://youtube.com/watch?v=abc123&t=65s" {
		t.Errorf("Unexpected URL: %s", url)
	}
}

func TestDurationFormatted(t *testing.T) {
	v := VideoMetadata{Duration: 330}
	if got := v.DurationFormatted(); got != "5m 30s" {
		t.Errorf("Expected '5m 30s', got %q", got)
	}
}

func TestAgentResponseJSON(t *testing.T) {
	t.Run("Absent citation serializes as null", func(t *testing.T) {
		resp := AgentResponse{Content: "no match", Success: true}

		data, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if !strings.Contains(string(data), `"video_info":null`) {
			t.Errorf("Expected explicit null video_info, got %s", data)
		}
	})

	t.Run("Flat output contract keys", func(t *testing.T) {
		resp := AgentResponse{
			Content: "answer",
			Success: true,
			VideoInfo: &VideoCitation{
				VideoID: "abc", StartTime: 65, Timestamp: "1:05", Title: "T", URL: "u",
			},
			ClickableExamples: []string{"follow up"},
		}

		data, _ := json.Marshal(resp)
		for _, key := range []string{`"content"`, `"success"`, `"video_info"`, `"clickable_examples"`, `"video_id"`, `"start_time"`, `"timestamp"`} {
			if !strings.Contains(string(data), key) {
				t.Errorf("Missing key %s in %s", key, data)
			}
		}
	})
}

func TestSegmentDecoding(t *testing.T) {
	raw := `{"video_id":"abc123","title":"Test Video","text":"transcript text","start_time":65.5,"end_time":90.0,"relevance":0.85}`

	var segment VideoSegment
	if err := json.Unmarshal([]byte(raw), &segment); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if segment.VideoID != "abc123" || segment.Relevance != 0.85 {
		t.Errorf("Unexpected segment: %+v", segment)
	}
	if segment.Timestamp() != "1:05" {
		t.Errorf("Expected timestamp 1:05, got %s", segment.Timestamp())
	}
}
