package models

import (
	"fmt"
	"strings"
)

// ==================== Query Models ====================

// Query represents a single user question. Immutable once created.
type Query struct {
	Text       string `json:"text"`
	MaxResults int    `json:"max_results,omitempty"`
	Locale     string `json:"locale,omitempty"`
}

// Intent is the classified purpose of a query
type Intent int

const (
	IntentSearch Intent = iota
	IntentRecommend
	IntentList
)

func (i Intent) String() string {
	switch i {
	case IntentRecommend:
		return "recommend"
	case IntentList:
		return "list"
	default:
		return "search"
	}
}

// ==================== Tool Call Models ====================

// ToolName identifies a remote tool on the video intelligence backend
type ToolName string

const (
	ToolSearch        ToolName = "search"
	ToolListVideos    ToolName = "list_videos"
	ToolGetVideo      ToolName = "get_video"
	ToolGetTranscript ToolName = "get_transcript"
	ToolSynthesize    ToolName = "synthesize"
)

// ToolCall is one named remote operation with its argument mapping
type ToolCall struct {
	Name      ToolName               `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ==================== Tool Payload Models ====================

// VideoSegment is a transcript excerpt returned by the search tool.
// Segments arrive ordered by relevance descending; that order is preserved.
type VideoSegment struct {
	VideoID   string  `json:"video_id"`
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Relevance float64 `json:"relevance"`
}

// Timestamp returns the segment start as a human-readable m:ss string
func (s VideoSegment) Timestamp() string {
	return FormatTimestamp(s.StartTime)
}

// VideoMetadata describes one catalog entry, owned by the remote backend
type VideoMetadata struct {
	VideoID     string   `json:"video_id"`
	Title       string   `json:"title"`
	Topics      []string `json:"topics,omitempty"`
	PublishDate string   `json:"publish_date,omitempty"` // YYYY-MM-DD
	ViewCount   int      `json:"view_count"`
	Featured    bool     `json:"featured"`
	Description string   `json:"description,omitempty"`
	Duration    float64  `json:"duration,omitempty"` // seconds
}

// DurationFormatted returns the duration as "5m 30s"
func (v VideoMetadata) DurationFormatted() string {
	minutes := int(v.Duration) / 60
	secs := int(v.Duration) % 60
	return fmt.Sprintf("%dm %ds", minutes, secs)
}

// TranscriptPayload is the result of the get_transcript tool
type TranscriptPayload struct {
	VideoID    string         `json:"video_id"`
	Title      string         `json:"title"`
	Transcript string         `json:"transcript"`
	Segments   []VideoSegment `json:"segments,omitempty"`
}

// SynthesisPayload is the result of the synthesize tool
type SynthesisPayload struct {
	Text string `json:"text"`
}

// ==================== Response Models ====================

// VideoCitation points at the exact moment backing a synthesized answer
type VideoCitation struct {
	VideoID   string `json:"video_id"`
	StartTime int    `json:"start_time"`
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
	URL       string `json:"url"`
}

// AgentResponse is the single externally visible output of the agent.
// Success false means VideoInfo is absent and Content explains the failure.
type AgentResponse struct {
	Content           string         `json:"content"`
	Success           bool           `json:"success"`
	VideoInfo         *VideoCitation `json:"video_info"`
	ClickableExamples []string       `json:"clickable_examples,omitempty"`
}

// FormatTimestamp renders a second offset as m:ss
func FormatTimestamp(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// WatchURL substitutes video id and start offset into a playback URL template
func WatchURL(template, videoID string, startTime int) string {
	url := strings.ReplaceAll(template, "{video_id}", videoID)
	return strings.ReplaceAll(url, "{start}", fmt.Sprintf("%d", startTime))
}
