package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/intent"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/transport"
)

const maxFollowUps = 5

// followUpTemplates parameterize suggested queries with a detected topic
// keyword. A static set, never generated text.
var followUpTemplates = []string{
	"Tell me more about %s",
	"Which video covers %s in depth?",
	"What else does the library say about %s?",
}

// defaultExamples are offered when a query yields no usable keywords
var defaultExamples = []string{
	"What are the key risks in AI investments?",
	"Emerging market outlook",
	"most popular videos",
	"list videos",
}

// Assembler converts pipeline outcomes into the one externally visible
// response type, enforcing its invariants: failures carry no citation and
// never leak protocol detail.
type Assembler struct {
	urlTemplate string
}

func NewAssembler(search *config.SearchConfig) *Assembler {
	return &Assembler{urlTemplate: search.URLTemplate}
}

// SearchResponse builds the answer response, citing the highest-relevance
// segment. Ties keep the earliest-returned segment.
func (a *Assembler) SearchResponse(q models.Query, segments []models.VideoSegment, answer string) models.AgentResponse {
	top := segments[0]
	for _, s := range segments[1:] {
		if s.Relevance > top.Relevance {
			top = s
		}
	}

	start := int(top.StartTime)
	return models.AgentResponse{
		Content: answer,
		Success: true,
		VideoInfo: &models.VideoCitation{
			VideoID:   top.VideoID,
			StartTime: start,
			Timestamp: top.Timestamp(),
			Title:     top.Title,
			URL:       models.WatchURL(a.urlTemplate, top.VideoID, start),
		},
		ClickableExamples: a.followUps(q.Text),
	}
}

// NoMatchResponse reports an empty search outcome. Nothing found is not a
// failure, so success stays true.
func (a *Assembler) NoMatchResponse(q models.Query) models.AgentResponse {
	return models.AgentResponse{
		Content: fmt.Sprintf(
			"I searched the video library but couldn't find content about '%s'. Would you like me to search for a related topic?",
			q.Text,
		),
		Success:           true,
		VideoInfo:         nil,
		ClickableExamples: a.followUps(q.Text),
	}
}

// RecommendationResponse renders an ordered catalog listing with the top
// entry attached as a citation at the start of the video.
func (a *Assembler) RecommendationResponse(videos []models.VideoMetadata, ordering Ordering) models.AgentResponse {
	if len(videos) == 0 {
		content := "No videos are currently available in the library."
		if ordering == OrderFeatured {
			content = "There are no featured videos right now."
		}
		return models.AgentResponse{
			Content:           content,
			Success:           true,
			ClickableExamples: append([]string(nil), defaultExamples...),
		}
	}

	var b strings.Builder
	b.WriteString(orderingIntro(ordering))
	b.WriteString("\n\n")

	for _, v := range videos {
		fmt.Fprintf(&b, "**%s**", v.Title)
		if v.Duration > 0 {
			fmt.Fprintf(&b, " (%s)", v.DurationFormatted())
		}
		b.WriteString("\n")

		if v.Description != "" {
			fmt.Fprintf(&b, "  %s\n", v.Description)
		}

		var meta []string
		if v.ViewCount > 0 {
			meta = append(meta, fmt.Sprintf("%d views", v.ViewCount))
		}
		if v.PublishDate != "" {
			meta = append(meta, v.PublishDate)
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, "  %s\n", strings.Join(meta, " | "))
		}

		if len(v.Topics) > 0 {
			fmt.Fprintf(&b, "  Topics: %s\n", strings.Join(v.Topics, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("Ask me about any of these topics to search the transcripts for specific insights.")

	top := videos[0]
	return models.AgentResponse{
		Content: b.String(),
		Success: true,
		VideoInfo: &models.VideoCitation{
			VideoID:   top.VideoID,
			StartTime: 0,
			Timestamp: "0:00",
			Title:     top.Title,
			URL:       models.WatchURL(a.urlTemplate, top.VideoID, 0),
		},
		ClickableExamples: append([]string(nil), defaultExamples...),
	}
}

// FailureResponse converts any pipeline failure into a user-facing message.
// Raw protocol errors never reach the caller.
func (a *Assembler) FailureResponse(err error) models.AgentResponse {
	var terr *transport.Error
	message := "Something went wrong while answering your question. Please try again."
	if errors.As(err, &terr) {
		switch terr.Kind {
		case transport.ConnectionFailed:
			message = "I couldn't reach the video library right now. Please try again in a moment."
		case transport.Timeout:
			message = "The video library took too long to respond. Please try again."
		case transport.ProtocolError:
			message = "The video library returned an unexpected response. Please try again later."
		case transport.ToolError:
			message = "The video library couldn't complete that request."
		}
	}

	return models.AgentResponse{
		Content:           message,
		Success:           false,
		VideoInfo:         nil,
		ClickableExamples: append([]string(nil), defaultExamples...),
	}
}

// followUps expands the template set over the query's topic keywords,
// deduplicated, insertion order preserved, capped at maxFollowUps
func (a *Assembler) followUps(text string) []string {
	keywords := intent.Keywords(text)
	if len(keywords) == 0 {
		return append([]string(nil), defaultExamples...)
	}

	seen := make(map[string]struct{})
	var suggestions []string
	for i, kw := range keywords {
		if len(suggestions) >= maxFollowUps {
			break
		}
		s := fmt.Sprintf(followUpTemplates[i%len(followUpTemplates)], kw)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		suggestions = append(suggestions, s)
	}
	return suggestions
}

func orderingIntro(ordering Ordering) string {
	switch ordering {
	case OrderPopular:
		return "Here are the most popular videos by view count:"
	case OrderLatest:
		return "Here are the latest videos:"
	case OrderFeatured:
		return "Here are the featured videos:"
	default:
		return "Here's what's available in the video library:"
	}
}
