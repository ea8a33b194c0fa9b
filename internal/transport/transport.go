package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/pkg/logger"
)

// Client invokes remote tools on the video intelligence backend.
// The underlying http.Client is safe for concurrent use; the client
// holds no other state shared between in-flight queries.
type Client struct {
	baseURL          string
	token            string
	searchTimeout    time.Duration
	synthesisTimeout time.Duration
	backoff          time.Duration
	client           *http.Client
}

// New creates a transport client for the configured backend
func New(cfg *config.BackendConfig) *Client {
	return &Client{
		baseURL:          cfg.BaseURL,
		token:            cfg.Token,
		searchTimeout:    time.Duration(cfg.SearchTimeout) * time.Second,
		synthesisTimeout: time.Duration(cfg.SynthesisTimeout) * time.Second,
		backoff:          time.Duration(cfg.RetryBackoffMS) * time.Millisecond,
		// No Timeout on the client itself: budgets are applied per call
		client: &http.Client{},
	}
}

// toolErrorBody is the structured error shape the backend returns on
// domain-level failures (e.g. unknown video id)
type toolErrorBody struct {
	Error *struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
}

// Invoke sends one tool call and returns the raw response payload.
// Connection and timeout failures are retried exactly once with a fixed
// backoff; protocol and tool errors surface immediately.
func (c *Client) Invoke(ctx context.Context, call models.ToolCall) (json.RawMessage, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Debug("retrying tool call",
				zap.String("tool", string(call.Name)),
				zap.Duration("backoff", c.backoff),
			)
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		payload, err := c.send(ctx, call)
		if err == nil {
			return payload, nil
		}
		// Caller cancellation aborts outright, it is not a transport fault
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		var terr *Error
		if errors.As(err, &terr) && terr.Kind.Retryable() {
			continue
		}
		return nil, err
	}

	log.Warn("tool call failed after retry",
		zap.String("tool", string(call.Name)),
		zap.Error(lastErr),
	)
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, call models.ToolCall) (json.RawMessage, error) {
	tool := string(call.Name)

	body, err := json.Marshal(call)
	if err != nil {
		return nil, newError(ProtocolError, tool, "failed to encode request: %v", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeoutFor(call.Name))
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/tools/call", bytes.NewReader(body))
	if err != nil {
		return nil, newError(ProtocolError, tool, "failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, newError(Timeout, tool, "no response within %s", c.timeoutFor(call.Name))
		}
		return nil, newError(ConnectionFailed, tool, "request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, newError(Timeout, tool, "response read exceeded %s", c.timeoutFor(call.Name))
		}
		return nil, newError(ConnectionFailed, tool, "failed to read response: %v", err)
	}

	logger.FromContext(ctx).Debug("tool call completed",
		zap.String("tool", tool),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return nil, newError(ProtocolError, tool, "backend returned status %d", resp.StatusCode)
	}

	var errBody toolErrorBody
	if err := json.Unmarshal(raw, &errBody); err != nil {
		return nil, newError(ProtocolError, tool, "malformed response payload: %v", err)
	}
	if errBody.Error != nil {
		return nil, newError(ToolError, tool, "%s", errBody.Error.Message)
	}

	return raw, nil
}

func (c *Client) timeoutFor(name models.ToolName) time.Duration {
	if name == models.ToolSynthesize {
		return c.synthesisTimeout
	}
	return c.searchTimeout
}

// ==================== Typed tool helpers ====================

// Search queries video transcripts, returning segments ordered by
// relevance descending as the backend ranked them
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]models.VideoSegment, error) {
	raw, err := c.Invoke(ctx, models.ToolCall{
		Name: models.ToolSearch,
		Arguments: map[string]interface{}{
			"query":       query,
			"max_results": maxResults,
		},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Results []models.VideoSegment `json:"results"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, newError(ProtocolError, string(models.ToolSearch), "unexpected search payload: %v", err)
	}

	logger.FromContext(ctx).Info("search completed",
		zap.String("query", query),
		zap.Int("segments", len(payload.Results)),
	)
	return payload.Results, nil
}

// ListVideos fetches the full catalog
func (c *Client) ListVideos(ctx context.Context) ([]models.VideoMetadata, error) {
	raw, err := c.Invoke(ctx, models.ToolCall{
		Name:      models.ToolListVideos,
		Arguments: map[string]interface{}{},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Videos []models.VideoMetadata `json:"videos"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, newError(ProtocolError, string(models.ToolListVideos), "unexpected catalog payload: %v", err)
	}
	return payload.Videos, nil
}

// GetVideo fetches metadata for a single video
func (c *Client) GetVideo(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	raw, err := c.Invoke(ctx, models.ToolCall{
		Name:      models.ToolGetVideo,
		Arguments: map[string]interface{}{"video_id": videoID},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Video models.VideoMetadata `json:"video"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, newError(ProtocolError, string(models.ToolGetVideo), "unexpected video payload: %v", err)
	}
	return &payload.Video, nil
}

// GetTranscript fetches the full transcript for a video
func (c *Client) GetTranscript(ctx context.Context, videoID string) (*models.TranscriptPayload, error) {
	raw, err := c.Invoke(ctx, models.ToolCall{
		Name:      models.ToolGetTranscript,
		Arguments: map[string]interface{}{"video_id": videoID},
	})
	if err != nil {
		return nil, err
	}

	var payload models.TranscriptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, newError(ProtocolError, string(models.ToolGetTranscript), "unexpected transcript payload: %v", err)
	}
	return &payload, nil
}

// Synthesize asks the backend to compose an answer from the given segments
func (c *Client) Synthesize(ctx context.Context, query string, segments []models.VideoSegment, tone string) (string, error) {
	raw, err := c.Invoke(ctx, models.ToolCall{
		Name: models.ToolSynthesize,
		Arguments: map[string]interface{}{
			"query":    query,
			"segments": segments,
			"tone":     tone,
		},
	})
	if err != nil {
		return "", err
	}

	var payload models.SynthesisPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", newError(ProtocolError, string(models.ToolSynthesize), "unexpected synthesis payload: %v", err)
	}
	return payload.Text, nil
}

// Ping checks backend reachability via the health endpoint
func (c *Client) Ping(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
