package grading

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mooncakehq/mooncake/internal/models"
)

// ErrGradingInFlight rejects a second grading request for the same
// (assignment, student) pair while one is still outstanding.
var ErrGradingInFlight = errors.New("a grading request for this submission is already in flight")

// GradingError carries the human-readable message surfaced to the
// student when the external grader fails.
type GradingError struct {
	Message string
	Err     error
}

func (e *GradingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GradingError) Unwrap() error {
	return e.Err
}

// Grader scores one submission against one assignment's rubric.
type Grader interface {
	Grade(ctx context.Context, assignment models.Assignment, submission models.Submission) (*models.Feedback, error)
}

// HTTPGrader calls an external scoring model service. One round trip
// per submission, explicit timeout, no retry: a failed call leaves the
// submission recorded without feedback and the student may resubmit.
type HTTPGrader struct {
	endpoint string
	apiKey   string
	client   *http.Client

	mu       sync.Mutex
	inflight map[string]bool
}

func NewHTTPGrader(endpoint, apiKey string, timeout time.Duration) *HTTPGrader {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPGrader{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		inflight: make(map[string]bool),
	}
}

type gradeRequest struct {
	Assignment models.Assignment `json:"assignment"`
	Submission models.Submission `json:"submission"`
}

func (g *HTTPGrader) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[key] {
		return false
	}
	g.inflight[key] = true
	return true
}

func (g *HTTPGrader) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
}

func (g *HTTPGrader) Grade(ctx context.Context, assignment models.Assignment, submission models.Submission) (*models.Feedback, error) {
	key := submission.Key()
	if !g.acquire(key) {
		return nil, ErrGradingInFlight
	}
	defer g.release(key)

	payload, err := json.Marshal(gradeRequest{
		Assignment: assignment,
		Submission: submission,
	})
	if err != nil {
		return nil, &GradingError{Message: "Could not encode grading request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &GradingError{Message: "Could not build grading request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error.Printf("Grading call failed for %s: %v", key, err)
		return nil, &GradingError{Message: "The grading service could not be reached", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Error.Printf("Grading service returned %d for %s: %s", resp.StatusCode, key, body)
		return nil, &GradingError{
			Message: fmt.Sprintf("The grading service rejected the submission (status %d)", resp.StatusCode),
		}
	}

	var feedback models.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&feedback); err != nil {
		return nil, &GradingError{Message: "The grading service returned malformed feedback", Err: err}
	}
	if feedback.Scores == nil {
		return nil, &GradingError{Message: "The grading service returned feedback without scores"}
	}

	return &feedback, nil
}
