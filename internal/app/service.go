package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mooncakehq/mooncake/internal/grading"
	"github.com/mooncakehq/mooncake/internal/metrics"
	"github.com/mooncakehq/mooncake/internal/models"
	"github.com/mooncakehq/mooncake/internal/snapshot"
	"github.com/mooncakehq/mooncake/internal/store"
)

type Service struct {
	Config  *Config
	Store   *store.Store
	Grader  grading.Grader
	Auth    *Auth
	gateway snapshot.Gateway
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	gateway, err := snapshot.NewGateway(config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to init snapshot gateway: %w", err)
	}

	domainStore, err := store.New(gateway)
	if err != nil {
		gateway.Close()
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	auth, err := NewAuth(config)
	if err != nil {
		gateway.Close()
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	grader := grading.NewHTTPGrader(
		config.Grading.Endpoint,
		config.Grading.APIKey,
		config.GradingTimeout(),
	)

	return &Service{
		Config:  config,
		Store:   domainStore,
		Grader:  grader,
		Auth:    auth,
		gateway: gateway,
	}, nil
}

// SubmitAndGrade runs one submit-and-grade cycle: the submission is
// recorded as submitted, graded through the external service, and
// upgraded to graded when feedback arrives. A grading failure still
// records the submission; the error carries the message for the
// student and no retry happens.
func (s *Service) SubmitAndGrade(ctx context.Context, sub models.Submission) (models.Submission, error) {
	assignment, ok := s.Store.Assignment(sub.AssignmentID)
	if !ok {
		return models.Submission{}, fmt.Errorf("assignment %s not found", sub.AssignmentID)
	}

	sub.Timestamp = time.Now().UnixMilli()
	sub.Status = models.StatusSubmitted
	sub.Feedback = nil

	start := time.Now()
	feedback, err := s.Grader.Grade(ctx, assignment, sub)
	metrics.GradingRequestDuration.Observe(time.Since(start).Seconds())

	if errors.Is(err, grading.ErrGradingInFlight) {
		// nothing recorded: the outstanding request owns this key and
		// its result will be applied when it resolves
		return models.Submission{}, err
	}

	if err != nil {
		metrics.GradingFailuresTotal.Inc()
		s.Store.PutSubmission(sub)
		metrics.SubmissionsTotal.WithLabelValues(sub.AssignmentID, string(sub.Status)).Inc()
		return sub, err
	}

	sub.Feedback = feedback
	sub.Status = models.StatusGraded
	s.Store.PutSubmission(sub)
	metrics.SubmissionsTotal.WithLabelValues(sub.AssignmentID, string(sub.Status)).Inc()

	return sub, nil
}

// DashboardStats summarizes class performance on one assignment.
type DashboardStats struct {
	SubmissionCount int     `json:"submission_count"`
	GradedCount     int     `json:"graded_count"`
	AverageScore    float64 `json:"average_score"`
	MaxScore        int     `json:"max_score"`
}

func (s *Service) Dashboard(assignmentID string) (*DashboardStats, error) {
	assignment, ok := s.Store.Assignment(assignmentID)
	if !ok {
		return nil, fmt.Errorf("assignment %s not found", assignmentID)
	}

	subs := s.Store.SubmissionsForAssignment(assignmentID)
	stats := &DashboardStats{
		SubmissionCount: len(subs),
		MaxScore:        assignment.MaxScore(),
	}

	total := 0
	for _, sub := range subs {
		if sub.Status == models.StatusGraded && sub.Feedback != nil {
			stats.GradedCount++
			total += sub.Feedback.Total()
		}
	}
	if stats.GradedCount > 0 {
		stats.AverageScore = float64(total) / float64(stats.GradedCount)
	}

	return stats, nil
}

// ValidateTeacherAuth guards teacher-only routes when auth is enabled.
func (s *Service) ValidateTeacherAuth(r *http.Request, user string) error {
	if !s.Config.Server.EnableAuth {
		return nil
	}

	authHeader := r.Header.Get(s.Auth.tokenHeader)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fmt.Errorf("Invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	return s.Auth.ValidateToken(r.Context(), user, token)
}

func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.API.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

func (s *Service) Close() error {
	var errs []error

	if err := s.gateway.Close(); err != nil {
		errs = append(errs, fmt.Errorf("snapshot gateway: %w", err))
	}
	if err := s.Auth.Close(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
