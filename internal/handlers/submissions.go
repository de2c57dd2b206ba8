package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mooncakehq/mooncake/internal/app"
	"github.com/mooncakehq/mooncake/internal/grading"
	"github.com/mooncakehq/mooncake/internal/metrics"
	"github.com/mooncakehq/mooncake/internal/models"
)

type SubmissionHandler struct {
	service *app.Service
}

func NewSubmissionHandler(service *app.Service) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
	}
}

type submitRequest struct {
	StudentID   string   `json:"studentId"`
	StudentName string   `json:"studentName"`
	Text        string   `json:"text"`
	AudioURL    string   `json:"audioUrl,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

// HandleSubmit runs the submit-and-grade cycle for one student on one
// assignment. A grading failure still records the submission and the
// message comes back in the response for the student to see.
func (h *SubmissionHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "200"
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			status,
		).Observe(duration)
	}()

	if !h.service.ValidateHeaders(r.Header) {
		status = "403"
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status = "400"
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub := models.Submission{
		AssignmentID: r.PathValue("id"),
		StudentID:    req.StudentID,
		StudentName:  req.StudentName,
		Text:         req.Text,
		AudioURL:     req.AudioURL,
		ImageURLs:    req.ImageURLs,
		Status:       models.StatusSubmitted,
	}
	if err := sub.Validate(); err != nil {
		logger.Debug.Printf("Rejected submission payload: %v", err)
		status = "400"
		http.Error(w, "Invalid submission", http.StatusBadRequest)
		return
	}

	graded, err := h.service.SubmitAndGrade(r.Context(), sub)
	if errors.Is(err, grading.ErrGradingInFlight) {
		status = "409"
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	var gradingErr *grading.GradingError
	if errors.As(err, &gradingErr) {
		// submission is preserved as submitted, no feedback attached
		writeJSON(w, map[string]interface{}{
			"submission":    graded,
			"grading_error": gradingErr.Message,
		})
		return
	}
	if err != nil {
		logger.Error.Printf("Submit failed: %v", err)
		status = "404"
		http.Error(w, "Assignment not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"submission": graded,
	})
}

func (h *SubmissionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	subs := h.service.Store.SubmissionsForAssignment(r.PathValue("id"))

	writeJSON(w, map[string]interface{}{
		"rows": subs,
	})
}
