package models

import (
	"github.com/go-playground/validator/v10"
)

type SubmissionStatus string

const (
	StatusDraft     SubmissionStatus = "draft"
	StatusSubmitted SubmissionStatus = "submitted"
	StatusGraded    SubmissionStatus = "graded"
)

// Submission is one student's current attempt for one assignment.
// (AssignmentID, StudentID) is the natural key: a resubmit replaces
// the prior record wholesale, no history is kept.
type Submission struct {
	AssignmentID string           `json:"assignmentId" validate:"required"`
	StudentID    string           `json:"studentId" validate:"required"`
	StudentName  string           `json:"studentName"`
	Timestamp    int64            `json:"timestamp"`
	Text         string           `json:"text"`
	AudioURL     string           `json:"audioUrl,omitempty"`
	ImageURLs    []string         `json:"imageUrls,omitempty"`
	Status       SubmissionStatus `json:"status" validate:"oneof=draft submitted graded"`
	Feedback     *Feedback        `json:"feedback,omitempty"`
}

func (s *Submission) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// Key identifies the (assignment, student) pair this submission belongs to.
func (s *Submission) Key() string {
	return s.AssignmentID + "/" + s.StudentID
}

// Clone copies the submission including its feedback and image urls.
func (s *Submission) Clone() Submission {
	dup := *s
	if s.ImageURLs != nil {
		dup.ImageURLs = make([]string, len(s.ImageURLs))
		copy(dup.ImageURLs, s.ImageURLs)
	}
	if s.Feedback != nil {
		fb := s.Feedback.Clone()
		dup.Feedback = &fb
	}
	return dup
}
