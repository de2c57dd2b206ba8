package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mooncakehq/mooncake/internal/models"
	"github.com/mooncakehq/mooncake/internal/snapshot"
)

// Store owns the users, assignments and submissions collections and is
// the sole authority for the invariants between them. Every mutation
// triggers a best-effort full-snapshot save; persistence failures are
// logged and never surfaced, the in-memory state stays the source of
// truth for the session.
type Store struct {
	mu      sync.RWMutex
	gateway snapshot.Gateway
	// saves are gated until the initial load completes, so transient
	// empty state never clobbers a persisted snapshot
	loaded bool

	users       []models.User
	assignments []models.Assignment
	submissions []models.Submission

	activeID      string
	currentUser   *models.User
	pendingDelete string
}

// New restores state through the gateway, falling back to seed defaults
// when nothing usable is stored. A nil gateway gives a purely in-memory
// store.
func New(gateway snapshot.Gateway) (*Store, error) {
	s := &Store{gateway: gateway}

	var snap *snapshot.Snapshot
	if gateway != nil {
		loaded, err := gateway.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		snap = loaded
	}

	if snap != nil && len(snap.Assignments) > 0 {
		s.assignments = snap.Assignments
		s.submissions = snap.Submissions
		s.users = snap.Users
	} else {
		s.assignments = defaultAssignments()
		s.submissions = nil
	}
	if len(s.users) == 0 {
		s.users = defaultUsers()
	}
	if len(s.assignments) > 0 {
		s.activeID = s.assignments[0].ID
	}

	s.loaded = true
	return s, nil
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// saveLocked snapshots the collections through the gateway. Callers
// must hold the write lock.
func (s *Store) saveLocked() {
	if !s.loaded || s.gateway == nil {
		return
	}
	if err := s.gateway.Save(s.snapshotLocked()); err != nil {
		logger.Error.Printf("Could not persist snapshot: %v", err)
	}
}

func (s *Store) snapshotLocked() *snapshot.Snapshot {
	snap := &snapshot.Snapshot{
		Version:     snapshot.CurrentVersion,
		Users:       append([]models.User(nil), s.users...),
		Assignments: make([]models.Assignment, 0, len(s.assignments)),
		Submissions: make([]models.Submission, 0, len(s.submissions)),
	}
	for i := range s.assignments {
		snap.Assignments = append(snap.Assignments, s.assignments[i].Clone())
	}
	for i := range s.submissions {
		snap.Submissions = append(snap.Submissions, s.submissions[i].Clone())
	}
	return snap
}

// Snapshot exports a deep copy of the current state.
func (s *Store) Snapshot() *snapshot.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// CreateAssignment mints a fresh id, appends and selects the new
// assignment. Never fails.
func (s *Store) CreateAssignment(data models.Assignment) models.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := data.Clone()
	a.ID = newID("asgn")
	s.assignments = append(s.assignments, a)
	s.activeID = a.ID

	s.saveLocked()
	return a.Clone()
}

// UpdateAssignment replaces the assignment with a matching id. A miss
// is a silent no-op.
func (s *Store) UpdateAssignment(a models.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assignments {
		if s.assignments[i].ID == a.ID {
			s.assignments[i] = a.Clone()
			s.saveLocked()
			return
		}
	}
}

// DuplicateAssignment deep-copies the source under a new id with a
// "Copy of" title and selects the copy. Missing source is a no-op.
func (s *Store) DuplicateAssignment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assignments {
		if s.assignments[i].ID != id {
			continue
		}
		dup := s.assignments[i].Clone()
		dup.ID = newID("asgn")
		dup.Title = "Copy of " + s.assignments[i].Title
		s.assignments = append(s.assignments, dup)
		s.activeID = dup.ID
		s.saveLocked()
		return
	}
}

// RequestDeleteAssignment stages a deletion that takes effect only on
// ConfirmDeleteAssignment. Returns false when the id does not exist.
func (s *Store) RequestDeleteAssignment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assignments {
		if s.assignments[i].ID == id {
			s.pendingDelete = id
			return true
		}
	}
	return false
}

// CancelDeleteAssignment drops any staged deletion.
func (s *Store) CancelDeleteAssignment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = ""
}

// ConfirmDeleteAssignment applies the staged deletion: removes the
// assignment, cascades to every submission referencing it, and moves
// the active selection to the first remaining assignment if the
// deleted one was active. No-op without a staged request.
func (s *Store) ConfirmDeleteAssignment() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.pendingDelete
	s.pendingDelete = ""
	if id == "" {
		return
	}

	kept := s.assignments[:0]
	found := false
	for _, a := range s.assignments {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return
	}
	s.assignments = kept

	subs := s.submissions[:0]
	for _, sub := range s.submissions {
		if sub.AssignmentID != id {
			subs = append(subs, sub)
		}
	}
	s.submissions = subs

	if s.activeID == id {
		if len(s.assignments) > 0 {
			s.activeID = s.assignments[0].ID
		} else {
			s.activeID = ""
		}
	}

	s.saveLocked()
}

// ReplaceSubmissions wholesale-replaces the submission collection. The
// caller is responsible for having merged entries correctly.
func (s *Store) ReplaceSubmissions(list []models.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions = make([]models.Submission, 0, len(list))
	for i := range list {
		s.submissions = append(s.submissions, list[i].Clone())
	}

	s.saveLocked()
}

// PutSubmission records one submission, replacing any prior record for
// the same (assignment, student) pair. This is the replace-on-resubmit
// path that keeps the natural-key invariant.
func (s *Store) PutSubmission(sub models.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.submissions[:0]
	for _, existing := range s.submissions {
		if existing.Key() != sub.Key() {
			kept = append(kept, existing)
		}
	}
	s.submissions = append(kept, sub.Clone())

	s.saveLocked()
}

// SelectAssignment moves the active selection. Unknown ids are ignored.
func (s *Store) SelectAssignment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assignments {
		if s.assignments[i].ID == id {
			s.activeID = id
			return
		}
	}
}

func (s *Store) ActiveAssignmentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// ActiveAssignment returns the current selection, ok=false when none.
func (s *Store) ActiveAssignment() (models.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.assignments {
		if s.assignments[i].ID == s.activeID {
			return s.assignments[i].Clone(), true
		}
	}
	return models.Assignment{}, false
}

func (s *Store) Assignments() []models.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Assignment, 0, len(s.assignments))
	for i := range s.assignments {
		out = append(out, s.assignments[i].Clone())
	}
	return out
}

func (s *Store) Assignment(id string) (models.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.assignments {
		if s.assignments[i].ID == id {
			return s.assignments[i].Clone(), true
		}
	}
	return models.Assignment{}, false
}

func (s *Store) Submissions() []models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Submission, 0, len(s.submissions))
	for i := range s.submissions {
		out = append(out, s.submissions[i].Clone())
	}
	return out
}

func (s *Store) SubmissionsForAssignment(assignmentID string) []models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Submission
	for i := range s.submissions {
		if s.submissions[i].AssignmentID == assignmentID {
			out = append(out, s.submissions[i].Clone())
		}
	}
	return out
}

// SubmissionFor returns the current submission for one student on one
// assignment, ok=false when the student has not submitted.
func (s *Store) SubmissionFor(assignmentID, studentID string) (models.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.submissions {
		if s.submissions[i].AssignmentID == assignmentID && s.submissions[i].StudentID == studentID {
			return s.submissions[i].Clone(), true
		}
	}
	return models.Submission{}, false
}

// Login matches the email case-insensitively and the password exactly.
func (s *Store) Login(email, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].EmailMatches(email) && s.users[i].Password == password {
			u := s.users[i]
			s.currentUser = &u
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// SignUp appends a new user and logs them in. Emails are unique
// case-insensitively across all users.
func (s *Store) SignUp(name, email, password string, role models.Role) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].EmailMatches(email) {
			return models.User{}, ErrDuplicateEmail
		}
	}

	u := models.User{
		ID:       newID("user"),
		Name:     name,
		Email:    strings.TrimSpace(email),
		Password: password,
		Role:     role,
	}
	s.users = append(s.users, u)
	s.currentUser = &u

	s.saveLocked()
	return u, nil
}

// Logout clears the in-memory current-user pointer. Nothing about the
// session is persisted.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
}

// CurrentUser returns the logged-in user, ok=false when nobody is.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return models.User{}, false
	}
	return *s.currentUser, true
}
