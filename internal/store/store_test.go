package store

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mooncakehq/mooncake/internal/models"
)

func TestMain(m *testing.M) {
	log.Println("Starting store tests...")
	code := m.Run()
	log.Println("Finished store tests")
	os.Exit(code)
}

func newTestStore(t *testing.T) *Store {
	s, err := New(nil)
	require.NoError(t, err, "Failed to create store")
	return s
}

func testAssignment(title string) models.Assignment {
	return models.Assignment{
		Title:        title,
		Instructions: "Describe the festival",
		Rubric: []models.RubricCriterion{
			{ID: "c-1", Name: "Accuracy", MaxPoints: 10},
		},
		Requirements: models.Requirements{Text: true},
	}
}

func TestSeedDefaults(t *testing.T) {
	s := newTestStore(t)

	assignments := s.Assignments()
	require.Len(t, assignments, 1)
	assert.Equal(t, firstAssignmentID, assignments[0].ID)
	assert.Equal(t, firstAssignmentID, s.ActiveAssignmentID())
	assert.Equal(t, 35, assignments[0].MaxScore())

	_, err := s.Login("teacher@school.edu", "password123")
	require.NoError(t, err)
}

func TestCreateAssignment(t *testing.T) {
	s := newTestStore(t)

	created := s.CreateAssignment(testAssignment("Test"))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Test", created.Title)

	t.Run("new assignment becomes active", func(t *testing.T) {
		assert.Equal(t, created.ID, s.ActiveAssignmentID())
	})

	t.Run("ids stay unique across many creates", func(t *testing.T) {
		seen := map[string]bool{created.ID: true}
		for i := 0; i < 50; i++ {
			a := s.CreateAssignment(testAssignment("Another"))
			assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
			seen[a.ID] = true
		}
	})
}

func TestUpdateAssignment(t *testing.T) {
	s := newTestStore(t)
	created := s.CreateAssignment(testAssignment("Before"))

	created.Title = "After"
	s.UpdateAssignment(created)

	got, ok := s.Assignment(created.ID)
	require.True(t, ok)
	assert.Equal(t, "After", got.Title)

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		count := len(s.Assignments())
		ghost := testAssignment("Ghost")
		ghost.ID = "asgn-nope"
		s.UpdateAssignment(ghost)

		assert.Len(t, s.Assignments(), count)
		_, ok := s.Assignment("asgn-nope")
		assert.False(t, ok)
	})
}

func TestDuplicateAssignment(t *testing.T) {
	s := newTestStore(t)
	source := s.CreateAssignment(testAssignment("Original"))

	s.DuplicateAssignment(source.ID)

	assignments := s.Assignments()
	require.Len(t, assignments, 3) // seed + original + copy
	dup := assignments[2]

	assert.Equal(t, "Copy of Original", dup.Title)
	assert.NotEqual(t, source.ID, dup.ID)
	assert.Equal(t, dup.ID, s.ActiveAssignmentID())

	t.Run("rubric is a distinct copy", func(t *testing.T) {
		dup.Rubric[0].Name = "Mutated"
		dup.Rubric[0].MaxPoints = 99
		s.UpdateAssignment(dup)

		got, ok := s.Assignment(source.ID)
		require.True(t, ok)
		assert.Equal(t, "Accuracy", got.Rubric[0].Name)
		assert.Equal(t, 10, got.Rubric[0].MaxPoints)
	})

	t.Run("missing source is a no-op", func(t *testing.T) {
		count := len(s.Assignments())
		s.DuplicateAssignment("asgn-nope")
		assert.Len(t, s.Assignments(), count)
	})
}

func TestDeleteAssignmentCascade(t *testing.T) {
	s := newTestStore(t)
	doomed := s.CreateAssignment(testAssignment("Doomed"))
	kept := s.CreateAssignment(testAssignment("Kept"))

	s.PutSubmission(models.Submission{
		AssignmentID: doomed.ID, StudentID: "student-1", Status: models.StatusSubmitted,
	})
	s.PutSubmission(models.Submission{
		AssignmentID: doomed.ID, StudentID: "student-2", Status: models.StatusSubmitted,
	})
	s.PutSubmission(models.Submission{
		AssignmentID: kept.ID, StudentID: "student-1", Status: models.StatusSubmitted,
	})

	require.True(t, s.RequestDeleteAssignment(doomed.ID))
	s.ConfirmDeleteAssignment()

	_, ok := s.Assignment(doomed.ID)
	assert.False(t, ok)

	t.Run("cascade removes exactly the referencing submissions", func(t *testing.T) {
		assert.Empty(t, s.SubmissionsForAssignment(doomed.ID))
		assert.Len(t, s.SubmissionsForAssignment(kept.ID), 1)
	})
}

func TestDeleteAssignmentSelection(t *testing.T) {
	s := newTestStore(t)
	first := s.Assignments()[0]
	second := s.CreateAssignment(testAssignment("Second"))
	require.Equal(t, second.ID, s.ActiveAssignmentID())

	require.True(t, s.RequestDeleteAssignment(second.ID))
	s.ConfirmDeleteAssignment()

	t.Run("selection falls back to first remaining", func(t *testing.T) {
		assert.Equal(t, first.ID, s.ActiveAssignmentID())
	})

	t.Run("deleting the last assignment clears selection", func(t *testing.T) {
		require.True(t, s.RequestDeleteAssignment(first.ID))
		s.ConfirmDeleteAssignment()
		assert.Equal(t, "", s.ActiveAssignmentID())
		_, ok := s.ActiveAssignment()
		assert.False(t, ok)
	})
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	s := newTestStore(t)
	a := s.CreateAssignment(testAssignment("Pending"))

	require.True(t, s.RequestDeleteAssignment(a.ID))

	t.Run("nothing happens before confirm", func(t *testing.T) {
		_, ok := s.Assignment(a.ID)
		assert.True(t, ok)
	})

	t.Run("cancel drops the staged delete", func(t *testing.T) {
		s.CancelDeleteAssignment()
		s.ConfirmDeleteAssignment()
		_, ok := s.Assignment(a.ID)
		assert.True(t, ok)
	})

	t.Run("request on unknown id reports miss", func(t *testing.T) {
		assert.False(t, s.RequestDeleteAssignment("asgn-nope"))
	})
}

func TestPutSubmissionReplacesOnResubmit(t *testing.T) {
	s := newTestStore(t)
	a := s.CreateAssignment(testAssignment("Essay"))

	for i := 0; i < 5; i++ {
		s.PutSubmission(models.Submission{
			AssignmentID: a.ID,
			StudentID:    "student-li-wei",
			Text:         "你好",
			Timestamp:    int64(i),
			Status:       models.StatusSubmitted,
		})
	}

	subs := s.SubmissionsForAssignment(a.ID)
	require.Len(t, subs, 1, "resubmits must replace, not accumulate")
	assert.Equal(t, int64(4), subs[0].Timestamp)

	t.Run("other students keep their own record", func(t *testing.T) {
		s.PutSubmission(models.Submission{
			AssignmentID: a.ID, StudentID: "student-zhang", Status: models.StatusSubmitted,
		})
		assert.Len(t, s.SubmissionsForAssignment(a.ID), 2)
	})
}

func TestReplaceSubmissions(t *testing.T) {
	s := newTestStore(t)
	a := s.CreateAssignment(testAssignment("Essay"))

	s.ReplaceSubmissions([]models.Submission{
		{AssignmentID: a.ID, StudentID: "s1", Status: models.StatusSubmitted},
		{AssignmentID: a.ID, StudentID: "s2", Status: models.StatusGraded},
	})
	assert.Len(t, s.Submissions(), 2)

	s.ReplaceSubmissions(nil)
	assert.Empty(t, s.Submissions())
}

func TestLogin(t *testing.T) {
	s := newTestStore(t)

	t.Run("email match is case-insensitive", func(t *testing.T) {
		user, err := s.Login("TEACHER@School.EDU", "password123")
		require.NoError(t, err)
		assert.Equal(t, models.RoleTeacher, user.Role)

		current, ok := s.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, user.ID, current.ID)
	})

	t.Run("wrong password fails with generic error", func(t *testing.T) {
		_, err := s.Login("teacher@school.edu", "letmein")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails with the same error", func(t *testing.T) {
		_, err := s.Login("nobody@school.edu", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSignUp(t *testing.T) {
	s := newTestStore(t)

	user, err := s.SignUp("Chen Jing", "chen.jing@school.edu", "secret", models.RoleStudent)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	t.Run("new user is logged in", func(t *testing.T) {
		current, ok := s.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, user.ID, current.ID)
	})

	t.Run("duplicate email differs only in case", func(t *testing.T) {
		_, err := s.SignUp("Imposter", "Chen.Jing@School.edu", "secret", models.RoleStudent)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("logout clears the current user", func(t *testing.T) {
		s.Logout()
		_, ok := s.CurrentUser()
		assert.False(t, ok)
	})
}
