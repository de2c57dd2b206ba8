package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mooncakehq/mooncake/internal/models"
	"github.com/mooncakehq/mooncake/internal/snapshot"
)

// memGateway records saves so tests can watch the write policy.
type memGateway struct {
	saved    *snapshot.Snapshot
	saves    int
	snapshot *snapshot.Snapshot
	loadErr  error
}

func (g *memGateway) Close() error { return nil }

func (g *memGateway) Save(snap *snapshot.Snapshot) error {
	g.saved = snap
	g.saves++
	return nil
}

func (g *memGateway) Load() (*snapshot.Snapshot, error) {
	return g.snapshot, g.loadErr
}

func TestEveryMutationSaves(t *testing.T) {
	gw := &memGateway{}
	s, err := New(gw)
	require.NoError(t, err)
	require.Equal(t, 0, gw.saves, "load must complete before any save is issued")

	a := s.CreateAssignment(testAssignment("One"))
	assert.Equal(t, 1, gw.saves)

	a.Title = "One updated"
	s.UpdateAssignment(a)
	assert.Equal(t, 2, gw.saves)

	s.DuplicateAssignment(a.ID)
	assert.Equal(t, 3, gw.saves)

	s.PutSubmission(models.Submission{
		AssignmentID: a.ID, StudentID: "s1", Status: models.StatusSubmitted,
	})
	assert.Equal(t, 4, gw.saves)

	require.True(t, s.RequestDeleteAssignment(a.ID))
	assert.Equal(t, 4, gw.saves, "staging a delete is not yet a mutation")
	s.ConfirmDeleteAssignment()
	assert.Equal(t, 5, gw.saves)

	t.Run("saved snapshot reflects the cascade", func(t *testing.T) {
		for _, sub := range gw.saved.Submissions {
			assert.NotEqual(t, a.ID, sub.AssignmentID)
		}
	})
}

func TestRestoreFromSnapshot(t *testing.T) {
	gw := &memGateway{
		snapshot: &snapshot.Snapshot{
			Version: 1,
			Users: []models.User{
				{ID: "u-1", Name: "Chen", Email: "chen@school.edu", Password: "pw", Role: models.RoleStudent},
			},
			Assignments: []models.Assignment{
				{ID: "asgn-restored", Title: "Restored"},
			},
			Submissions: []models.Submission{
				{AssignmentID: "asgn-restored", StudentID: "u-1", Status: models.StatusSubmitted},
			},
		},
	}

	s, err := New(gw)
	require.NoError(t, err)

	assert.Equal(t, "asgn-restored", s.ActiveAssignmentID(), "first persisted assignment becomes active")
	assert.Len(t, s.SubmissionsForAssignment("asgn-restored"), 1)

	_, err = s.Login("chen@school.edu", "pw")
	assert.NoError(t, err, "persisted users replace the seed accounts")
}

func TestEmptySnapshotFallsBackToSeed(t *testing.T) {
	// a snapshot with no assignments is treated like nothing stored
	gw := &memGateway{snapshot: &snapshot.Snapshot{Version: 1}}

	s, err := New(gw)
	require.NoError(t, err)

	assignments := s.Assignments()
	require.Len(t, assignments, 1)
	assert.Equal(t, firstAssignmentID, assignments[0].ID)
}
