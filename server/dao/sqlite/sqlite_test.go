package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/codex/internal/puzzle"
	"github.com/dekarrin/codex/server/dao"
)

func newTestStore(t *testing.T) dao.Store {
	st, err := NewDatastore(t.TempDir())
	if err != nil {
		t.Fatalf("create datastore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func Test_UsersDB_crud(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Users().Create(ctx, dao.User{Username: "vriska", Password: "hash", Role: dao.Normal})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("vriska", created.Username)
	assert.Equal(dao.Normal, created.Role)
	assert.Nil(created.Email)
	assert.Equal(uuid.Nil, created.CurrentPuzzle)
	assert.Zero(created.PuzzlesSolved)
	assert.True(created.LastLoginTime.IsZero())

	_, err = st.Users().Create(ctx, dao.User{Username: "vriska", Password: "other"})
	assert.ErrorIs(err, dao.ErrConstraintViolation)

	byName, err := st.Users().GetByUsername(ctx, "vriska")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.ID, byName.ID)

	puzzleID := uuid.New()
	byName.Role = dao.Admin
	byName.CurrentPuzzle = puzzleID
	byName.PuzzlesSolved = 3
	updated, err := st.Users().Update(ctx, byName.ID, byName)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(dao.Admin, updated.Role)
	assert.Equal(puzzleID, updated.CurrentPuzzle)
	assert.Equal(3, updated.PuzzlesSolved)

	all, err := st.Users().GetAll(ctx)
	if assert.NoError(err) && assert.Len(all, 1) {
		assert.Equal(updated, all[0])
	}

	_, err = st.Users().Update(ctx, uuid.New(), updated)
	assert.ErrorIs(err, dao.ErrNotFound)

	deleted, err := st.Users().Delete(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.ID, deleted.ID)

	_, err = st.Users().GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_PuzzlesDB_storesHiddenGrammar(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)

	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	user, err := st.Users().Create(ctx, dao.User{Username: "terezi", Password: "hash"})
	if !assert.NoError(err) {
		return
	}

	p, err := puzzle.New(puzzle.Standard, "DRAGON")
	if !assert.NoError(err) {
		return
	}

	created, err := st.Puzzles().Create(ctx, dao.Puzzle{
		UserID:     user.ID,
		Seed:       p.Seed,
		Difficulty: p.Difficulty,
		Grammar:    p.Grammar,
		Examples:   p.Examples,
	})
	if !assert.NoError(err) {
		return
	}

	got, err := st.Puzzles().GetByID(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(user.ID, got.UserID)
	assert.Equal(p.Seed, got.Seed)
	assert.Equal(p.Difficulty, got.Difficulty)
	assert.True(p.Grammar.Equal(got.Grammar), "grammar changed in storage:\n%s", got.Grammar)
	assert.Equal(p.Examples, got.Examples)
	assert.Nil(got.Rules)
	assert.False(got.Solved)

	got.Rules = []string{"1 -> 2 3", "2 -> 3 4"}
	got.Attempts = 1
	got.Solved = true
	updated, err := st.Puzzles().Update(ctx, got.ID, got)
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]string{"1 -> 2 3", "2 -> 3 4"}, updated.Rules)
	assert.Equal(1, updated.Attempts)
	assert.True(updated.Solved)

	all, err := st.Puzzles().GetAllByUser(ctx, user.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Len(all, 1)

	// deleting the owner removes their puzzles too
	_, err = st.Users().Delete(ctx, user.ID)
	if !assert.NoError(err) {
		return
	}
	_, err = st.Puzzles().GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_PuzzlesDB_GetAllByUser_none(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	user, err := st.Users().Create(ctx, dao.User{Username: "karkat", Password: "hash"})
	if !assert.NoError(err) {
		return
	}

	all, err := st.Puzzles().GetAllByUser(ctx, user.ID)
	assert.NoError(err)
	assert.Empty(all)
}
