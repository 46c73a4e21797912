package inmem

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/server/dao"
)

func Test_InMemoryUsersRepository_Create(t *testing.T) {
	testCases := []struct {
		name      string
		existing  []string
		username  string
		expectErr error
	}{
		{
			name:     "empty repo",
			username: "jade",
		},
		{
			name:     "other users present",
			existing: []string{"john", "rose"},
			username: "jade",
		},
		{
			name:      "username taken",
			existing:  []string{"jade"},
			username:  "jade",
			expectErr: dao.ErrConstraintViolation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			ctx := context.Background()
			repo := NewUsersRepository()

			for _, name := range tc.existing {
				_, err := repo.Create(ctx, dao.User{Username: name})
				if !assert.NoError(err) {
					return
				}
			}

			actual, err := repo.Create(ctx, dao.User{Username: tc.username})
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.NotEqual(uuid.Nil, actual.ID)
			got, err := repo.GetByUsername(ctx, tc.username)
			assert.NoError(err)
			assert.Equal(actual, got)
		})
	}
}

func Test_InMemoryPuzzlesRepository_copiesState(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewPuzzlesRepository()

	g := grammar.Grammar{}
	g.Add(grammar.Rule{LHS: 1, RHS: grammar.Production{2, 3}})

	created, err := repo.Create(ctx, dao.Puzzle{
		UserID:  uuid.New(),
		Grammar: g,
		Rules:   []string{"1 -> 2 3"},
	})
	if !assert.NoError(err) {
		return
	}

	// mutating what was passed in or returned must not change what is stored
	g.Add(grammar.Rule{LHS: 2, RHS: grammar.Production{3, 3}})
	created.Rules[0] = "changed"

	got, err := repo.GetByID(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(1, got.Grammar.RuleCount())
	assert.Equal([]string{"1 -> 2 3"}, got.Rules)
}

func Test_InMemoryPuzzlesRepository_byUser(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewPuzzlesRepository()

	owner := uuid.New()
	other := uuid.New()

	first, err := repo.Create(ctx, dao.Puzzle{UserID: owner, Seed: "AAAAAA"})
	if !assert.NoError(err) {
		return
	}
	_, err = repo.Create(ctx, dao.Puzzle{UserID: owner, Seed: "BBBBBB"})
	if !assert.NoError(err) {
		return
	}
	_, err = repo.Create(ctx, dao.Puzzle{UserID: other, Seed: "CCCCCC"})
	if !assert.NoError(err) {
		return
	}

	owned, err := repo.GetAllByUser(ctx, owner)
	assert.NoError(err)
	assert.Len(owned, 2)

	none, err := repo.GetAllByUser(ctx, uuid.New())
	assert.NoError(err)
	assert.Empty(none)

	// moving a puzzle to another user updates the index
	first.UserID = other
	_, err = repo.Update(ctx, first.ID, first)
	if !assert.NoError(err) {
		return
	}
	owned, _ = repo.GetAllByUser(ctx, owner)
	assert.Len(owned, 1)
	owned, _ = repo.GetAllByUser(ctx, other)
	assert.Len(owned, 2)

	_, err = repo.Delete(ctx, first.ID)
	assert.NoError(err)
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
	owned, _ = repo.GetAllByUser(ctx, other)
	assert.Len(owned, 1)
}
