package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/util"
	"github.com/dekarrin/codex/server/dao"
)

func NewPuzzlesRepository() *InMemoryPuzzlesRepository {
	return &InMemoryPuzzlesRepository{
		puzzles:       make(map[uuid.UUID]dao.Puzzle),
		byUserIDIndex: make(map[uuid.UUID][]uuid.UUID),
	}
}

type InMemoryPuzzlesRepository struct {
	mtx           sync.RWMutex
	puzzles       map[uuid.UUID]dao.Puzzle
	byUserIDIndex map[uuid.UUID][]uuid.UUID
}

func (impr *InMemoryPuzzlesRepository) Close() error {
	return nil
}

func (impr *InMemoryPuzzlesRepository) Create(ctx context.Context, p dao.Puzzle) (dao.Puzzle, error) {
	impr.mtx.Lock()
	defer impr.mtx.Unlock()

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Puzzle{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()

	p.ID = newUUID
	p.Created = now
	p.Modified = now
	p = copyPuzzle(p)

	impr.puzzles[p.ID] = p
	impr.byUserIDIndex[p.UserID] = append(impr.byUserIDIndex[p.UserID], p.ID)

	return copyPuzzle(p), nil
}

func (impr *InMemoryPuzzlesRepository) GetAll(ctx context.Context) ([]dao.Puzzle, error) {
	impr.mtx.RLock()
	defer impr.mtx.RUnlock()

	all := make([]dao.Puzzle, 0, len(impr.puzzles))
	for k := range impr.puzzles {
		all = append(all, copyPuzzle(impr.puzzles[k]))
	}

	all = util.SortBy(all, func(l, r dao.Puzzle) bool {
		return l.ID.String() < r.ID.String()
	})

	return all, nil
}

func (impr *InMemoryPuzzlesRepository) GetAllByUser(ctx context.Context, id uuid.UUID) ([]dao.Puzzle, error) {
	impr.mtx.RLock()
	defer impr.mtx.RUnlock()

	byUser := impr.byUserIDIndex[id]

	all := make([]dao.Puzzle, len(byUser))
	for i := range byUser {
		all[i] = copyPuzzle(impr.puzzles[byUser[i]])
	}

	all = util.SortBy(all, func(l, r dao.Puzzle) bool {
		return l.ID.String() < r.ID.String()
	})

	return all, nil
}

func (impr *InMemoryPuzzlesRepository) Update(ctx context.Context, id uuid.UUID, p dao.Puzzle) (dao.Puzzle, error) {
	impr.mtx.Lock()
	defer impr.mtx.Unlock()

	existing, ok := impr.puzzles[id]
	if !ok {
		return dao.Puzzle{}, dao.ErrNotFound
	}

	// check for conflicts on this table only
	// (inmem does not support enforcement of foreign keys)
	if p.ID != id {
		if _, ok := impr.puzzles[p.ID]; ok {
			return dao.Puzzle{}, dao.ErrConstraintViolation
		}
	}

	p.Created = existing.Created
	p.Modified = time.Now()
	p = copyPuzzle(p)

	impr.puzzles[p.ID] = p
	if p.ID != id {
		delete(impr.puzzles, id)
	}

	if p.ID != id || p.UserID != existing.UserID {
		// remove from the old index entry and put it into the new one
		updated := util.SliceRemove(id, impr.byUserIDIndex[existing.UserID])
		if len(updated) < 1 {
			delete(impr.byUserIDIndex, existing.UserID)
		} else {
			impr.byUserIDIndex[existing.UserID] = updated
		}
		impr.byUserIDIndex[p.UserID] = append(impr.byUserIDIndex[p.UserID], p.ID)
	}

	return copyPuzzle(p), nil
}

func (impr *InMemoryPuzzlesRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Puzzle, error) {
	impr.mtx.RLock()
	defer impr.mtx.RUnlock()

	p, ok := impr.puzzles[id]
	if !ok {
		return dao.Puzzle{}, dao.ErrNotFound
	}

	return copyPuzzle(p), nil
}

func (impr *InMemoryPuzzlesRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Puzzle, error) {
	impr.mtx.Lock()
	defer impr.mtx.Unlock()

	p, ok := impr.puzzles[id]
	if !ok {
		return dao.Puzzle{}, dao.ErrNotFound
	}

	updated := util.SliceRemove(p.ID, impr.byUserIDIndex[p.UserID])
	if len(updated) < 1 {
		delete(impr.byUserIDIndex, p.UserID)
	} else {
		impr.byUserIDIndex[p.UserID] = updated
	}
	delete(impr.puzzles, p.ID)

	return p, nil
}

// copyPuzzle gives a copy of p that shares no mutable state with p.
func copyPuzzle(p dao.Puzzle) dao.Puzzle {
	p.Grammar = p.Grammar.Copy()
	p.Examples = append([]grammar.Example(nil), p.Examples...)
	p.Rules = append([]string(nil), p.Rules...)
	return p
}
