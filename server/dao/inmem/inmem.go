// Package inmem provides a dao.Store that keeps all data in memory. Nothing is
// persisted once the process exits.
package inmem

import (
	"fmt"

	"github.com/dekarrin/codex/server/dao"
)

type store struct {
	users   *InMemoryUsersRepository
	puzzles *InMemoryPuzzlesRepository
}

func NewDatastore() dao.Store {
	return &store{
		users:   NewUsersRepository(),
		puzzles: NewPuzzlesRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Puzzles() dao.PuzzleRepository {
	return s.puzzles
}

func (s *store) Close() error {
	var err error

	if nextErr := s.users.Close(); nextErr != nil {
		err = nextErr
	}
	if nextErr := s.puzzles.Close(); nextErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}

	return err
}
