// Package sqlite provides a dao.Store that persists data in SQLite database
// files in a data directory.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"modernc.org/sqlite"

	"github.com/dekarrin/codex/server/dao"
)

type store struct {
	dbFilename string

	db *sql.DB

	users   *UsersDB
	puzzles *PuzzlesDB
}

func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "data.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	// foreign keys are off by default in sqlite and must be enabled on each
	// connection
	st.db.SetMaxOpenConns(1)
	if _, err := st.db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, wrapDBError(err)
	}

	st.users = &UsersDB{db: st.db}
	if err := st.users.init(); err != nil {
		return nil, fmt.Errorf("init users table: %w", err)
	}

	st.puzzles = &PuzzlesDB{db: st.db}
	if err := st.puzzles.init(); err != nil {
		return nil, fmt.Errorf("init puzzles table: %w", err)
	}

	return st, nil
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Puzzles() dao.PuzzleRepository {
	return s.puzzles
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// SQLITE_CONSTRAINT and its extended codes all have 19 as the primary
		// result code in the low byte.
		if sqliteErr.Code()&0xff == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
