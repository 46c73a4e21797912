package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/codex/server/dao"
)

type PuzzlesDB struct {
	db *sql.DB
}

func (repo *PuzzlesDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS puzzles (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE,
		seed TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		state TEXT NOT NULL,
		rules TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		solved INTEGER NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *PuzzlesDB) Create(ctx context.Context, p dao.Puzzle) (dao.Puzzle, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Puzzle{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO puzzles (id, user_id, seed, difficulty, state, rules, attempts, solved, created, modified) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Puzzle{}, wrapDBError(err)
	}
	defer stmt.Close()

	state := puzzleState{diff: p.Difficulty, g: p.Grammar, examples: p.Examples}

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(p.UserID),
		p.Seed,
		p.Difficulty.Key,
		convertToDB_PuzzleState(state),
		convertToDB_Rules(p.Rules),
		p.Attempts,
		convertToDB_Bool(p.Solved),
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Puzzle{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *PuzzlesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Puzzle, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, user_id, seed, state, rules, attempts, solved, created, modified FROM puzzles WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	return scanPuzzle(row)
}

func (repo *PuzzlesDB) GetAll(ctx context.Context) ([]dao.Puzzle, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, user_id, seed, state, rules, attempts, solved, created, modified FROM puzzles ORDER BY id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return scanAllPuzzles(rows)
}

func (repo *PuzzlesDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Puzzle, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, user_id, seed, state, rules, attempts, solved, created, modified FROM puzzles WHERE user_id = ? ORDER BY id;`,
		convertToDB_UUID(userID),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return scanAllPuzzles(rows)
}

func (repo *PuzzlesDB) Update(ctx context.Context, id uuid.UUID, p dao.Puzzle) (dao.Puzzle, error) {
	state := puzzleState{diff: p.Difficulty, g: p.Grammar, examples: p.Examples}

	// deliberately not updating created
	res, err := repo.db.ExecContext(ctx, `UPDATE puzzles SET id=?, user_id=?, seed=?, difficulty=?, state=?, rules=?, attempts=?, solved=?, modified=? WHERE id=?;`,
		convertToDB_UUID(p.ID),
		convertToDB_UUID(p.UserID),
		p.Seed,
		p.Difficulty.Key,
		convertToDB_PuzzleState(state),
		convertToDB_Rules(p.Rules),
		p.Attempts,
		convertToDB_Bool(p.Solved),
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err := requireAffected(res, err); err != nil {
		return dao.Puzzle{}, err
	}

	return repo.GetByID(ctx, p.ID)
}

func (repo *PuzzlesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Puzzle, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM puzzles WHERE id = ?;`, convertToDB_UUID(id))
	if err := requireAffected(res, err); err != nil {
		return curVal, err
	}

	return curVal, nil
}

func (repo *PuzzlesDB) Close() error {
	return repo.db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAllPuzzles(rows *sql.Rows) ([]dao.Puzzle, error) {
	defer rows.Close()

	all := []dao.Puzzle{}
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			return all, err
		}
		all = append(all, p)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func scanPuzzle(row scanner) (dao.Puzzle, error) {
	var p dao.Puzzle
	var id string
	var userID string
	var state string
	var rules string
	var solved int
	var created int64
	var modified int64

	err := row.Scan(
		&id,
		&userID,
		&p.Seed,
		&state,
		&rules,
		&p.Attempts,
		&solved,
		&created,
		&modified,
	)
	if err != nil {
		return p, wrapDBError(err)
	}

	err = convertFromDB_UUID(id, &p.ID)
	if err != nil {
		return p, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	err = convertFromDB_UUID(userID, &p.UserID)
	if err != nil {
		return p, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
	}
	var ps puzzleState
	err = convertFromDB_PuzzleState(state, &ps)
	if err != nil {
		return p, fmt.Errorf("stored puzzle state is invalid: %w", err)
	}
	p.Difficulty = ps.diff
	p.Grammar = ps.g
	p.Examples = ps.examples

	err = convertFromDB_Rules(rules, &p.Rules)
	if err != nil {
		return p, fmt.Errorf("stored rules are invalid: %w", err)
	}
	err = convertFromDB_Bool(solved, &p.Solved)
	if err != nil {
		return p, fmt.Errorf("stored solved flag is invalid: %w", err)
	}
	err = convertFromDB_Time(created, &p.Created)
	if err != nil {
		return p, fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}
	err = convertFromDB_Time(modified, &p.Modified)
	if err != nil {
		return p, fmt.Errorf("stored modified time %d is invalid: %w", modified, err)
	}

	return p, nil
}
