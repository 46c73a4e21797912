package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/codex/server/dao"
)

// userColumns is the column order that scanUser reads.
const userColumns = `id, username, password, role, email, current_puzzle, puzzles_solved, created, modified, last_logout_time, last_login_time`

type UsersDB struct {
	db *sql.DB
}

func (repo *UsersDB) init() error {
	// current_puzzle is not a foreign key since puzzles already refer to
	// users; a stale value is cleared by the service layer.
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		email TEXT NOT NULL,
		current_puzzle TEXT NOT NULL,
		puzzles_solved INTEGER NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL,
		last_logout_time INTEGER NOT NULL,
		last_login_time INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *UsersDB) Create(ctx context.Context, user dao.User) (dao.User, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.User{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := convertToDB_Time(time.Now())
	_, err = repo.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		convertToDB_UUID(newUUID),
		user.Username,
		user.Password,
		convertToDB_Role(user.Role),
		convertToDB_Email(user.Email),
		convertToDB_UUID(user.CurrentPuzzle),
		user.PuzzlesSolved,
		now,
		now,
		now,
		convertToDB_Time(time.Time{}),
	)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *UsersDB) GetByID(ctx context.Context, id uuid.UUID) (dao.User, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?;`, convertToDB_UUID(id))
	return scanUser(row)
}

func (repo *UsersDB) GetByUsername(ctx context.Context, username string) (dao.User, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?;`, username)
	return scanUser(row)
}

func (repo *UsersDB) GetAll(ctx context.Context) ([]dao.User, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	all := []dao.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return all, err
		}
		all = append(all, user)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *UsersDB) Update(ctx context.Context, id uuid.UUID, user dao.User) (dao.User, error) {
	// created is never changed after insert
	res, err := repo.db.ExecContext(ctx, `UPDATE users SET id=?, username=?, password=?, role=?, email=?, current_puzzle=?, puzzles_solved=?, modified=?, last_logout_time=?, last_login_time=? WHERE id=?;`,
		convertToDB_UUID(user.ID),
		user.Username,
		user.Password,
		convertToDB_Role(user.Role),
		convertToDB_Email(user.Email),
		convertToDB_UUID(user.CurrentPuzzle),
		user.PuzzlesSolved,
		convertToDB_Time(time.Now()),
		convertToDB_Time(user.LastLogoutTime),
		convertToDB_Time(user.LastLoginTime),
		convertToDB_UUID(id),
	)
	if err := requireAffected(res, err); err != nil {
		return dao.User{}, err
	}

	return repo.GetByID(ctx, user.ID)
}

func (repo *UsersDB) Delete(ctx context.Context, id uuid.UUID) (dao.User, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return user, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?;`, convertToDB_UUID(id))
	if err := requireAffected(res, err); err != nil {
		return user, err
	}

	return user, nil
}

func (repo *UsersDB) Close() error {
	return repo.db.Close()
}

// requireAffected checks the result of a statement meant to change exactly one
// existing row. It returns dao.ErrNotFound if nothing changed.
func requireAffected(res sql.Result, execErr error) error {
	if execErr != nil {
		return wrapDBError(execErr)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err)
	}
	if n < 1 {
		return dao.ErrNotFound
	}
	return nil
}

func scanUser(row scanner) (dao.User, error) {
	var user dao.User
	var id, role, email, current string
	var created, modified, logout, login int64

	err := row.Scan(
		&id,
		&user.Username,
		&user.Password,
		&role,
		&email,
		&current,
		&user.PuzzlesSolved,
		&created,
		&modified,
		&logout,
		&login,
	)
	if err != nil {
		return user, wrapDBError(err)
	}

	conversions := []struct {
		field string
		err   error
	}{
		{"id", convertFromDB_UUID(id, &user.ID)},
		{"role", convertFromDB_Role(role, &user.Role)},
		{"email", convertFromDB_Email(email, &user.Email)},
		{"current_puzzle", convertFromDB_UUID(current, &user.CurrentPuzzle)},
		{"created", convertFromDB_Time(created, &user.Created)},
		{"modified", convertFromDB_Time(modified, &user.Modified)},
		{"last_logout_time", convertFromDB_Time(logout, &user.LastLogoutTime)},
		{"last_login_time", convertFromDB_Time(login, &user.LastLoginTime)},
	}
	for _, c := range conversions {
		if c.err != nil {
			return user, fmt.Errorf("stored %s is invalid: %w", c.field, c.err)
		}
	}

	return user, nil
}
