// Package dao provides data access objects for use in the codex puzzle server.
package dao

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/puzzle"
)

// Store holds all the repositories.
type Store interface {
	Users() UserRepository
	Puzzles() PuzzleRepository
	Close() error
}

type UserRepository interface {

	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)

	// GetAll returns every user, ordered by ID.
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
	Close() error
}

type PuzzleRepository interface {

	// Create creates a new Puzzle. All attributes except for auto-generated
	// fields are taken from the provided Puzzle.
	Create(ctx context.Context, p Puzzle) (Puzzle, error)
	GetByID(ctx context.Context, id uuid.UUID) (Puzzle, error)

	// GetAll returns every puzzle, ordered by ID.
	GetAll(ctx context.Context) ([]Puzzle, error)

	// GetAllByUser returns every puzzle owned by the given user, ordered by
	// ID. A user with no puzzles gives an empty slice, not an error.
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Puzzle, error)
	Update(ctx context.Context, id uuid.UUID, p Puzzle) (Puzzle, error)
	Delete(ctx context.Context, id uuid.UUID) (Puzzle, error)
	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID
	Username       string
	Password       string
	Email          *mail.Address
	Role           Role
	Created        time.Time
	Modified       time.Time
	LastLogoutTime time.Time
	LastLoginTime  time.Time

	// CurrentPuzzle is the puzzle the user most recently started, or uuid.Nil
	// if they have none.
	CurrentPuzzle uuid.UUID

	// PuzzlesSolved is the number of puzzles the user has solved. It is not
	// reduced when a solved puzzle is deleted.
	PuzzlesSolved int
}

// Puzzle is a puzzle being played by a user, along with the state of their
// play. The hidden grammar is stored so that the puzzle does not need to be
// regenerated from its seed on every attempt.
type Puzzle struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Seed       string
	Difficulty puzzle.Difficulty
	Grammar    grammar.Grammar
	Examples   []grammar.Example

	// Rules is the text of the rules in the most recent attempt.
	Rules []string

	Attempts int
	Solved   bool
	Created  time.Time
	Modified time.Time
}
