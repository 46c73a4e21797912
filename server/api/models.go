package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/codex/internal/cyk"
	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/server/cxs"
	"github.com/dekarrin/codex/server/dao"
)

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type InfoModel struct {
	Version struct {
		Codex  string `json:"codex"`
		Server string `json:"server"`
	} `json:"version"`
	Difficulties []string `json:"difficulties"`
}

type UserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UserModel is a user as shown to clients. It never includes the password.
type UserModel struct {
	URI            string `json:"uri"`
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role"`
	CurrentPuzzle  string `json:"current_puzzle,omitempty"`
	PuzzlesSolved  int    `json:"puzzles_solved"`
	Created        string `json:"created"`
	Modified       string `json:"modified"`
	LastLogoutTime string `json:"last_logout,omitempty"`
	LastLoginTime  string `json:"last_login,omitempty"`
}

type PuzzleCreateRequest struct {
	Difficulty string `json:"difficulty"`
	Seed       string `json:"seed"`
}

type DifficultyModel struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Symbols      int    `json:"symbols"`
	Rules        int    `json:"rules"`
	ExampleCount int    `json:"examples"`
	MinLength    int    `json:"min_length"`
	MaxLength    int    `json:"max_length"`
}

// PuzzleModel is a puzzle as shown to a player. It never includes the hidden
// grammar.
type PuzzleModel struct {
	URI        string          `json:"uri"`
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Seed       string          `json:"seed"`
	Difficulty DifficultyModel `json:"difficulty"`
	Examples   [][]int         `json:"examples"`
	Rules      []string        `json:"rules"`
	Attempts   int             `json:"attempts"`
	Solved     bool            `json:"solved"`
	Created    string          `json:"created"`
	Modified   string          `json:"modified"`
}

type AttemptRequest struct {
	Rules []string `json:"rules"`
}

type StepModel struct {
	Symbols []int  `json:"symbols"`
	Rule    string `json:"rule,omitempty"`
	Index   int    `json:"index"`
}

type ExampleResultModel struct {
	Symbols    []int       `json:"symbols"`
	Parsable   bool        `json:"parsable"`
	Derivation []StepModel `json:"derivation,omitempty"`
}

type AttemptModel struct {
	Puzzle   PuzzleModel          `json:"puzzle"`
	Examples []ExampleResultModel `json:"examples"`
	Solved   bool                 `json:"solved"`
}

func userModel(u dao.User) UserModel {
	m := UserModel{
		URI:           PathPrefix + "/users/" + u.ID.String(),
		ID:            u.ID.String(),
		Username:      u.Username,
		Role:          u.Role.String(),
		PuzzlesSolved: u.PuzzlesSolved,
		Created:       u.Created.Format(time.RFC3339),
		Modified:      u.Modified.Format(time.RFC3339),
	}
	if u.Email != nil {
		m.Email = u.Email.Address
	}
	if u.CurrentPuzzle != uuid.Nil {
		m.CurrentPuzzle = PathPrefix + "/puzzles/" + u.CurrentPuzzle.String()
	}
	if !u.LastLogoutTime.IsZero() {
		m.LastLogoutTime = u.LastLogoutTime.Format(time.RFC3339)
	}
	if !u.LastLoginTime.IsZero() {
		m.LastLoginTime = u.LastLoginTime.Format(time.RFC3339)
	}
	return m
}

func symbolInts(seq []grammar.Symbol) []int {
	ints := make([]int, len(seq))
	for i := range seq {
		ints[i] = int(seq[i])
	}
	return ints
}

func puzzleModel(p dao.Puzzle) PuzzleModel {
	m := PuzzleModel{
		URI:    PathPrefix + "/puzzles/" + p.ID.String(),
		ID:     p.ID.String(),
		UserID: p.UserID.String(),
		Seed:   p.Seed,
		Difficulty: DifficultyModel{
			Key:          p.Difficulty.Key,
			Label:        p.Difficulty.Label,
			Symbols:      p.Difficulty.Symbols,
			Rules:        p.Difficulty.Rules,
			ExampleCount: p.Difficulty.ExampleCount,
			MinLength:    p.Difficulty.MinLength(),
			MaxLength:    p.Difficulty.StringLength,
		},
		Examples: make([][]int, len(p.Examples)),
		Rules:    append([]string{}, p.Rules...),
		Attempts: p.Attempts,
		Solved:   p.Solved,
		Created:  p.Created.Format(time.RFC3339),
		Modified: p.Modified.Format(time.RFC3339),
	}
	for i := range p.Examples {
		m.Examples[i] = symbolInts(p.Examples[i].Result)
	}
	return m
}

func stepModels(steps []cyk.Step) []StepModel {
	models := make([]StepModel, len(steps))
	for i := range steps {
		models[i] = StepModel{
			Symbols: symbolInts(steps[i].Symbols()),
			Index:   steps[i].ReplacedIndex,
		}
		if steps[i].Rule != nil {
			models[i].Rule = steps[i].Rule.String()
		}
	}
	return models
}

func attemptModel(att cxs.Attempt) AttemptModel {
	m := AttemptModel{
		Puzzle:   puzzleModel(att.Puzzle),
		Examples: make([]ExampleResultModel, len(att.Puzzle.Examples)),
		Solved:   att.Solved,
	}
	for i := range att.Puzzle.Examples {
		m.Examples[i] = ExampleResultModel{
			Symbols:  symbolInts(att.Puzzle.Examples[i].Result),
			Parsable: i < len(att.Parsable) && att.Parsable[i],
		}
		if i < len(att.Derivations) && att.Derivations[i] != nil {
			m.Examples[i].Derivation = stepModels(att.Derivations[i])
		}
	}
	return m
}
