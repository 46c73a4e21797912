package cxs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/codex/internal/cyk"
	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/puzzle"
	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/serr"
)

// Attempt is the outcome of checking a set of player rules against a puzzle.
type Attempt struct {
	// Puzzle is the puzzle as it was stored after the attempt.
	Puzzle dao.Puzzle

	// Parsable gives, for each example in order, whether the rules derive it.
	Parsable []bool

	// Derivations gives, for each example in order, its derivation under the
	// rules. It is nil for examples the rules do not derive.
	Derivations [][]cyk.Step

	// Solved is whether the rules derive every example.
	Solved bool
}

// CreatePuzzle generates a new puzzle for the given user. diffKey selects one
// of the service's difficulties; if it is empty, the default is used. seed may
// be empty to have one generated.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if the
// difficulty or seed is invalid, serr.ErrNotFound if the user does not exist,
// and serr.ErrDB if there was an unexpected problem with the DB.
func (svc Service) CreatePuzzle(ctx context.Context, userID uuid.UUID, diffKey, seed string) (dao.Puzzle, error) {
	diff := svc.presets().DefaultDifficulty()
	if diffKey != "" {
		var ok bool
		diff, ok = svc.presets().Find(diffKey)
		if !ok {
			return dao.Puzzle{}, serr.New(fmt.Sprintf("difficulty %q does not exist", diffKey), serr.ErrBadArgument)
		}
	}

	user, err := svc.DB.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Puzzle{}, serr.New("user not found", serr.ErrNotFound)
		}
		return dao.Puzzle{}, serr.WrapDB("could not get user", err)
	}

	p, err := puzzle.New(diff, seed)
	if err != nil {
		if errors.Is(err, puzzle.ErrInvalidSeed) {
			return dao.Puzzle{}, serr.New("seed is not valid", err, serr.ErrBadArgument)
		}
		return dao.Puzzle{}, serr.New("could not generate puzzle", err)
	}

	created, err := svc.DB.Puzzles().Create(ctx, dao.Puzzle{
		UserID:     userID,
		Seed:       p.Seed,
		Difficulty: p.Difficulty,
		Grammar:    p.Grammar,
		Examples:   p.Examples,
	})
	if err != nil {
		return dao.Puzzle{}, serr.WrapDB("could not create puzzle", err)
	}

	user.CurrentPuzzle = created.ID
	if _, err := svc.DB.Users().Update(ctx, user.ID, user); err != nil {
		return dao.Puzzle{}, serr.WrapDB("could not set user's current puzzle", err)
	}

	return created, nil
}

// GetCurrentPuzzle returns the puzzle the given user most recently started.
//
// The returned error, if non-nil, will match serr.ErrNotFound if the user does
// not exist or has no current puzzle, and serr.ErrDB if there was an
// unexpected problem with the DB.
func (svc Service) GetCurrentPuzzle(ctx context.Context, userID uuid.UUID) (dao.Puzzle, error) {
	user, err := svc.DB.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Puzzle{}, serr.New("user not found", serr.ErrNotFound)
		}
		return dao.Puzzle{}, serr.WrapDB("could not get user", err)
	}
	if user.CurrentPuzzle == uuid.Nil {
		return dao.Puzzle{}, serr.New("user has no current puzzle", serr.ErrNotFound)
	}

	return svc.GetPuzzle(ctx, user.CurrentPuzzle.String())
}

// GetPuzzle returns the puzzle with the given ID.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if id is not
// a valid ID, serr.ErrNotFound if there is no such puzzle, and serr.ErrDB if
// there was an unexpected problem with the DB.
func (svc Service) GetPuzzle(ctx context.Context, id string) (dao.Puzzle, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Puzzle{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	p, err := svc.DB.Puzzles().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Puzzle{}, serr.ErrNotFound
		}
		return dao.Puzzle{}, serr.WrapDB("could not get puzzle", err)
	}

	return p, nil
}

// GetAllPuzzles returns every puzzle in persistence.
func (svc Service) GetAllPuzzles(ctx context.Context) ([]dao.Puzzle, error) {
	all, err := svc.DB.Puzzles().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return all, nil
}

// GetUserPuzzles returns every puzzle owned by the given user.
func (svc Service) GetUserPuzzles(ctx context.Context, userID uuid.UUID) ([]dao.Puzzle, error) {
	all, err := svc.DB.Puzzles().GetAllByUser(ctx, userID)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return all, nil
}

// DeletePuzzle deletes the puzzle with the given ID and returns it as it was
// just before deletion.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if id is not
// a valid ID, serr.ErrNotFound if there is no such puzzle, and serr.ErrDB if
// there was an unexpected problem with the DB.
func (svc Service) DeletePuzzle(ctx context.Context, id string) (dao.Puzzle, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Puzzle{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	p, err := svc.DB.Puzzles().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Puzzle{}, serr.ErrNotFound
		}
		return dao.Puzzle{}, serr.WrapDB("could not delete puzzle", err)
	}

	err = svc.updateOwner(ctx, p.UserID, func(owner *dao.User) bool {
		if owner.CurrentPuzzle != p.ID {
			return false
		}
		owner.CurrentPuzzle = uuid.Nil
		return true
	})
	if err != nil {
		return p, serr.WrapDB("could not clear user's current puzzle", err)
	}

	return p, nil
}

// SubmitAttempt checks the given rules against the examples of the puzzle
// with the given ID. Each entry of rules is one line of rule text such as
// "1 -> 2 3" or "1 -> 2 3 | 3 2". The rules are saved as the puzzle's latest
// attempt, and once an attempt solves the puzzle it stays solved.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if id is not
// a valid ID, a rule is malformed, or a rule uses a symbol outside of the
// puzzle's alphabet, serr.ErrNotFound if there is no such
// puzzle, and serr.ErrDB if there was an unexpected problem with the DB.
func (svc Service) SubmitAttempt(ctx context.Context, id string, rules []string) (Attempt, error) {
	p, err := svc.GetPuzzle(ctx, id)
	if err != nil {
		return Attempt{}, err
	}

	g, err := parseAttemptRules(rules, grammar.Symbol(p.Difficulty.Symbols))
	if err != nil {
		return Attempt{}, err
	}

	sess := puzzle.NewSession(puzzle.Puzzle{
		Seed:       p.Seed,
		Difficulty: p.Difficulty,
		Grammar:    p.Grammar,
		Examples:   p.Examples,
	})

	att := Attempt{
		Parsable:    sess.Check(g),
		Derivations: make([][]cyk.Step, len(p.Examples)),
		Solved:      sess.Solved(),
	}
	for i := range att.Derivations {
		if steps, ok := sess.DerivationSteps(i); ok {
			att.Derivations[i] = steps
		}
	}

	p.Rules = make([]string, 0, len(rules))
	for _, r := range rules {
		p.Rules = append(p.Rules, strings.TrimSpace(r))
	}
	firstSolve := att.Solved && !p.Solved
	p.Attempts++
	p.Solved = p.Solved || att.Solved

	att.Puzzle, err = svc.DB.Puzzles().Update(ctx, p.ID, p)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return Attempt{}, serr.ErrNotFound
		}
		return Attempt{}, serr.WrapDB("could not save attempt", err)
	}

	if firstSolve {
		err = svc.updateOwner(ctx, p.UserID, func(owner *dao.User) bool {
			owner.PuzzlesSolved++
			return true
		})
		if err != nil {
			return att, serr.WrapDB("could not update user's solved count", err)
		}
	}

	return att, nil
}

// parseAttemptRules parses player rule lines into a grammar whose symbols all
// fall within 1..maxSym.
func parseAttemptRules(rules []string, maxSym grammar.Symbol) (grammar.Grammar, error) {
	g := grammar.Grammar{}
	for i, line := range rules {
		if strings.TrimSpace(line) == "" {
			return nil, serr.New(fmt.Sprintf("rule %d is blank", i+1), serr.ErrBadArgument)
		}
		parsed, err := grammar.ParseRuleLine(line)
		if err != nil {
			return nil, serr.New(fmt.Sprintf("rule %d", i+1), err, serr.ErrBadArgument)
		}
		for _, r := range parsed {
			for _, sym := range []grammar.Symbol{r.LHS, r.RHS[0], r.RHS[1]} {
				if sym > maxSym {
					msg := fmt.Sprintf("rule %d: symbol %s is not used in this puzzle; symbols go from %s to %s", i+1, sym, grammar.Start, maxSym)
					return nil, serr.New(msg, serr.ErrBadArgument)
				}
			}
			g.Add(r)
		}
	}
	return g, nil
}

// updateOwner applies change to the user with the given ID and saves them if
// change returns true. A user that no longer exists is not an error.
func (svc Service) updateOwner(ctx context.Context, userID uuid.UUID, change func(*dao.User) bool) error {
	owner, err := svc.DB.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil
		}
		return err
	}

	if !change(&owner) {
		return nil
	}
	_, err = svc.DB.Users().Update(ctx, owner.ID, owner)
	return err
}
