package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/result"
	"github.com/dekarrin/codex/server/serr"
)

// HTTPCreatePuzzle returns a HandlerFunc that generates a new puzzle owned by
// the logged-in user.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPCreatePuzzle() http.HandlerFunc {
	return api.handler(api.epCreatePuzzle)
}

func (api API) epCreatePuzzle(req *http.Request) result.Result {
	user := authUser(req)

	var createReq PuzzleCreateRequest
	err := decodeJSON(req, &createReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	p, err := api.Backend.CreatePuzzle(req.Context(), user.ID, createReq.Difficulty, createReq.Seed)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(puzzleModel(p), "user '%s' created puzzle %s (%s %s)", user.Username, p.ID, p.Difficulty.Key, p.Seed)
}

// HTTPGetAllPuzzles returns a HandlerFunc that gets the puzzles of the
// logged-in user. An admin user gets every puzzle.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPGetAllPuzzles() http.HandlerFunc {
	return api.handler(api.epGetAllPuzzles)
}

func (api API) epGetAllPuzzles(req *http.Request) result.Result {
	user := authUser(req)

	var puzzles []dao.Puzzle
	var err error
	if user.Role == dao.Admin {
		puzzles, err = api.Backend.GetAllPuzzles(req.Context())
	} else {
		puzzles, err = api.Backend.GetUserPuzzles(req.Context(), user.ID)
	}
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]PuzzleModel, len(puzzles))
	for i := range puzzles {
		resp[i] = puzzleModel(puzzles[i])
	}

	return result.OK(resp, "user '%s' got %d puzzle(s)", user.Username, len(resp))
}

// HTTPGetPuzzle returns a HandlerFunc that gets a puzzle. Users may only get
// their own puzzles unless they are an admin.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the puzzle and the logged-in user of the client making the
// request.
func (api API) HTTPGetPuzzle() http.HandlerFunc {
	return api.handler(api.epGetPuzzle)
}

func (api API) epGetPuzzle(req *http.Request) result.Result {
	p, errResult, ok := api.ownedPuzzle(req, "get")
	if !ok {
		return errResult
	}
	user := authUser(req)

	return result.OK(puzzleModel(p), "user '%s' got puzzle %s", user.Username, p.ID)
}

// HTTPGetCurrentPuzzle returns a HandlerFunc that gets the puzzle the
// logged-in user most recently started.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPGetCurrentPuzzle() http.HandlerFunc {
	return api.handler(api.epGetCurrentPuzzle)
}

func (api API) epGetCurrentPuzzle(req *http.Request) result.Result {
	user := authUser(req)

	p, err := api.Backend.GetCurrentPuzzle(req.Context(), user.ID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound("user '%s' has no current puzzle", user.Username)
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(puzzleModel(p), "user '%s' got current puzzle %s", user.Username, p.ID)
}

// HTTPDeletePuzzle returns a HandlerFunc that deletes a puzzle. Users may only
// delete their own puzzles unless they are an admin.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the puzzle and the logged-in user of the client making the
// request.
func (api API) HTTPDeletePuzzle() http.HandlerFunc {
	return api.handler(api.epDeletePuzzle)
}

func (api API) epDeletePuzzle(req *http.Request) result.Result {
	p, errResult, ok := api.ownedPuzzle(req, "delete")
	if !ok {
		return errResult
	}
	user := authUser(req)

	_, err := api.Backend.DeletePuzzle(req.Context(), p.ID.String())
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		return result.InternalServerError("could not delete puzzle: " + err.Error())
	}

	return result.NoContent("user '%s' deleted puzzle %s", user.Username, p.ID)
}

// HTTPCreateAttempt returns a HandlerFunc that checks a set of rules against a
// puzzle's examples. Users may only make attempts on their own puzzles.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the puzzle and the logged-in user of the client making the
// request.
func (api API) HTTPCreateAttempt() http.HandlerFunc {
	return api.handler(api.epCreateAttempt)
}

func (api API) epCreateAttempt(req *http.Request) result.Result {
	user := authUser(req)

	var attemptReq AttemptRequest
	err := decodeJSON(req, &attemptReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	p, errResult, ok := api.ownedPuzzle(req, "attempt")
	if !ok {
		return errResult
	}
	if p.UserID != user.ID {
		// admins can see other players' puzzles but not play them
		return result.Forbidden("user '%s' attempt on puzzle %s of user %s: forbidden", user.Username, p.ID, p.UserID)
	}

	att, err := api.Backend.SubmitAttempt(req.Context(), p.ID.String(), attemptReq.Rules)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		} else if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	solvedCount := 0
	for _, parsable := range att.Parsable {
		if parsable {
			solvedCount++
		}
	}

	return result.Created(attemptModel(att), "user '%s' attempt on puzzle %s: %d/%d", user.Username, p.ID, solvedCount, len(att.Parsable))
}

// ownedPuzzle gets the puzzle named by the ID in the request URI and checks
// that the logged-in user may access it. If they may not, or the puzzle cannot
// be retrieved, it returns false along with the Result to respond with.
func (api API) ownedPuzzle(req *http.Request, action string) (dao.Puzzle, result.Result, bool) {
	id, ok := pathID(req)
	if !ok {
		return dao.Puzzle{}, badIDResult(req), false
	}
	user := authUser(req)

	p, err := api.Backend.GetPuzzle(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return dao.Puzzle{}, result.NotFound(), false
		} else if errors.Is(err, serr.ErrBadArgument) {
			return dao.Puzzle{}, result.BadRequest(err.Error(), err.Error()), false
		}
		return dao.Puzzle{}, result.InternalServerError("could not get puzzle: " + err.Error()), false
	}

	if p.UserID != user.ID && user.Role != dao.Admin {
		// do not reveal that the puzzle exists
		return dao.Puzzle{}, result.NotFound("user '%s' (role %s) %s puzzle %s of another user", user.Username, user.Role, action, id), false
	}

	return p, result.Result{}, true
}
