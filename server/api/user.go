package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/result"
	"github.com/dekarrin/codex/server/serr"
)

// The user handlers all require the logged-in user in the request context.
// Only an admin may list or create users. Any user may get or delete
// themselves, and an admin may get or delete anyone.

// HTTPGetAllUsers returns a HandlerFunc that lists every user.
func (api API) HTTPGetAllUsers() http.HandlerFunc {
	return api.handler(api.epGetAllUsers)
}

func (api API) epGetAllUsers(req *http.Request) result.Result {
	user := authUser(req)
	if user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) list users: forbidden", user.Username, user.Role)
	}

	users, err := api.Backend.GetAllUsers(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]UserModel, len(users))
	for i := range users {
		resp[i] = userModel(users[i])
	}
	return result.OK(resp, "user '%s' got all %d users", user.Username, len(resp))
}

// HTTPCreateUser returns a HandlerFunc that creates a user from a
// UserCreateRequest. The role defaults to normal.
func (api API) HTTPCreateUser() http.HandlerFunc {
	return api.handler(api.epCreateUser)
}

func (api API) epCreateUser(req *http.Request) result.Result {
	user := authUser(req)
	if user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) create user: forbidden", user.Username, user.Role)
	}

	var body UserCreateRequest
	if err := decodeJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	role := dao.Normal
	if body.Role != "" {
		var err error
		if role, err = dao.ParseRole(body.Role); err != nil {
			return result.BadRequest("role: "+err.Error(), "role: %s", err.Error())
		}
	}

	// the service checks for blank username and password
	created, err := api.Backend.CreateUser(req.Context(), body.Username, body.Password, body.Email, role)
	switch {
	case errors.Is(err, serr.ErrAlreadyExists):
		return result.Conflict("User with that username already exists", "user '%s' already exists", body.Username)
	case errors.Is(err, serr.ErrBadArgument):
		return result.BadRequest(err.Error(), err.Error())
	case err != nil:
		return result.InternalServerError(err.Error())
	}

	return result.Created(userModel(created), "user '%s' created user '%s' (%s)", user.Username, created.Username, created.ID)
}

// HTTPGetUser returns a HandlerFunc that gets one user, including the puzzle
// they are currently on and how many they have solved.
func (api API) HTTPGetUser() http.HandlerFunc {
	return api.handler(api.epGetUser)
}

func (api API) epGetUser(req *http.Request) result.Result {
	id, errResult, ok := selfOrAdmin(req, "get")
	if !ok {
		return errResult
	}

	found, err := api.Backend.GetUser(req.Context(), id.String())
	switch {
	case errors.Is(err, serr.ErrNotFound):
		return result.NotFound()
	case err != nil:
		return result.InternalServerError("could not get user: " + err.Error())
	}

	return result.OK(userModel(found), "user '%s' got user '%s'", authUser(req).Username, found.Username)
}

// HTTPDeleteUser returns a HandlerFunc that deletes a user along with all of
// their puzzles. Deleting a user that does not exist succeeds.
func (api API) HTTPDeleteUser() http.HandlerFunc {
	return api.handler(api.epDeleteUser)
}

func (api API) epDeleteUser(req *http.Request) result.Result {
	id, errResult, ok := selfOrAdmin(req, "delete")
	if !ok {
		return errResult
	}

	deleted, err := api.Backend.DeleteUser(req.Context(), id.String())
	if err != nil && !errors.Is(err, serr.ErrNotFound) {
		return result.InternalServerError("could not delete user: " + err.Error())
	}

	target := "user " + id.String() + " (no-op)"
	if deleted.Username != "" {
		target = "user '" + deleted.Username + "'"
	}
	return result.NoContent("user '%s' deleted %s", authUser(req).Username, target)
}

// selfOrAdmin gets the user ID from the request URI and checks that the
// logged-in user is either that user or an admin. If not, it returns false and
// the Result to respond with.
func selfOrAdmin(req *http.Request, action string) (uuid.UUID, result.Result, bool) {
	id, ok := pathID(req)
	if !ok {
		return uuid.Nil, badIDResult(req), false
	}

	user := authUser(req)
	if id != user.ID && user.Role != dao.Admin {
		return uuid.Nil, result.Forbidden("user '%s' (role %s) %s user %s: forbidden", user.Username, user.Role, action, id), false
	}
	return id, result.Result{}, true
}
