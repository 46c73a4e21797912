// Package middle contains middleware for use with the codex puzzle server.
package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/result"
	"github.com/dekarrin/codex/server/token"
)

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthUser
)

// AuthHandler is middleware that extracts the bearer token from a request and
// looks up the user it was issued to.
//
// Before passing the request on, it sets AuthUser in the request context to
// the logged-in user (or the default user if there is none) and AuthLoggedIn
// to whether a valid token was present. If auth is required, a request without
// a valid token gets an HTTP-401 and is not passed on.
type AuthHandler struct {
	db            dao.UserRepository
	secret        []byte
	required      bool
	defaultUser   dao.User
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	user := ah.defaultUser

	tok, err := token.Get(req)
	if err == nil {
		var lookupUser dao.User
		lookupUser, err = token.Validate(req.Context(), tok, ah.secret, ah.db)
		if err == nil {
			user = lookupUser
			loggedIn = true
		}
	}

	if err != nil && ah.required {
		r := result.Unauthorized("", err.Error())
		time.Sleep(ah.unauthedDelay)
		r.WriteResponse(w)
		return
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthUser, user)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

// RequireAuth returns middleware that rejects requests that do not carry a
// valid token.
func RequireAuth(db dao.UserRepository, secret []byte, unauthDelay time.Duration, defaultUser dao.User) Middleware {
	return authMiddleware(db, secret, unauthDelay, defaultUser, true)
}

// OptionalAuth returns middleware that looks up the user if a valid token is
// present but passes every request on.
func OptionalAuth(db dao.UserRepository, secret []byte, unauthDelay time.Duration, defaultUser dao.User) Middleware {
	return authMiddleware(db, secret, unauthDelay, defaultUser, false)
}

func authMiddleware(db dao.UserRepository, secret []byte, unauthDelay time.Duration, defaultUser dao.User, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			defaultUser:   defaultUser,
			required:      required,
			next:          next,
		}
	}
}
