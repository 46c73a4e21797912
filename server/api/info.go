package api

import (
	"net/http"

	"github.com/dekarrin/codex/internal/version"
	"github.com/dekarrin/codex/server/middle"
	"github.com/dekarrin/codex/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server, including the difficulties puzzles can be created with.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request is logged-in.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return api.handler(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Codex = version.Current
	resp.Difficulties = api.Backend.DifficultyKeys()

	userStr := "unauthed client"
	if loggedIn {
		user := authUser(req)
		userStr = "user '" + user.Username + "'"
	}
	return result.OK(resp, "%s got API info", userStr)
}
