// Package api provides HTTP API endpoints for the codex puzzle server.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/codex/server/cxs"
	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/middle"
	"github.com/dekarrin/codex/server/result"
	"github.com/dekarrin/codex/server/serr"
)

// PathPrefix is where the API is mounted. Every path of the API starts with
// it.
const PathPrefix = "/api/v1"

// API serves HTTP requests by calling into a cxs.Service. Each HTTP* method
// gives the handler for one endpoint, to be registered with a router.
//
// For direct access to the backend from Go code, use [cxs.Service] instead.
type API struct {
	// Backend does the actual work of each request.
	Backend cxs.Service

	// UnauthDelay is how long to wait before responding with an HTTP-401,
	// HTTP-403, or HTTP-500.
	UnauthDelay time.Duration

	// Secret signs JWTs.
	Secret []byte
}

// EndpointFunc handles a request and gives the Result to respond with.
type EndpointFunc func(req *http.Request) result.Result

// handler wraps ep into an http.HandlerFunc that logs and writes its Result.
// A panic in ep becomes an HTTP-500.
func (api API) handler(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				r := result.TextErr(
					http.StatusInternalServerError,
					"An internal server error occurred",
					"panic: %v\nSTACK TRACE: %s", p, debug.Stack(),
				)
				logResponse(req, r)
				r.WriteResponse(w)
			}
		}()

		r := ep(req)
		if r.Status == 0 {
			r = result.InternalServerError("endpoint result was never populated")
		} else if err := r.PrepareMarshaledResponse(); err != nil {
			r = result.InternalServerError("could not marshal JSON response: " + err.Error())
		}

		logResponse(req, r)

		switch r.Status {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError:
			time.Sleep(api.UnauthDelay)
		}

		r.WriteResponse(w)
	}
}

func logResponse(req *http.Request, r result.Result) {
	level := "INFO"
	if r.IsErr {
		level = "ERROR"
	}

	// the client's ephemeral port is noise
	client, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		client = req.RemoteAddr
	}

	log.Printf("%-5s %s %s %s: HTTP-%d %s", level, client, req.Method, req.URL.Path, r.Status, r.InternalMsg)
}

// authUser returns the logged-in user that the auth middleware put in the
// request context.
func authUser(req *http.Request) dao.User {
	return req.Context().Value(middle.AuthUser).(dao.User)
}

// pathID returns the "id" URI parameter. It returns false if there is none or
// it is not a UUID.
func pathID(req *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	return id, err == nil
}

// decodeJSON reads the JSON body of req into v, which must be a pointer. If
// the body is not valid JSON, the returned error matches serr.ErrBodyUnmarshal.
func decodeJSON(req *http.Request, v interface{}) error {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}
	return nil
}

// badIDResult is the Result for a request whose URI ID is not usable.
func badIDResult(req *http.Request) result.Result {
	return result.BadRequest("ID is not valid", "bad ID %q in %s", chi.URLParam(req, "id"), req.URL.Path)
}
