// Package server provides an HTTP REST server for playing codex puzzles. A
// client logs in, creates puzzles at a chosen difficulty, and submits attempts
// of player rules that are checked against each puzzle's examples.
//
// All endpoints are under /api/v1:
//
//	POST   /login                  - accepts user and password and returns a jwt.
//	DELETE /login/{id}             - logs out the user, invalidating their jwts.
//	POST   /tokens                 - refreshes the token without requiring credentials.
//	GET    /users                  - get all users (admin only).
//	POST   /users                  - create a new user account (admin only).
//	GET    /users/{id}             - get info on a user.
//	DELETE /users/{id}             - delete a user and their puzzles.
//	GET    /puzzles                - get the client's puzzles (all puzzles for admin).
//	POST   /puzzles                - create a new puzzle.
//	GET    /puzzles/{id}           - get a puzzle, without its hidden grammar.
//	DELETE /puzzles/{id}           - delete a puzzle.
//	POST   /puzzles/{id}/attempts  - check a set of rules against the puzzle.
//	GET    /info                   - get version info and the available difficulties.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dekarrin/codex/internal/presets"
	"github.com/dekarrin/codex/server/api"
	"github.com/dekarrin/codex/server/cxs"
	"github.com/dekarrin/codex/server/dao"
)

// Server is an HTTP REST server that provides codex puzzles and associated
// resources. The zero-value of a Server should not be used directly; call New()
// to get one ready for use.
type Server struct {
	router chi.Router
	api    api.API
	db     dao.Store
}

// New creates a new Server from cfg. cfg must be valid; call FillDefaults on
// it first to use the default for anything not set.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	set := presets.Builtin()
	if cfg.PresetsFile != "" {
		var err error
		set, err = presets.LoadFile(cfg.PresetsFile)
		if err != nil {
			return nil, fmt.Errorf("load presets: %w", err)
		}
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, err
	}

	srv := &Server{
		db: db,
		api: api.API{
			Backend: cxs.Service{
				DB:      db,
				Presets: set,
			},
			UnauthDelay: cfg.UnauthDelay(),
			Secret:      cfg.TokenSecret,
		},
	}
	srv.router = newRouter(srv.api)

	return srv, nil
}

// Service returns the backend service of the server, for direct programmatic
// access.
func (s *Server) Service() cxs.Service {
	return s.api.Backend
}

// ServeHTTP routes the request to the API.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost".
// If port is less than 1, it will default to 8080.
//
// This function will block until the server is stopped. If it returns, it
// will return a non-nil error.
func (s *Server) ServeForever(address string, port int) error {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddr := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddr)
	return http.ListenAndServe(listenAddr, s)
}

// Close closes the connection to the server's store.
func (s *Server) Close() error {
	return s.db.Close()
}
