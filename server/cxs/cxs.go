// Package cxs has the services of the codex puzzle server backend, decoupled
// from the API that accesses them.
package cxs

import (
	"github.com/dekarrin/codex/internal/presets"
	"github.com/dekarrin/codex/server/dao"
)

// PasswordCost is the bcrypt cost used when hashing new passwords.
var PasswordCost = 14

// Service performs the actions requested of the codex puzzle server and makes
// calls to persistence to preserve its state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB before attempting to use it. If Presets has no difficulties, the built-in
// difficulties are used.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// Presets is the set of difficulties puzzles can be created with.
	Presets presets.Set
}

func (svc Service) presets() presets.Set {
	if len(svc.Presets.Difficulties) < 1 {
		return presets.Builtin()
	}
	return svc.Presets
}

// DifficultyKeys returns the keys of the difficulties puzzles can be created
// with.
func (svc Service) DifficultyKeys() []string {
	return svc.presets().Keys()
}
