// Package screens holds what every PRISM screen shares: the service
// dependencies and the navigation factories that would otherwise form
// import cycles between screen packages.
package screens

import (
	"context"
	"errors"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/screen"
	"github.com/abhisek/prism/internal/session"
	"github.com/abhisek/prism/internal/store"
	"github.com/abhisek/prism/internal/taxonomy"
)

// Profiles is the part of the PRISM API the screens use for saved profiles.
type Profiles interface {
	Save(ctx context.Context, p gateway.Payload) (gateway.SaveResult, error)
	Simulations(ctx context.Context) ([]gateway.Summary, error)
	Simulation(ctx context.Context, id int64) (gateway.Record, error)
	Archetype(ctx context.Context, req gateway.ArchetypeRequest) (gateway.ArchetypeResult, error)
}

// Deps wires screens to services. Events may be nil when the local store
// is unavailable.
type Deps struct {
	Auth       *session.Auth
	Taxonomy   taxonomy.Fetcher
	Objectives objectives.Generator
	Lists      lists.Generator
	Profiles   Profiles
	Events     store.EventRepo
	Log        logger.Logger

	// Login and Dashboard build the two root screens.
	Login     func() screen.Screen
	Dashboard func() screen.Screen
}

// Logger returns d.Log or a no-op logger.
func (d *Deps) Logger() logger.Logger {
	if d == nil || d.Log == nil {
		return logger.NewNoOp()
	}
	return d.Log
}

// Start returns the dashboard when a session is active, the login screen
// otherwise.
func (d *Deps) Start() screen.Screen {
	if d.Auth != nil && d.Auth.LoggedIn() {
		return d.Dashboard()
	}
	return d.Login()
}

// ErrorMessage is the text shown for err. API errors carry the server's
// message verbatim.
func ErrorMessage(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, gateway.ErrUnavailable) {
		return "The PRISM service could not be reached. Check your connection and try again."
	}
	return err.Error()
}
