package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/wastewise/wastewise-backend/api/responses"
	"github.com/wastewise/wastewise-backend/pkg/config"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WasteWise-Env", cfg.Environment)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired dependency and reports per-dependency
// status. Any failure flips the overall answer to 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, database, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WasteWise-Env", cfg.Environment)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		var failures error

		probe := func(name string, p pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				failures = multierr.Append(failures, err)
				return
			}
			checks[name] = "up"
		}

		probe("database", database)
		probe("redis", cache)

		if failures != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "readiness check failed")
			responses.WriteError(r.Context(), logg, w, err.WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
