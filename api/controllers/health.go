package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/FuadAliah/celtis-pos/api/responses"
	"github.com/FuadAliah/celtis-pos/pkg/config"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
)

const readyTimeout = 2 * time.Second

// StoreHealth is what readiness needs from the transaction store.
type StoreHealth interface {
	Ping(ctx context.Context) error
	Degraded() bool
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-POS-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the key-value medium. A degraded store still reports
// ready since the terminal keeps selling from memory.
func HealthReady(cfg *config.Config, logg *logger.Logger, store StoreHealth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-POS-Env", cfg.App.Env)

		if store.Degraded() {
			responses.WriteSuccess(w, map[string]any{
				"status":  "degraded",
				"backend": cfg.Store.Kind(),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unreachable").WithDetails(map[string]any{"backend": cfg.Store.Kind()}))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status":  "ready",
			"backend": cfg.Store.Kind(),
		})
	}
}
