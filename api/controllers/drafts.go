package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FuadAliah/celtis-pos/api/responses"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
)

// DraftSource lists saved drafts, newest first.
type DraftSource interface {
	Drafts() []sales.Sale
}

func DraftList(source DraftSource, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft store unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"drafts": newSaleViews(source.Drafts(), loc)})
	}
}

// DraftLoad replaces the active order with the draft and deletes the draft.
func DraftLoad(engine OrderEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}

		draftID := strings.TrimSpace(chi.URLParam(r, "draftId"))
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSaleID(ctx, draftID)
		}

		loaded, err := engine.LoadDraft(ctx, draftID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderView(loaded))
	}
}

func DraftDelete(engine OrderEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order engine unavailable"))
			return
		}

		draftID := strings.TrimSpace(chi.URLParam(r, "draftId"))
		if err := engine.DeleteDraft(r.Context(), draftID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"draftId": draftID, "deleted": true})
	}
}
