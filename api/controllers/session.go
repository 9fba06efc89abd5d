package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/FuadAliah/celtis-pos/api/responses"
	"github.com/FuadAliah/celtis-pos/api/validators"
	"github.com/FuadAliah/celtis-pos/internal/session"
	"github.com/FuadAliah/celtis-pos/internal/staff"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
)

// SessionState is the terminal's active screen and acting staff member.
type SessionState interface {
	Snapshot() session.Snapshot
	SetView(ctx context.Context, view enums.View) error
}

// StaffSelector changes the acting staff member. The order engine implements
// it so selection is serialized with checkout.
type StaffSelector interface {
	SelectStaff(ctx context.Context, staffID string) (staff.Member, error)
	ClearStaff(ctx context.Context)
}

type selectStaffRequest struct {
	StaffID string `json:"staffId" validate:"required"`
}

type setViewRequest struct {
	View enums.View `json:"view" validate:"required,enum"`
}

func SessionFetch(state SessionState, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		responses.WriteSuccess(w, state.Snapshot())
	}
}

// SessionSelectStaff makes an active staff member the acting operator.
func SessionSelectStaff(selector StaffSelector, state SessionState, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if selector == nil || state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		var req selectStaffRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithStaffID(ctx, req.StaffID)
		}
		if _, err := selector.SelectStaff(ctx, strings.TrimSpace(req.StaffID)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, state.Snapshot())
	}
}

func SessionClearStaff(selector StaffSelector, state SessionState, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if selector == nil || state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		selector.ClearStaff(r.Context())
		responses.WriteSuccess(w, state.Snapshot())
	}
}

func SessionSetView(state SessionState, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		var req setViewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := state.SetView(r.Context(), req.View); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state.Snapshot())
	}
}
