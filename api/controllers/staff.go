package controllers

import (
	"net/http"

	"github.com/FuadAliah/celtis-pos/api/responses"
	"github.com/FuadAliah/celtis-pos/internal/staff"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
)

type StaffDirectory interface {
	Active() []staff.Member
}

// StaffList returns the members who can be selected at the terminal.
func StaffList(dir StaffDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dir == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff directory unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"staff": dir.Active()})
	}
}
