package controllers

import (
	"net/http"

	"github.com/FuadAliah/celtis-pos/api/responses"
	"github.com/FuadAliah/celtis-pos/api/validators"
	"github.com/FuadAliah/celtis-pos/internal/catalog"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
)

// Menu is the read side of the catalog.
type Menu interface {
	Filter(category, query string) []catalog.Item
	Categories() []string
	Get(id string) (catalog.Item, bool)
}

// CatalogList returns menu items filtered by ?category= and ?q= (name or SKU).
func CatalogList(menu Menu, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if menu == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		category := validators.SanitizeString(r.URL.Query().Get("category"), 64)
		query := validators.SanitizeString(r.URL.Query().Get("q"), 128)

		responses.WriteSuccess(w, map[string]any{
			"items": menu.Filter(category, query),
		})
	}
}

// CatalogCategories returns the category tabs, "All" first.
func CatalogCategories(menu Menu, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if menu == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		categories := append([]string{catalog.AllCategories}, menu.Categories()...)
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
