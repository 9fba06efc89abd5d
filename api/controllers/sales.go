package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FuadAliah/celtis-pos/api/responses"
	"github.com/FuadAliah/celtis-pos/api/validators"
	"github.com/FuadAliah/celtis-pos/internal/history"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
	"github.com/FuadAliah/celtis-pos/pkg/money"
	"github.com/FuadAliah/celtis-pos/pkg/pagination"
)

const maxPage = 10000

// SalesHistory searches and summarizes recorded sales.
type SalesHistory interface {
	Search(q history.Query) (history.Result, error)
	Stats(staffID string, now time.Time) history.Stats
	Get(id string) (sales.Sale, error)
}

// SalesList searches sales by ?q=, ?status= and ?staff_id=, one page at a time.
func SalesList(svc SalesHistory, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales history unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxPage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "page_size", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		result, err := svc.Search(history.Query{
			Search:   validators.SanitizeString(q.Get("q"), 128),
			Status:   validators.SanitizeString(q.Get("status"), 32),
			StaffID:  validators.SanitizeString(q.Get("staff_id"), 64),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"sales":      newSaleViews(result.Sales, loc),
			"pagination": result.Pagination,
		})
	}
}

type statsView struct {
	history.Stats
	Formatted struct {
		TotalRevenue string `json:"totalRevenue"`
		TodayRevenue string `json:"todayRevenue"`
	} `json:"formatted"`
}

// SalesStats reports order counts and revenue, optionally for one staff member.
func SalesStats(svc SalesHistory, now func() time.Time, logg *logger.Logger) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales history unavailable"))
			return
		}

		stats := svc.Stats(validators.SanitizeString(r.URL.Query().Get("staff_id"), 64), now())
		view := statsView{Stats: stats}
		view.Formatted.TotalRevenue = money.FormatCurrency(stats.TotalRevenue)
		view.Formatted.TodayRevenue = money.FormatCurrency(stats.TodayRevenue)
		responses.WriteSuccess(w, view)
	}
}

func SalesDetail(svc SalesHistory, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales history unavailable"))
			return
		}

		saleID := strings.TrimSpace(chi.URLParam(r, "saleId"))
		sale, err := svc.Get(saleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSaleView(sale, loc))
	}
}
