// Package history searches recorded sales and summarizes revenue.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/pagination"
)

// FilterAll disables the status or staff filter.
const FilterAll = "all"

// SaleSource lists recorded sales newest first.
type SaleSource interface {
	Sales() []sales.Sale
}

type Query struct {
	// Search matches the sale number or any line's menu item name.
	Search   string
	Status   string
	StaffID  string
	Page     int
	PageSize int
}

type Result struct {
	Sales      []sales.Sale    `json:"sales"`
	Pagination pagination.Page `json:"pagination"`
}

type Stats struct {
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
	TodayOrders  int     `json:"todayOrders"`
	TodayRevenue float64 `json:"todayRevenue"`
}

type Service struct {
	source SaleSource
	loc    *time.Location
}

// NewService reads sales from source. Calendar days for stats are taken in
// loc; nil means the local zone.
func NewService(source SaleSource, loc *time.Location) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("sale source required")
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{source: source, loc: loc}, nil
}

func (s *Service) Search(q Query) (Result, error) {
	status := strings.ToLower(strings.TrimSpace(q.Status))
	if status != "" && status != FilterAll {
		if _, err := enums.ParseSaleStatus(status); err != nil {
			return Result{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter").WithDetails(map[string]any{"status": q.Status})
		}
	}
	staffID := strings.TrimSpace(q.StaffID)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]sales.Sale, 0)
	for _, sale := range s.source.Sales() {
		if status != "" && status != FilterAll && sale.Status.String() != status {
			continue
		}
		if staffID != "" && staffID != FilterAll && sale.StaffID != staffID {
			continue
		}
		if search != "" && !matchesSearch(sale, search) {
			continue
		}
		matched = append(matched, sale)
	}

	params := pagination.Params{Page: q.Page, PageSize: q.PageSize}
	start, end := params.Bounds(len(matched))
	return Result{
		Sales:      matched[start:end],
		Pagination: params.Describe(len(matched)),
	}, nil
}

func matchesSearch(sale sales.Sale, needle string) bool {
	if strings.Contains(strings.ToLower(sale.SaleNumber), needle) {
		return true
	}
	for _, item := range sale.Items {
		if strings.Contains(strings.ToLower(item.MenuItemName), needle) {
			return true
		}
	}
	return false
}

// Stats summarizes all sales, or only staffID's when it is set. Revenue counts
// completed sales; today's figures count every sale created on now's calendar
// day.
func (s *Service) Stats(staffID string, now time.Time) Stats {
	staffID = strings.TrimSpace(staffID)
	ty, tm, td := now.In(s.loc).Date()

	var stats Stats
	for _, sale := range s.source.Sales() {
		if staffID != "" && staffID != FilterAll && sale.StaffID != staffID {
			continue
		}
		stats.TotalOrders++
		if sale.Status == enums.SaleStatusCompleted {
			stats.TotalRevenue += sale.Total
		}
		y, m, d := sale.CreatedAt.In(s.loc).Date()
		if y == ty && m == tm && d == td {
			stats.TodayOrders++
			stats.TodayRevenue += sale.Total
		}
	}
	return stats
}

// Get returns one sale by id.
func (s *Service) Get(id string) (sales.Sale, error) {
	for _, sale := range s.source.Sales() {
		if sale.ID == id {
			return sale, nil
		}
	}
	return sales.Sale{}, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found").WithDetails(map[string]any{"saleId": id})
}
