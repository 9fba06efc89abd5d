package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FuadAliah/celtis-pos/api/controllers"
	"github.com/FuadAliah/celtis-pos/api/middleware"
	"github.com/FuadAliah/celtis-pos/pkg/config"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
)

// TransactionStore is the transaction store as seen by the HTTP layer.
type TransactionStore interface {
	controllers.StoreHealth
	controllers.DraftSource
}

// OrderEngine also selects staff so selection is serialized with checkout.
type OrderEngine interface {
	controllers.OrderEngine
	controllers.StaffSelector
}

type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    TransactionStore
	Session  controllers.SessionState
	Engine   OrderEngine
	Menu     controllers.Menu
	Staff    controllers.StaffDirectory
	History  controllers.SalesHistory
	Location *time.Location
	Gatherer prometheus.Gatherer
	Clock    func() time.Time
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Store))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(deps.Menu, logg))
			r.Get("/categories", controllers.CatalogCategories(deps.Menu, logg))
		})
		r.Get("/staff", controllers.StaffList(deps.Staff, logg))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionFetch(deps.Session, logg))
			r.Put("/staff", controllers.SessionSelectStaff(deps.Engine, deps.Session, logg))
			r.Delete("/staff", controllers.SessionClearStaff(deps.Engine, deps.Session, logg))
			r.Put("/view", controllers.SessionSetView(deps.Session, logg))
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", controllers.OrderFetch(deps.Engine, logg))
			r.Delete("/", controllers.OrderClear(deps.Engine, logg))
			r.Post("/items", controllers.OrderAddItem(deps.Engine, deps.Menu, logg))
			r.Patch("/items/{position}", controllers.OrderSetQuantity(deps.Engine, logg))
			r.Delete("/items/{position}", controllers.OrderRemoveItem(deps.Engine, logg))
			r.Post("/checkout", controllers.OrderCheckout(deps.Engine, deps.Location, logg))
			r.Post("/draft", controllers.OrderSaveDraft(deps.Engine, deps.Location, logg))
		})

		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", controllers.DraftList(deps.Store, deps.Location, logg))
			r.Post("/{draftId}/load", controllers.DraftLoad(deps.Engine, logg))
			r.Delete("/{draftId}", controllers.DraftDelete(deps.Engine, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SalesList(deps.History, deps.Location, logg))
			r.Get("/stats", controllers.SalesStats(deps.History, deps.Clock, logg))
			r.Get("/{saleId}", controllers.SalesDetail(deps.History, deps.Location, logg))
		})
	})

	return r
}
