package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ygglist/ygglist/internal/api/middleware"
	"github.com/ygglist/ygglist/internal/jobs"
	"github.com/ygglist/ygglist/internal/list"
	"github.com/ygglist/ygglist/internal/storage"
)

// RouterConfig carries everything the router needs wired in.
type RouterConfig struct {
	Store     *storage.Store
	Manager   *list.Manager
	Publisher jobs.Publisher
	JobStore  jobs.JobStore
	Weather   WeatherService
	Holidays  HolidayService
	Log       zerolog.Logger
}

// NewRouter builds the full API router.
func NewRouter(cfg RouterConfig) http.Handler {
	lists := NewListsHandler(cfg.Store, cfg.Manager, cfg.Log)
	reports := NewReportsHandler(cfg.Store, cfg.Log)
	imports := NewImportsHandler(cfg.Store, cfg.Publisher, cfg.JobStore, cfg.Log)
	external := NewExternalHandler(cfg.Weather, cfg.Holidays)
	profile := NewProfileHandler(cfg.Store, cfg.Log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Log))
	r.Use(middleware.Logger(cfg.Log))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/lists", lists.Index)
		r.Route("/lists/{location}/{date}", func(r chi.Router) {
			r.Get("/", lists.View)
			r.Post("/items", lists.AddItem)
			r.Patch("/items/{id}", lists.UpdateItem)
			r.Delete("/items/{id}", lists.RemoveItem)
			r.Post("/cart", lists.Cart)
			r.Post("/finalize", lists.Finalize)
		})

		r.Get("/purchases", reports.ListPurchases)
		r.Get("/reports", reports.Report)
		r.Get("/reports/monthly", reports.MonthlyTotals)
		r.Get("/reports/csv", reports.CSV)
		r.Get("/reports/chart.svg", reports.ChartSVG)
		r.Get("/reports/chart.png", reports.ChartPNG)

		r.Post("/imports", imports.Enqueue)
		r.Get("/imports", imports.List)
		r.Get("/imports/jobs", imports.ListJobs)
		r.Get("/imports/{id}", imports.GetJob)

		r.Get("/weather", external.Weather)
		r.Get("/holidays", external.Holidays)

		r.Get("/session", profile.GetSession)
		r.Post("/session", profile.Login)
		r.Delete("/session", profile.Logout)
		r.Get("/favorites", profile.GetFavorites)
		r.Put("/favorites", profile.PutFavorites)
		r.Get("/preferences", profile.GetPreferences)
		r.Put("/preferences", profile.PutPreferences)
	})

	return r
}
