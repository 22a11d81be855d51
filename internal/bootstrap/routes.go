package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trip-planner/internal/middleware"
)

func InitRoutes(
	h *HandlersBundle,
	users middleware.UserChecker,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) chi.Router {

	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/currencies", h.ExchangeHandler.Currencies)
	r.Route("/exchange", func(r chi.Router) {
		r.Get("/", h.ExchangeHandler.GetRate)
		r.Get("/convert", h.ExchangeHandler.Convert)
		r.Get("/rates", h.ExchangeHandler.Rates)
		r.Get("/popular", h.ExchangeHandler.Popular)
	})

	r.Post("/admin/popular", h.AdminHandler.CreatePopular)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthRequired(users, logger))
		r.Post("/itineraries/generate", h.ItineraryHandler.Generate)
	})

	return r
}
