package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukydev/ev-fleet-dashboard/internal/mapview"
	"github.com/ukydev/ev-fleet-dashboard/internal/middleware"
	"github.com/ukydev/ev-fleet-dashboard/internal/view"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Tiles             mapview.TileConfig
	RateLimitRequests int
	RateLimitWindow   int
}

// NewRouter wires the dashboard, API, map websocket and operational endpoints.
func NewRouter(controller *view.Controller, hub http.Handler, opts RouterOptions) http.Handler {
	dashboard := NewDashboardHandler(controller, opts.Tiles)
	api := NewAPIHandler(controller, opts.Tiles)

	r := mux.NewRouter()
	r.Use(middleware.Recover)
	r.Use(middleware.RequestID)
	r.Use(middleware.Observe)
	r.Use(middleware.NewRateLimitMiddleware().RateLimit(opts.RateLimitRequests, opts.RateLimitWindow))

	r.HandleFunc("/", dashboard.Page).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/vehicles", api.ListVehicles).Methods(http.MethodGet)
	apiRouter.HandleFunc("/vehicles/{id}", api.GetVehicle).Methods(http.MethodGet)
	apiRouter.HandleFunc("/stats", api.Stats).Methods(http.MethodGet)
	apiRouter.HandleFunc("/map", api.Map).Methods(http.MethodGet)
	apiRouter.HandleFunc("/map/show", api.ShowMap).Methods(http.MethodPost)
	apiRouter.HandleFunc("/map/hide", api.HideMap).Methods(http.MethodPost)

	if hub != nil {
		r.Handle("/ws/map", hub).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
