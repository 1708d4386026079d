package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/auth"
	"github.com/rogerio-castellano/yard-tracker/internal/http/handlers"
	mw "github.com/rogerio-castellano/yard-tracker/internal/http/middleware"
	rl "github.com/rogerio-castellano/yard-tracker/internal/http/rate_limiter"
)

type Options struct {
	Tokens         *auth.TokenService
	Limiter        *rl.Limiter // nil disables rate limiting
	Logger         *zap.Logger
	AllowedOrigins []string
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLog(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", mw.RequestIDHeader},
		ExposedHeaders:   []string{mw.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           600,
	}))
	if opts.Limiter != nil {
		r.Use(mw.RateLimit(opts.Limiter))
	}

	requireAuth := mw.Auth(opts.Tokens)

	r.Post("/login", handlers.LoginHandler)
	r.Post("/register", handlers.RegisterHandler)

	r.Route("/clients", func(r chi.Router) {
		r.Get("/", handlers.GetClientsHandler)
		r.Get("/by-cpf/{cpf}", handlers.GetClientByCPFHandler)
		r.Get("/search-by-name", handlers.SearchClientsByNameHandler)
		r.Get("/{id}", handlers.GetClientByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", handlers.CreateClientHandler)
			r.Put("/{id}", handlers.UpdateClientHandler)
			r.Delete("/{id}", handlers.DeleteClientHandler)
		})
	})

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", handlers.GetVehiclesHandler)
		r.Get("/by-plate/{plate}", handlers.GetVehicleByPlateHandler)
		r.Get("/search-by-model", handlers.SearchVehiclesByModelHandler)
		r.Get("/{id}", handlers.GetVehicleByIDHandler)
		r.Get("/{id}/location", handlers.GetVehicleLocationHandler)
		r.Get("/{id}/tracking", handlers.GetTrackingHandler)
		r.Get("/{id}/tracking/export", handlers.ExportTrackingHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", handlers.CreateVehicleHandler)
			r.Post("/import", handlers.ImportVehiclesHandler)
			r.Put("/{id}", handlers.UpdateVehicleHandler)
			r.Delete("/{id}", handlers.DeleteVehicleHandler)
			r.Post("/{id}/tracking", handlers.LogTrackingHandler)
		})
	})

	r.Route("/yards", func(r chi.Router) {
		r.Get("/", handlers.GetYardsHandler)
		r.Get("/search-by-name", handlers.SearchYardsByNameHandler)
		r.Get("/by-date", handlers.GetYardsByDateHandler)
		r.Get("/{id}", handlers.GetYardByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", handlers.CreateYardHandler)
			r.Put("/{id}", handlers.UpdateYardHandler)
			r.Delete("/{id}", handlers.DeleteYardHandler)
		})
	})

	r.Route("/zones", func(r chi.Router) {
		r.Get("/", handlers.GetZonesHandler)
		r.Get("/search-by-name", handlers.SearchZonesByNameHandler)
		r.Get("/by-date", handlers.GetZonesByDateHandler)
		r.Get("/{id}", handlers.GetZoneByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", handlers.CreateZoneHandler)
			r.Put("/{id}", handlers.UpdateZoneHandler)
			r.Delete("/{id}", handlers.DeleteZoneHandler)
		})
	})

	r.Route("/boxes", func(r chi.Router) {
		r.Get("/", handlers.GetBoxesHandler)
		r.Get("/search-by-name", handlers.SearchBoxesByNameHandler)
		r.Get("/by-status/{status}", handlers.GetBoxesByStatusHandler)
		r.Get("/{id}", handlers.GetBoxByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", handlers.CreateBoxHandler)
			r.Put("/{id}", handlers.UpdateBoxHandler)
			r.Delete("/{id}", handlers.DeleteBoxHandler)
		})
	})

	r.Route("/parking", func(r chi.Router) {
		r.Get("/map", handlers.GetParkingMapHandler)
		r.Get("/by-plate/{plate}", handlers.GetParkingByPlateHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/park", handlers.ParkVehicleHandler)
			r.Post("/release/{id}", handlers.ReleaseBoxHandler)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(mw.RequireRole("admin"))
		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
		r.Post("/admin/users", handlers.RegisterAsAdminHandler)
	})

	return r
}
