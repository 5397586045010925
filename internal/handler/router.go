package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/healthsync/healthsync-go/internal/middleware"
	"github.com/healthsync/healthsync-go/internal/service"
)

// RouterConfig holds the HTTP-level settings of the API.
type RouterConfig struct {
	CORSOrigins        []string
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// NewRouter builds the API routes. ctx bounds background work started by
// middleware, such as rate limiter cleanup.
func NewRouter(ctx context.Context, cfg RouterConfig, svc *service.Services, db Pinger) http.Handler {
	authHandler := NewAuthHandler(svc.Auth)
	patientHandler := NewPatientHandler(svc.Patients)
	recordHandler := NewRecordHandler(svc.Records)
	sideEffectHandler := NewSideEffectHandler(svc.SideEffects)
	providerHandler := NewProviderHandler(svc.Providers)
	healthHandler := NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/", healthHandler.HandleRoot)
	r.Get("/api/health", healthHandler.HandleHealth)
	r.Get("/api/db-health", healthHandler.HandleDBHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst))
		r.Post("/patient", authHandler.HandleRegister)
		r.Post("/patient/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerToken)

		r.Get("/patient/{patient_email}", patientHandler.HandleGetByEmail)

		r.Get("/patient/{patient_id}/health_conditions", recordHandler.HandleListConditions)
		r.Post("/patient/{patient_id}/health_condition", recordHandler.HandleAddCondition)
		r.Get("/patient/{patient_id}/medications", recordHandler.HandleListMedications)
		r.Post("/patient/{patient_id}/medication", recordHandler.HandleAddMedication)

		r.Post("/patient/{patient_id}/adverse_side_effect", sideEffectHandler.HandleAdd)
		r.Get("/adverse_side_effects/{patient_id}", sideEffectHandler.HandleList)
		r.Post("/adverse_side_effect/details", sideEffectHandler.HandleAddDetail)
		r.Get("/adverse_side_effect/{adverse_side_effect_id}/details", sideEffectHandler.HandleListDetails)

		r.Put("/patient/{patient_id}/provider", providerHandler.HandleLink)
		r.Get("/patient/{patient_id}/provider", providerHandler.HandleList)
	})

	return r
}
