package api

import (
	"net/http"

	"github.com/devhire/devhire/internal/config"
	"github.com/devhire/devhire/internal/matching"
	"github.com/devhire/devhire/internal/payments"
	"github.com/devhire/devhire/pkg/chain"
	"github.com/devhire/devhire/pkg/repository"
	"github.com/gorilla/mux"
)

// Deps are the collaborators the HTTP surface composes. Everything is
// injected; the api package holds no process-wide state beyond its logger.
type Deps struct {
	Users    repository.UserRepo
	Jobs     repository.JobRepo
	Txs      repository.TransactionRepo
	Engine   *matching.Engine
	Verifier chain.Verifier
}

func SetupRoutes(cfg *config.Config, version, buildTime string, deps Deps) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware(cfg.CORSOrigins))
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(deps.Users, cfg.JWTSecret, cfg.TokenDuration)
	profileHandler := NewProfileHandler(deps.Users)
	jobsHandler := NewJobsHandler(deps.Jobs)
	flow := payments.NewFlow(deps.Txs, deps.Verifier, cfg.Payment.AdminWallet, logger)
	paymentsHandler := NewPaymentsHandler(flow, deps.Txs, deps.Users, cfg.Payment)
	aiHandler := NewAIHandler(deps.Engine, deps.Users, deps.Jobs)

	auth := JWTAuthMiddlewareWithSecret(cfg.JWTSecret)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	// System
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// Auth
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.Handle("/auth/me", protected(authHandler.Me)).Methods("GET")

	// Profile: self-management is protected, lookup and search are public
	r.Handle("/profile", protected(profileHandler.Get)).Methods("GET")
	r.Handle("/profile", protected(profileHandler.Update)).Methods("PUT")
	r.Handle("/profile/password", protected(profileHandler.UpdatePassword)).Methods("PUT")
	r.Handle("/profile/wallet", protected(profileHandler.ConnectWallet)).Methods("POST")
	r.HandleFunc("/profile/search", profileHandler.Search).Methods("GET")
	r.HandleFunc("/profile/{id:[0-9]+}", profileHandler.GetByID).Methods("GET")

	// Jobs: listing and detail are public, lifecycle is owner-gated
	r.HandleFunc("/jobs", jobsHandler.List).Methods("GET")
	r.Handle("/jobs", protected(jobsHandler.Create)).Methods("POST")
	r.Handle("/jobs/user/my", protected(jobsHandler.MyJobs)).Methods("GET")
	r.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.Get).Methods("GET")
	r.Handle("/jobs/{id:[0-9]+}", protected(jobsHandler.Update)).Methods("PUT")
	r.Handle("/jobs/{id:[0-9]+}", protected(jobsHandler.Delete)).Methods("DELETE")

	// Payments
	r.HandleFunc("/payments/requirements", paymentsHandler.Requirements).Methods("GET")
	r.Handle("/payments/initiate", protected(paymentsHandler.Initiate)).Methods("POST")
	r.Handle("/payments/verify", protected(paymentsHandler.Verify)).Methods("POST")
	r.Handle("/payments/history", protected(paymentsHandler.History)).Methods("GET")
	r.Handle("/payments/status/{jobId:[0-9]+}", protected(paymentsHandler.Status)).Methods("GET")

	// AI
	r.HandleFunc("/ai/extract-skills", aiHandler.ExtractSkills).Methods("POST")
	r.Handle("/ai/match/{jobId:[0-9]+}", protected(aiHandler.Match)).Methods("GET")
	r.Handle("/ai/recommendations", protected(aiHandler.Recommendations)).Methods("GET")
	r.Handle("/ai/update-skills", protected(aiHandler.UpdateSkills)).Methods("POST")
	r.HandleFunc("/ai/similar/{jobId:[0-9]+}", aiHandler.Similar).Methods("GET")

	return r
}
