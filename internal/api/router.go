package api

import (
	"net/http"
	"ride-compare-service/internal/api/handlers"
	"ride-compare-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	resolver *services.Resolver,
	workflow *services.Workflow,
	accounts *services.Accounts,
) http.Handler {
	mux := http.NewServeMux()

	suggestHandler := &handlers.SuggestHandler{
		Resolver:  resolver,
		Sequencer: services.NewSequencer(),
	}
	compareHandler := &handlers.CompareHandler{Workflow: workflow}
	accountHandler := &handlers.AccountHandler{Accounts: accounts}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/suggestions", suggestHandler.Suggest)
	mux.HandleFunc("/api/geocode/reverse", suggestHandler.Reverse)
	mux.HandleFunc("/api/rides/compare", compareHandler.Compare)
	mux.HandleFunc("/api/register", accountHandler.Register)
	mux.HandleFunc("/api/login", accountHandler.Login)

	return requestIDMiddleware(loggingMiddleware(mux))
}
