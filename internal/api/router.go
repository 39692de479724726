package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// Session creation and chat limits, per client IP per minute. Sessions
	// are cheap but unbounded creation would churn the store; chat messages
	// each cost an upstream API call.
	sessionsPerMinute = 5
	messagesPerMinute = 10
)

// NewRouter creates and configures the chi router with all application routes.
func NewRouter(chatHandler *ChatHandler, modelHandler *ModelHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check for liveness/readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	sessionLimiter := newIPRateLimiter(sessionsPerMinute)
	chatLimiter := newIPRateLimiter(messagesPerMinute)

	r.Group(func(r chi.Router) {
		// The 60s budget covers the 30s provider timeout with room for
		// serialization on both ends.
		r.Use(middleware.Timeout(60 * time.Second))

		r.With(sessionLimiter.middleware("Too many sessions created. Please wait before trying again.")).
			Post("/session", chatHandler.HandleCreateSession)
		r.With(chatLimiter.middleware("Too many messages sent. Please wait before trying again.")).
			Post("/chat", chatHandler.HandleChat)

		r.Get("/models", modelHandler.HandleListModels)
		r.Get("/providerStatus", modelHandler.HandleProviderStatus)
	})

	// The browser client is plain static assets; in production a reverse
	// proxy would usually serve these, but shipping them here keeps local
	// setups to a single process.
	fileServer := http.FileServer(http.Dir("./public"))
	r.Handle("/*", fileServer)

	return r
}
