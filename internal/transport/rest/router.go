package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"triviarena/internal/service"
	"triviarena/internal/storage"
	"triviarena/internal/transport/rest/handler"
	"triviarena/internal/transport/rest/middleware"
	"triviarena/internal/transport/ws"
)

// Container holds all dependencies for the router.
type Container struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	Store          *storage.Factory
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(c.SessionService)
	healthHandler := handler.NewHealthHandler(c.Store)
	authHandler := handler.NewAuthHandler(c.AuthService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/auth/guest", authHandler.Guest).Methods("POST", "OPTIONS")

	// WebSocket watch route (token in query param)
	v1.HandleFunc("/ws/games/{id}/watch", wsHandler.WatchWS).Methods("GET")

	// Play routes: anonymous play is allowed, claims attach when present.
	play := v1.NewRoute().Subrouter()
	play.Use(authMW.Optional)

	play.HandleFunc("/games", gameHandler.Start).Methods("POST", "OPTIONS")
	play.HandleFunc("/games/{id}", gameHandler.Get).Methods("GET", "OPTIONS")
	play.HandleFunc("/games/{id}", gameHandler.Delete).Methods("DELETE", "OPTIONS")
	play.HandleFunc("/games/{id}/answers", gameHandler.Answer).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
