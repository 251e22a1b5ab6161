package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/config"
	"github.com/caterhub/caterhub-api/internal/database"
	"github.com/caterhub/caterhub-api/internal/handlers"
	"github.com/caterhub/caterhub-api/internal/notifier"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Notifier
	var guestNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" && cfg.DiscordNotificationsChannelID != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			guestNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
		}
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	h := handlers.Handlers{
		Auth:         authHandler,
		Events:       handlers.NewEventHandler(db, cfg),
		Catalog:      handlers.NewCatalogHandler(db),
		Registration: handlers.NewRegistrationHandler(db, guestNotifier),
		Planning:     handlers.NewPlanningHandler(db),
		Inventory:    handlers.NewInventoryHandler(db),
		Chefs:        handlers.NewChefHandler(db),
		Admin:        handlers.NewAdminHandler(db),
		APIKeys:      handlers.NewAPIKeyHandler(db),
	}

	// Initialize Router
	r := chi.NewRouter()
	if cfg.EnableCORS {
		r.Use(corsMiddleware(cfg.FrontendURL))
	}

	// Register Routes
	handlers.RegisterRoutes(r, h)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func corsMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-KEY")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
