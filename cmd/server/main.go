package main

import (
	"log"
	"net/http"

	"messenger-bot/internal/api"
	"messenger-bot/internal/bot"
	"messenger-bot/internal/config"
	"messenger-bot/internal/database"
	"messenger-bot/internal/messenger"
	"messenger-bot/internal/middleware"
	"messenger-bot/internal/store"
	"messenger-bot/internal/webhook"
	"messenger-bot/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	users := store.NewUsers(db)

	var sessions bot.SessionStore
	if cfg.SessionBackend == "db" {
		sessions = store.NewDBSessions(db)
	} else {
		sessions = store.NewMemorySessions()
	}

	hub := ws.NewHub()
	go hub.Run()

	client := messenger.NewClient(cfg)
	engine := bot.NewEngine(users, sessions, client, client, hub)
	webhookHandler := webhook.NewHandler(cfg, engine)
	userHandler := api.NewUserHandler(users, hub)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World")
	})

	// Webhook Routes
	r.GET("/webhook", webhookHandler.VerifyWebhook)
	r.POST("/webhook", webhookHandler.HandleEvents)

	// Admin API Routes
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/users", userHandler.GetUsers)
		apiGroup.PUT("/users/:id/status", userHandler.UpdateStatus)
		apiGroup.GET("/users/export", userHandler.ExportUsers)
	}

	// Admin UI + live updates
	r.Static("/admin", "./web/admin")
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
