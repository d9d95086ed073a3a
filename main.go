package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tripcraft/database"
	"tripcraft/handlers"
	"tripcraft/services"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	// Initialize database
	database.InitDB()

	// Initialize AI service
	services.InitAI()

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	// CORS — allow configured frontend origins
	frontendURLs := os.Getenv("FRONTEND_URL")
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if frontendURLs != "" {
		for _, u := range strings.Split(frontendURLs, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)

		api.POST("/auth/login", handlers.LoginHandler)
		api.POST("/auth/register", handlers.RegisterHandler)
		api.POST("/auth/logout", handlers.LogoutHandler)
		api.GET("/auth/me", handlers.MeHandler)

		api.POST("/trips/generate", handlers.GenerateHandler)
		api.POST("/trips/recalculate", handlers.RecalculateHandler)
		api.POST("/trips/day", handlers.UpdateDayHandler)
		api.POST("/trips/save", handlers.SaveTripHandler)
		api.GET("/trips", handlers.ListTripsHandler)
		api.GET("/trips/:id/pdf", handlers.DownloadTripPDFHandler)
		api.DELETE("/trips/:id", handlers.DeleteTripHandler)

		api.POST("/chat", handlers.ChatHandler)
		api.GET("/explore", handlers.ExploreHandler)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 TripCraft backend starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
