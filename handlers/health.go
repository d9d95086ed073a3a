package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcraft/database"
	"tripcraft/services"
)

func HealthHandler(c *gin.Context) {
	db := database.DB
	dbStatus := "ok"
	if db == nil {
		dbStatus = "not initialized"
	} else if err := db.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	aiStatus := "live"
	if !services.GetAIClient().Enabled() {
		aiStatus = "fallback"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "TripCraft API",
		"database": dbStatus,
		"ai":       aiStatus,
	})
}
