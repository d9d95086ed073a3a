package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"tripcraft/database"
	"tripcraft/planner"
	"tripcraft/services"
)

// generating tracks users with an itinerary generation in flight. One
// outstanding generation per user; a second request is rejected rather than
// queued.
var generating sync.Map

type GenerateRequest struct {
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	NumPeople   int      `json:"num_people"`
	BudgetTier  string   `json:"budget_tier" binding:"required"`
	Interests   []string `json:"interests"`
}

type GenerateResponse struct {
	Trip   planner.Trip `json:"trip"`
	Source string       `json:"source"` // "live" or "estimated"
}

// GenerateHandler runs the full pipeline: research the destination, plan the
// itinerary, assemble and aggregate the trip. All-or-nothing: on any
// producer or contract failure no state changes and the error surfaces as a
// single retryable message.
func GenerateHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req.Destination = strings.TrimSpace(req.Destination)
	if req.NumPeople <= 0 {
		req.NumPeople = 1
	}

	tier, err := planner.ParseTier(req.BudgetTier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	numDays, err := planner.NumDays(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, busy := generating.LoadOrStore(user.ID, true); busy {
		c.JSON(http.StatusConflict, gin.H{"error": "A trip generation is already in progress"})
		return
	}
	defer generating.Delete(user.ID)

	// ── Research + itinerary producers ─────────────────────────────────────────
	ctx := c.Request.Context()
	ai := services.GetAIClient()

	var research planner.ResearchResult
	var days []planner.DayPlan
	source := "live"

	if ai.Enabled() {
		research, err = ai.ResearchDestination(ctx, req.Destination, req.Interests)
		if err != nil {
			log.Printf("⚠️  Research failed for %q: %v", req.Destination, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to research destination. Please try again."})
			return
		}

		days, err = ai.PlanItinerary(ctx, req.Destination, numDays, research, tier)
		if err != nil {
			log.Printf("⚠️  Itinerary planning failed for %q: %v", req.Destination, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate itinerary. Please try again."})
			return
		}
	} else {
		research = services.FallbackResearch(req.Destination, req.Interests)
		days = services.FallbackItinerary(req.Destination, req.StartDate, numDays, research, tier)
		source = "estimated"
	}

	// ── Assemble + aggregate ───────────────────────────────────────────────────
	trip, err := planner.AssembleTrip(planner.TripRequest{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		NumPeople:   req.NumPeople,
		BudgetTier:  tier,
		Interests:   req.Interests,
	}, days)
	if err != nil {
		log.Printf("⚠️  Itinerary producer contract violation for %q: %v", req.Destination, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate itinerary. Please try again."})
		return
	}

	if err := database.LogActivity(user.ID, "generate_trip", map[string]any{"destination": trip.Destination}); err != nil {
		log.Printf("⚠️  Failed to log activity: %v", err)
	}

	log.Printf("✅ Generated %d-day trip to %s for user %d (%s)", numDays, trip.Destination, user.ID, source)
	c.JSON(http.StatusOK, GenerateResponse{Trip: trip, Source: source})
}

// ─── Stateless trip mutations ─────────────────────────────────────────────────

type RecalculateRequest struct {
	Trip       planner.Trip `json:"trip" binding:"required"`
	TargetTier string       `json:"target_tier" binding:"required"`
}

// RecalculateHandler rescales a trip's costs to a new budget tier. Pure
// pass-through to the cost engine; nothing is persisted.
func RecalculateHandler(c *gin.Context) {
	var req RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	tier, err := planner.ParseTier(req.TargetTier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := planner.Recalculate(req.Trip, tier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, trip)
}

type UpdateDayRequest struct {
	Trip planner.Trip    `json:"trip" binding:"required"`
	Day  planner.DayPlan `json:"day" binding:"required"`
}

// UpdateDayHandler swaps one day of a trip and re-derives the total.
func UpdateDayHandler(c *gin.Context) {
	var req UpdateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	trip, err := planner.ReplaceDay(req.Trip, req.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, trip)
}

// ─── Saved trips ──────────────────────────────────────────────────────────────

// SaveTripHandler persists a generated trip under the session user.
// Idempotent: saving an id that already exists is a no-op.
func SaveTripHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var trip planner.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if trip.ID == "" || len(trip.Days) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trip must have an id and at least one day"})
		return
	}
	if _, err := planner.ParseTier(string(trip.BudgetTier)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The stored total is always the live sum over days, whatever the
	// client sent.
	trip.TotalCost = planner.TotalCost(trip.Days)

	if err := database.SaveTrip(user.ID, trip); err != nil {
		log.Printf("❌ Failed to save trip %s: %v", trip.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save trip"})
		return
	}

	if err := database.LogActivity(user.ID, "save_trip", map[string]any{"destination": trip.Destination}); err != nil {
		log.Printf("⚠️  Failed to log activity: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip saved", "trip_id": trip.ID})
}

func ListTripsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	trips, err := database.GetSavedTrips(user.ID)
	if err != nil {
		log.Printf("❌ Failed to list trips for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved trips"})
		return
	}

	c.JSON(http.StatusOK, trips)
}

// DeleteTripHandler removes a trip from the user's collection. Deleting an
// absent id succeeds silently.
func DeleteTripHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := database.DeleteSavedTrip(user.ID, c.Param("id")); err != nil {
		log.Printf("❌ Failed to delete trip %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}

// DownloadTripPDFHandler renders a saved trip as a PDF attachment.
func DownloadTripPDFHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	trip, err := database.GetSavedTrip(user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			log.Printf("❌ Failed to load trip %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trip"})
		}
		return
	}

	pdfBytes, err := services.GenerateTripPDF(*trip, user.Name)
	if err != nil {
		log.Printf("❌ PDF generation failed for trip %s: %v", trip.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=tripcraft-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
