package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripcraft/database"
	"tripcraft/services"
)

// ExploreHandler returns personalized and trending destinations for the
// session user, plus their recently planned destinations from the activity
// log. Interests come as a comma-separated query parameter.
func ExploreHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var interests []string
	for _, raw := range strings.Split(c.Query("interests"), ",") {
		if v := strings.TrimSpace(raw); v != "" {
			interests = append(interests, v)
		}
	}

	ai := services.GetAIClient()

	var data services.ExploreData
	if ai.Enabled() {
		var err error
		data, err = ai.Explore(c.Request.Context(), interests)
		if err != nil {
			log.Printf("⚠️  Explore producer failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load recommendations. Please try again."})
			return
		}
	} else {
		data = services.FallbackExplore(interests)
	}

	recent, err := database.RecentDestinations(user.ID, 5)
	if err != nil {
		log.Printf("⚠️  Failed to read recent destinations: %v", err)
	}
	if len(recent) == 0 {
		recent = []string{"Kyoto", "Manali"}
	}
	data.RecentlyViewed = recent

	c.JSON(http.StatusOK, data)
}
