package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/planner"
)

func TestGenerateTripPDF(t *testing.T) {
	research := FallbackResearch("Porto", []string{"food"})
	days := FallbackItinerary("Porto", "2026-06-01", 3, research, planner.TierMidRange)
	trip, err := planner.AssembleTrip(planner.TripRequest{
		Destination: "Porto",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-03",
		NumPeople:   2,
		BudgetTier:  planner.TierMidRange,
		Interests:   []string{"food", "history"},
	}, days)
	require.NoError(t, err)

	pdfBytes, err := GenerateTripPDF(trip, "Harshal")
	require.NoError(t, err)

	assert.Greater(t, len(pdfBytes), 1000)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGenerateTripPDF_LongTripPaginates(t *testing.T) {
	research := FallbackResearch("Porto", nil)
	days := FallbackItinerary("Porto", "2026-06-01", 14, research, planner.TierLuxury)
	trip, err := planner.AssembleTrip(planner.TripRequest{
		Destination: "Porto",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-14",
		NumPeople:   1,
		BudgetTier:  planner.TierLuxury,
	}, days)
	require.NoError(t, err)

	pdfBytes, err := GenerateTripPDF(trip, "")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
