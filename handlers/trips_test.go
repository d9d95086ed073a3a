package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/planner"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/trips/recalculate", RecalculateHandler)
	r.POST("/api/trips/day", UpdateDayHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleTrip() planner.Trip {
	days := []planner.DayPlan{
		{
			Day: 1, Date: "2026-03-01", Places: []string{"Amber Fort"},
			Cost: planner.CostBreakdown{Hotel: 1700, Food: 1120, Transport: 650, Activities: 130},
		},
		{
			Day: 2, Date: "2026-03-02", Places: []string{"City Palace"},
			Cost: planner.CostBreakdown{Hotel: 1700, Food: 1120, Transport: 650, Activities: 130},
		},
		{
			Day: 3, Date: "2026-03-03", Places: []string{"Hawa Mahal"},
			Cost: planner.CostBreakdown{Hotel: 1700, Food: 1120, Transport: 650, Activities: 130},
		},
	}
	return planner.Trip{
		ID:          "trip-http-1",
		Destination: "Jaipur",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-03",
		NumPeople:   2,
		BudgetTier:  planner.TierMidRange,
		Days:        days,
		TotalCost:   planner.TotalCost(days),
	}
}

func TestRecalculateHandler_MidRangeToBudget(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/trips/recalculate", RecalculateRequest{
		Trip:       sampleTrip(),
		TargetTier: "budget",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got planner.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, planner.TierBudget, got.BudgetTier)
	assert.Equal(t, 7200.0, got.TotalCost)
	for _, d := range got.Days {
		assert.Equal(t, planner.CostBreakdown{Hotel: 1000, Food: 800, Transport: 500, Activities: 100}, d.Cost)
	}
}

func TestRecalculateHandler_RejectsUnknownTier(t *testing.T) {
	r := testRouter()

	w := postJSON(t, r, "/api/trips/recalculate", RecalculateRequest{
		Trip:       sampleTrip(),
		TargetTier: "ultra_luxury",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "ultra_luxury")
}

func TestRecalculateHandler_RejectsMissingBody(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/trips/recalculate", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateDayHandler_ReplacesDayAndTotal(t *testing.T) {
	r := testRouter()
	trip := sampleTrip()

	edited := trip.Days[1]
	edited.Places = []string{"Nahargarh Fort"}
	edited.Cost.Activities = 530

	w := postJSON(t, r, "/api/trips/day", UpdateDayRequest{Trip: trip, Day: edited})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got planner.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, []string{"Nahargarh Fort"}, got.Days[1].Places)
	assert.Equal(t, trip.TotalCost+400, got.TotalCost)
}

func TestUpdateDayHandler_UnknownDay(t *testing.T) {
	r := testRouter()
	trip := sampleTrip()

	w := postJSON(t, r, "/api/trips/day", UpdateDayRequest{
		Trip: trip,
		Day:  planner.DayPlan{Day: 42, Places: []string{"Nowhere"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateDayHandler_NegativeCost(t *testing.T) {
	r := testRouter()
	trip := sampleTrip()

	bad := trip.Days[0]
	bad.Cost.Food = -10

	w := postJSON(t, r, "/api/trips/day", UpdateDayRequest{Trip: trip, Day: bad})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
