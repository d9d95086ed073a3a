package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() TripRequest {
	return TripRequest{
		Destination: "Kyoto",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-12",
		NumPeople:   2,
		BudgetTier:  TierMidRange,
		Interests:   []string{"temples", "food"},
	}
}

func validDays(n int) []DayPlan {
	days := make([]DayPlan, n)
	for i := range days {
		days[i] = DayPlan{
			Day:         i + 1,
			Date:        "2026-04-10",
			Places:      []string{"Kinkaku-ji", "Nishiki Market"},
			Description: "Temples in the morning, market food in the evening.",
			Cost:        CostBreakdown{Hotel: 1700, Food: 1120, Transport: 650, Activities: 130},
		}
	}
	return days
}

func TestNumDays(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    int
		wantErr bool
	}{
		{name: "same day", start: "2026-04-10", end: "2026-04-10", want: 1},
		{name: "inclusive span", start: "2026-04-10", end: "2026-04-12", want: 3},
		{name: "across month boundary", start: "2026-04-29", end: "2026-05-02", want: 4},
		{name: "end before start", start: "2026-04-12", end: "2026-04-10", wantErr: true},
		{name: "bad start format", start: "10/04/2026", end: "2026-04-12", wantErr: true},
		{name: "bad end format", start: "2026-04-10", end: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NumDays(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssembleTrip_Valid(t *testing.T) {
	trip, err := AssembleTrip(validRequest(), validDays(3))
	require.NoError(t, err)

	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, "Kyoto", trip.Destination)
	assert.Equal(t, TierMidRange, trip.BudgetTier)
	assert.Len(t, trip.Days, 3)
	assert.Equal(t, 3*3600.0, trip.TotalCost)
	assert.False(t, trip.CreatedAt.IsZero())
}

// A producer returning fewer days than the requested span is a contract
// violation, not a shorter trip.
func TestAssembleTrip_WrongDayCount(t *testing.T) {
	_, err := AssembleTrip(validRequest(), validDays(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3")
}

func TestAssembleTrip_NonContiguousDayIndexes(t *testing.T) {
	days := validDays(3)
	days[2].Day = 5
	_, err := AssembleTrip(validRequest(), days)
	require.Error(t, err)
}

func TestAssembleTrip_DuplicateDayIndexes(t *testing.T) {
	days := validDays(3)
	days[1].Day = 1
	_, err := AssembleTrip(validRequest(), days)
	require.Error(t, err)
}

func TestAssembleTrip_EmptyPlaces(t *testing.T) {
	days := validDays(3)
	days[1].Places = nil
	_, err := AssembleTrip(validRequest(), days)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day 2")
}

func TestAssembleTrip_BadCosts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DayPlan)
	}{
		{name: "negative hotel", mutate: func(d *DayPlan) { d.Cost.Hotel = -1 }},
		{name: "NaN food", mutate: func(d *DayPlan) { d.Cost.Food = math.NaN() }},
		{name: "infinite transport", mutate: func(d *DayPlan) { d.Cost.Transport = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := validDays(3)
			tt.mutate(&days[0])
			_, err := AssembleTrip(validRequest(), days)
			require.Error(t, err)
		})
	}
}

func TestAssembleTrip_UnknownTier(t *testing.T) {
	req := validRequest()
	req.BudgetTier = "imperial"
	_, err := AssembleTrip(req, validDays(3))
	require.Error(t, err)
}

func TestReplaceDay_UpdatesDayAndTotal(t *testing.T) {
	trip, err := AssembleTrip(validRequest(), validDays(3))
	require.NoError(t, err)

	edited := trip.Days[1]
	edited.Places = []string{"Arashiyama"}
	edited.Cost = CostBreakdown{Hotel: 1700, Food: 500, Transport: 650, Activities: 0}

	out, err := ReplaceDay(trip, edited)
	require.NoError(t, err)

	assert.Equal(t, []string{"Arashiyama"}, out.Days[1].Places)
	assert.Equal(t, TotalCost(out.Days), out.TotalCost)
	assert.Equal(t, trip.TotalCost-750, out.TotalCost)

	// Original trip untouched.
	assert.Equal(t, []string{"Kinkaku-ji", "Nishiki Market"}, trip.Days[1].Places)
}

func TestReplaceDay_UnknownDayIndex(t *testing.T) {
	trip, err := AssembleTrip(validRequest(), validDays(3))
	require.NoError(t, err)

	_, err = ReplaceDay(trip, DayPlan{Day: 9, Places: []string{"x"}})
	require.Error(t, err)
}

func TestReplaceDay_RejectsInvalidCost(t *testing.T) {
	trip, err := AssembleTrip(validRequest(), validDays(3))
	require.NoError(t, err)

	bad := trip.Days[0]
	bad.Cost.Activities = -5
	_, err = ReplaceDay(trip, bad)
	require.Error(t, err)
}

func TestParseTier(t *testing.T) {
	for _, s := range []string{"budget", "mid_range", "luxury"} {
		tier, err := ParseTier(s)
		require.NoError(t, err)
		assert.Equal(t, BudgetTier(s), tier)
	}

	for _, s := range []string{"", "low", "LUXURY", "mid-range"} {
		_, err := ParseTier(s)
		assert.Error(t, err, "tier %q should be rejected", s)
	}
}
