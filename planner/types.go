package planner

import (
	"fmt"
	"time"
)

// ─── Budget Tiers ─────────────────────────────────────────────────────────────

type BudgetTier string

const (
	TierBudget   BudgetTier = "budget"
	TierMidRange BudgetTier = "mid_range"
	TierLuxury   BudgetTier = "luxury"
)

// ParseTier validates a tier received from the outside world. Internal code
// always works with the three constants above.
func ParseTier(s string) (BudgetTier, error) {
	switch BudgetTier(s) {
	case TierBudget, TierMidRange, TierLuxury:
		return BudgetTier(s), nil
	}
	return "", fmt.Errorf("unknown budget tier %q", s)
}

// TierConfig holds the scale factors applied to each cost field for a tier.
// Multipliers are strictly positive so dividing by them is always safe.
type TierConfig struct {
	HotelMultiplier      float64 `json:"hotel_multiplier"`
	FoodMultiplier       float64 `json:"food_multiplier"`
	TransportMultiplier  float64 `json:"transport_multiplier"`
	ActivitiesMultiplier float64 `json:"activities_multiplier"`
}

// BudgetTiers is the static tier configuration. Defined once, never mutated.
var BudgetTiers = map[BudgetTier]TierConfig{
	TierBudget: {
		HotelMultiplier:      1.0,
		FoodMultiplier:       1.0,
		TransportMultiplier:  1.0,
		ActivitiesMultiplier: 1.0,
	},
	TierMidRange: {
		HotelMultiplier:      1.7,
		FoodMultiplier:       1.4,
		TransportMultiplier:  1.3,
		ActivitiesMultiplier: 1.3,
	},
	TierLuxury: {
		HotelMultiplier:      3.0,
		FoodMultiplier:       2.5,
		TransportMultiplier:  2.0,
		ActivitiesMultiplier: 2.0,
	},
}

// ─── Itinerary Types ──────────────────────────────────────────────────────────

// CostBreakdown is the four-field daily cost vector, in whole currency units.
type CostBreakdown struct {
	Hotel      float64 `json:"hotel"`
	Food       float64 `json:"food"`
	Transport  float64 `json:"transport"`
	Activities float64 `json:"activities"`
}

// Sum returns hotel + food + transport + activities for one day.
func (c CostBreakdown) Sum() float64 {
	return c.Hotel + c.Food + c.Transport + c.Activities
}

type DayPlan struct {
	Day         int           `json:"day"`
	Date        string        `json:"date"`
	Places      []string      `json:"places"`
	Description string        `json:"description"`
	Cost        CostBreakdown `json:"cost"`
}

// Trip is the full multi-day itinerary. TotalCost is derived from Days and
// must be recomputed after every mutation; mutating operations in this
// package return a fresh Trip value rather than editing in place.
type Trip struct {
	ID          string     `json:"id"`
	Destination string     `json:"destination"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	NumPeople   int        `json:"num_people"`
	BudgetTier  BudgetTier `json:"budget_tier"`
	Interests   []string   `json:"interests"`
	Days        []DayPlan  `json:"days"`
	TotalCost   float64    `json:"total_cost"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
}

// ─── Research Payload ─────────────────────────────────────────────────────────

// ResearchResult is the structured payload the research producer returns for
// a destination. Base costs are tier-independent.
type ResearchResult struct {
	SuggestedPlaces  []SuggestedPlace  `json:"suggestedPlaces"`
	SuggestedHotels  []SuggestedHotel  `json:"suggestedHotels"`
	TransportOptions []TransportOption `json:"transportOptions"`
}

type SuggestedPlace struct {
	Name        string  `json:"name"`
	BaseCost    float64 `json:"baseCost"`
	Description string  `json:"description"`
}

type SuggestedHotel struct {
	Name             string  `json:"name"`
	BaseCostPerNight float64 `json:"baseCostPerNight"`
	Description      string  `json:"description"`
}

type TransportOption struct {
	Type           string  `json:"type"`
	BaseCostPerDay float64 `json:"baseCostPerDay"`
}
