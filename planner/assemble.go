package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// TripRequest is what the user supplies to start a generation.
type TripRequest struct {
	Destination string     `json:"destination"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	NumPeople   int        `json:"num_people"`
	BudgetTier  BudgetTier `json:"budget_tier"`
	Interests   []string   `json:"interests"`
}

// NumDays returns the inclusive day span between two YYYY-MM-DD dates:
// a trip starting and ending on the same date is one day long.
func NumDays(startDate, endDate string) (int, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// AssembleTrip builds a Trip from producer output. The itinerary producer is
// trusted for content but not for shape: the day list must have exactly
// numDays entries with contiguous 1-based indexes, a non-empty places list
// and a finite, non-negative cost vector. Any violation is a generation
// failure surfaced to the caller; malformed output is never repaired.
func AssembleTrip(req TripRequest, days []DayPlan) (Trip, error) {
	numDays, err := NumDays(req.StartDate, req.EndDate)
	if err != nil {
		return Trip{}, err
	}
	if _, err := ParseTier(string(req.BudgetTier)); err != nil {
		return Trip{}, err
	}
	if err := validateDays(days, numDays); err != nil {
		return Trip{}, err
	}

	return Trip{
		ID:          uuid.New().String(),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		NumPeople:   req.NumPeople,
		BudgetTier:  req.BudgetTier,
		Interests:   req.Interests,
		Days:        days,
		TotalCost:   TotalCost(days),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ReplaceDay swaps a single day of the trip and re-derives the total. The
// replacement must carry a day index that exists in the trip and a valid
// cost vector. Returns a new Trip; the input is left untouched.
func ReplaceDay(trip Trip, day DayPlan) (Trip, error) {
	if err := validateCost(day.Cost); err != nil {
		return Trip{}, fmt.Errorf("day %d: %w", day.Day, err)
	}

	idx := -1
	for i, d := range trip.Days {
		if d.Day == day.Day {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Trip{}, fmt.Errorf("trip has no day %d", day.Day)
	}

	days := make([]DayPlan, len(trip.Days))
	copy(days, trip.Days)
	days[idx] = day

	out := trip
	out.Days = days
	out.TotalCost = TotalCost(days)
	return out, nil
}

func validateDays(days []DayPlan, numDays int) error {
	if len(days) != numDays {
		return fmt.Errorf("itinerary has %d days, expected %d", len(days), numDays)
	}
	for i, d := range days {
		if d.Day != i+1 {
			return fmt.Errorf("day index %d at position %d, expected %d", d.Day, i, i+1)
		}
		if len(d.Places) == 0 {
			return fmt.Errorf("day %d has no places", d.Day)
		}
		if err := validateCost(d.Cost); err != nil {
			return fmt.Errorf("day %d: %w", d.Day, err)
		}
	}
	return nil
}

func validateCost(c CostBreakdown) error {
	fields := map[string]float64{
		"hotel":      c.Hotel,
		"food":       c.Food,
		"transport":  c.Transport,
		"activities": c.Activities,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("cost field %s is not finite", name)
		}
		if v < 0 {
			return fmt.Errorf("cost field %s is negative", name)
		}
	}
	return nil
}
