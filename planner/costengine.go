package planner

import (
	"fmt"
	"math"
)

// ─── Aggregation ──────────────────────────────────────────────────────────────

// TotalCost sums all four cost fields across all days. An empty day list
// yields 0. Callers must re-run this after any change to a trip's days.
func TotalCost(days []DayPlan) float64 {
	var total float64
	for _, d := range days {
		total += d.Cost.Sum()
	}
	return total
}

// ─── Tier Recalculation ───────────────────────────────────────────────────────

// Recalculate rescales every day cost of trip from its current tier to
// target. Each field is divided by the old multiplier to recover the implied
// base cost, then multiplied by the new one and rounded to the nearest whole
// unit (half away from zero). TotalCost is recomputed as a fresh full sum
// over the rescaled days, never adjusted incrementally.
//
// Repeated tier switches accumulate bounded rounding drift, at most one unit
// per field per day per round trip. A zero field stays zero through any
// number of switches. Switching to the current tier returns the trip
// unchanged so the round trip cannot perturb values needlessly.
func Recalculate(trip Trip, target BudgetTier) (Trip, error) {
	oldCfg, ok := BudgetTiers[trip.BudgetTier]
	if !ok {
		return Trip{}, fmt.Errorf("trip has unknown budget tier %q", trip.BudgetTier)
	}
	newCfg, ok := BudgetTiers[target]
	if !ok {
		return Trip{}, fmt.Errorf("unknown target budget tier %q", target)
	}

	if trip.BudgetTier == target {
		return trip, nil
	}

	days := make([]DayPlan, len(trip.Days))
	for i, day := range trip.Days {
		day.Cost = CostBreakdown{
			Hotel:      rescale(day.Cost.Hotel, oldCfg.HotelMultiplier, newCfg.HotelMultiplier),
			Food:       rescale(day.Cost.Food, oldCfg.FoodMultiplier, newCfg.FoodMultiplier),
			Transport:  rescale(day.Cost.Transport, oldCfg.TransportMultiplier, newCfg.TransportMultiplier),
			Activities: rescale(day.Cost.Activities, oldCfg.ActivitiesMultiplier, newCfg.ActivitiesMultiplier),
		}
		days[i] = day
	}

	out := trip
	out.BudgetTier = target
	out.Days = days
	out.TotalCost = TotalCost(days)
	return out, nil
}

func rescale(value, oldMult, newMult float64) float64 {
	// math.Round is half away from zero, matching the documented rounding.
	return math.Round(value / oldMult * newMult)
}
