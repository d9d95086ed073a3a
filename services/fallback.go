package services

import (
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
	"time"

	"tripcraft/planner"
)

// Tier-independent base costs in local currency units, used when the AI
// producers are not configured.
const (
	baseDailyFoodCost = 800
	baseTransportCost = 500
)

// ─── Fallback (when Gemini is not configured) ────────────────────────────────

// FallbackResearch produces a plausible research payload without an API key.
// Output is deterministic per destination so repeated generations line up.
func FallbackResearch(destination string, interests []string) planner.ResearchResult {
	type placeTemplate struct {
		name     string
		baseCost float64
	}

	templates := []placeTemplate{
		{"%s Old Town Walk", 0},
		{"National Museum of %s", 240},
		{"%s Fort & Citadel", 320},
		{"%s Central Market", 80},
		{"%s Riverside Promenade", 0},
		{"%s Heritage Palace", 400},
		{"%s Botanical Gardens", 160},
		{"%s Viewpoint & Cable Car", 560},
	}

	interest := "local culture"
	if len(interests) > 0 {
		interest = interests[0]
	}

	places := make([]planner.SuggestedPlace, 0, len(templates))
	for _, t := range templates {
		places = append(places, planner.SuggestedPlace{
			Name:        fmt.Sprintf(t.name, destination),
			BaseCost:    t.baseCost,
			Description: fmt.Sprintf("A popular stop in %s, well suited to travelers into %s.", destination, interest),
		})
	}

	return planner.ResearchResult{
		SuggestedPlaces: places,
		SuggestedHotels: []planner.SuggestedHotel{
			{Name: "City Hostel " + destination, BaseCostPerNight: 600, Description: "Clean dorms and private rooms near the center."},
			{Name: destination + " Garden Hotel", BaseCostPerNight: 1000, Description: "Comfortable mid-range rooms with breakfast."},
			{Name: "The Grand " + destination, BaseCostPerNight: 2400, Description: "Five-star property in the historic quarter."},
		},
		TransportOptions: []planner.TransportOption{
			{Type: "Metro & Bus Pass", BaseCostPerDay: 120},
			{Type: "Auto / Taxi", BaseCostPerDay: baseTransportCost},
			{Type: "Rental Scooter", BaseCostPerDay: 680},
		},
	}
}

// FallbackItinerary spreads the researched places over numDays and prices
// each day from the tier-independent base costs scaled by the tier's
// multipliers, so the tier recalculation engine round-trips cleanly.
func FallbackItinerary(destination, startDate string, numDays int, research planner.ResearchResult, tier planner.BudgetTier) []planner.DayPlan {
	cfg, ok := planner.BudgetTiers[tier]
	if !ok {
		cfg = planner.BudgetTiers[planner.TierBudget]
	}

	baseHotel := 1000.0
	if len(research.SuggestedHotels) > 0 {
		baseHotel = research.SuggestedHotels[0].BaseCostPerNight
	}
	baseTransport := float64(baseTransportCost)
	if len(research.TransportOptions) > 0 {
		baseTransport = research.TransportOptions[0].BaseCostPerDay
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		start = time.Now()
	}

	days := make([]planner.DayPlan, numDays)
	for i := range days {
		var places []string
		var baseActivities float64
		// Two places a day, cycling through the research list.
		for j := 0; j < 2 && len(research.SuggestedPlaces) > 0; j++ {
			p := research.SuggestedPlaces[(i*2+j)%len(research.SuggestedPlaces)]
			places = append(places, p.Name)
			baseActivities += p.BaseCost
		}
		if len(places) == 0 {
			places = []string{"Free exploration of " + destination}
		}

		days[i] = planner.DayPlan{
			Day:    i + 1,
			Date:   start.AddDate(0, 0, i).Format("2006-01-02"),
			Places: places,
			Description: fmt.Sprintf("Day %d in %s: %s.",
				i+1, destination, strings.Join(places, ", then ")),
			Cost: planner.CostBreakdown{
				Hotel:      math.Round(baseHotel * cfg.HotelMultiplier),
				Food:       math.Round(baseDailyFoodCost * cfg.FoodMultiplier),
				Transport:  math.Round(baseTransport * cfg.TransportMultiplier),
				Activities: math.Round(baseActivities * cfg.ActivitiesMultiplier),
			},
		}
	}
	return days
}

// ─── Chat Fallback ────────────────────────────────────────────────────────────

var bookingIDPattern = regexp.MustCompile(`\bTX\d{4,6}\b`)

// FallbackChatReply answers a support message with keyword classification
// when the chat producer is unavailable. Intents and entity formats match
// the live producer's contract.
func FallbackChatReply(message string) ChatReply {
	lower := strings.ToLower(message)

	entities := ChatEntities{BookingID: bookingIDPattern.FindString(message)}

	switch {
	case strings.Contains(lower, "human") || strings.Contains(lower, "agent"):
		return ChatReply{
			Text:     "I understand. Connecting you with a human support agent now — please hold on.",
			Intent:   IntentTalkToHuman,
			Entities: entities,
		}
	case strings.Contains(lower, "refund"):
		entities.IssueType = "refund"
		return ChatReply{
			Text:     refundText(entities.BookingID),
			Intent:   IntentRefund,
			Entities: entities,
		}
	case strings.Contains(lower, "cancel"):
		entities.IssueType = "cancellation"
		return ChatReply{
			Text:     "I can help with a cancellation. Please confirm your booking ID (e.g., TX1234) and I will start the process.",
			Intent:   IntentCancellation,
			Entities: entities,
		}
	case strings.Contains(lower, "booking") || strings.Contains(lower, "status"):
		entities.IssueType = "booking_status"
		return ChatReply{
			Text:     "Your booking is confirmed and on track. Share a booking ID like TX1234 if you want details for a specific trip.",
			Intent:   IntentBookingStatus,
			Entities: entities,
		}
	case strings.Contains(lower, "complain") || strings.Contains(lower, "terrible") || strings.Contains(lower, "worst"):
		entities.IssueType = "complaint"
		entities.TicketID = fmt.Sprintf("CASE-%04d", stableHash(message)%10000)
		return ChatReply{
			Text:     fmt.Sprintf("I'm sorry about the experience. I've filed ticket %s and our team will follow up within 24 hours.", entities.TicketID),
			Intent:   IntentComplaint,
			Entities: entities,
		}
	}

	return ChatReply{
		Text:     "Happy to help! You can ask me about bookings, cancellations, refunds, or anything about planning your trip.",
		Intent:   IntentFAQ,
		Entities: entities,
	}
}

func refundText(bookingID string) string {
	if bookingID == "" {
		return "I can check a refund for you — please share the booking ID (format TX followed by digits, e.g., TX1234)."
	}
	// Simulated status, stable per booking ID.
	status := "Processing"
	if stableHash(bookingID)%2 == 0 {
		status = "Completed"
	}
	return fmt.Sprintf("The refund for booking %s is currently %s. Refunds usually settle within 5-7 business days.", bookingID, status)
}

func stableHash(s string) int {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int(h.Sum32())
}

// ─── Explore Fallback ─────────────────────────────────────────────────────────

// FallbackExplore returns canned recommendations keyed off the first
// interest so different profiles see different lists.
func FallbackExplore(interests []string) ExploreData {
	byInterest := map[string][]string{
		"food":      {"Bangkok", "Bologna", "Oaxaca"},
		"history":   {"Rome", "Cairo", "Kyoto"},
		"nature":    {"Queenstown", "Banff", "Tromsø"},
		"beaches":   {"Gokarna", "Zanzibar", "Palawan"},
		"nightlife": {"Berlin", "Tbilisi", "Mexico City"},
	}

	recommended := []string{"Lisbon", "Hanoi", "Istanbul"}
	for _, interest := range interests {
		if picks, ok := byInterest[strings.ToLower(interest)]; ok {
			recommended = picks
			break
		}
	}

	return ExploreData{
		Recommended: recommended,
		Trending:    []string{"Tirana", "Medellín", "Da Nang"},
	}
}
