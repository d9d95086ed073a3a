package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripcraft/planner"
)

// GenerateTripPDF renders a saved trip as a PDF and returns raw bytes
// (no filesystem involved).
func GenerateTripPDF(trip planner.Trip, travelerName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripCraft", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Powered Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4,
		"This is NOT a booking confirmation. Costs are AI-generated estimates and subject to change. Please verify with providers before booking.",
		"", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	name := travelerName
	if name == "" {
		name = "Guest Traveler"
	}
	row("Traveler", name)
	row("Destination", trip.Destination)
	row("Dates", fmt.Sprintf("%s — %s", fmtDateReadable(trip.StartDate), fmtDateReadable(trip.EndDate)))
	row("Party", fmt.Sprintf("%d traveler(s)", trip.NumPeople))
	row("Budget tier", tierLabel(trip.BudgetTier))
	if len(trip.Interests) > 0 {
		row("Interests", strings.Join(trip.Interests, ", "))
	}
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Day-by-Day Plan ───────────────────────────────────────
	for _, day := range trip.Days {
		// Keep a day's block together when near the page end.
		if pdf.GetY() > 230 {
			pdf.AddPage()
		}

		sectionHeader(fmt.Sprintf("Day %d — %s", day.Day, fmtDateReadable(day.Date)))
		row("Places", strings.Join(day.Places, " · "))
		if day.Description != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(60, 60, 60)
			pdf.MultiCell(170, 4.5, day.Description, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
		row("Hotel", fmtCost(day.Cost.Hotel))
		row("Food", fmtCost(day.Cost.Food))
		row("Transport", fmtCost(day.Cost.Transport))
		row("Activities", fmtCost(day.Cost.Activities))
		row("Day total", fmtCost(day.Cost.Sum()))
		pdf.Ln(3)
	}

	// ── Cost Summary ──────────────────────────────────────────
	if pdf.GetY() > 240 {
		pdf.AddPage()
	}
	sectionHeader("Cost Estimate")
	var hotel, food, transport, activities float64
	for _, day := range trip.Days {
		hotel += day.Cost.Hotel
		food += day.Cost.Food
		transport += day.Cost.Transport
		activities += day.Cost.Activities
	}
	row("Hotels", fmtCost(hotel))
	row("Food", fmtCost(food))
	row("Transport", fmtCost(transport))
	row("Activities", fmtCost(activities))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmtCost(trip.TotalCost), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TripCraft AI Travel Planner · Not a booking confirmation · Costs subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func tierLabel(tier planner.BudgetTier) string {
	switch tier {
	case planner.TierBudget:
		return "Budget"
	case planner.TierMidRange:
		return "Mid-range"
	case planner.TierLuxury:
		return "Luxury"
	}
	return string(tier)
}

func fmtCost(v float64) string {
	return fmt.Sprintf("%.0f units", v)
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
