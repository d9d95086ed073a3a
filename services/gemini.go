package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tripcraft/planner"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type ChatIntent string

const (
	IntentFAQ           ChatIntent = "FAQ"
	IntentBookingStatus ChatIntent = "Booking_Status"
	IntentCancellation  ChatIntent = "Cancellation"
	IntentRefund        ChatIntent = "Refund"
	IntentComplaint     ChatIntent = "Complaint"
	IntentTalkToHuman   ChatIntent = "Talk_To_Human"
)

type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

type ChatEntities struct {
	BookingID string `json:"bookingId,omitempty"`
	IssueType string `json:"issueType,omitempty"`
	TicketID  string `json:"ticketId,omitempty"`
}

type ChatReply struct {
	Text     string       `json:"text"`
	Intent   ChatIntent   `json:"intent,omitempty"`
	Entities ChatEntities `json:"entities"`
}

type ExploreData struct {
	Recommended    []string `json:"recommended"`
	Trending       []string `json:"trending"`
	RecentlyViewed []string `json:"recentlyViewed"`
}

// ─── AI Client ────────────────────────────────────────────────────────────────

type AIClient struct {
	client     *genai.Client
	flashModel string
	proModel   string
}

var aiClient *AIClient

func InitAI() {
	flash := os.Getenv("GEMINI_FLASH_MODEL")
	if flash == "" {
		flash = "gemini-2.5-flash-lite"
	}
	pro := os.Getenv("GEMINI_PRO_MODEL")
	if pro == "" {
		pro = "gemini-2.5-pro"
	}

	aiClient = &AIClient{flashModel: flash, proModel: pro}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set — itineraries and chat will use offline fallback data")
		return
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("⚠️  Failed to create Gemini client: %v — using offline fallback data", err)
		return
	}

	aiClient.client = client
	log.Printf("✅ AI (Gemini) initialized: %s / %s", flash, pro)
}

func GetAIClient() *AIClient {
	return aiClient
}

// Enabled reports whether a real Gemini client is configured. When false,
// handlers serve the deterministic fallback producers instead.
func (c *AIClient) Enabled() bool {
	return c.client != nil
}

// ─── Research Producer ────────────────────────────────────────────────────────

const researchSystemPrompt = "You are a detail-oriented travel researcher. " +
	"Provide structured data for destinations, accommodations, and transportation. " +
	"Respond with a single JSON object with keys suggestedPlaces " +
	"(array of {name, baseCost, description}), suggestedHotels " +
	"(array of {name, baseCostPerNight, description}) and transportOptions " +
	"(array of {type, baseCostPerDay}). No prose outside the JSON."

// ResearchDestination asks for places, hotel options and transport types with
// tier-independent base costs for a destination.
func (c *AIClient) ResearchDestination(ctx context.Context, destination string, interests []string) (planner.ResearchResult, error) {
	prompt := fmt.Sprintf(
		`Research a trip to %s for someone interested in %s.
Provide a list of 8 top places to visit, 3 hotel options (economy, mid, luxury), and typical transport types.
Include estimated base costs in local currency equivalents (assuming 1 USD = 80 units for consistency).`,
		destination, strings.Join(interests, ", "))

	var result planner.ResearchResult
	if err := c.generateJSON(ctx, c.flashModel, researchSystemPrompt, prompt, &result); err != nil {
		return planner.ResearchResult{}, fmt.Errorf("research producer: %w", err)
	}
	if len(result.SuggestedPlaces) == 0 || len(result.SuggestedHotels) == 0 {
		return planner.ResearchResult{}, fmt.Errorf("research producer returned an empty payload for %q", destination)
	}
	return result, nil
}

// ─── Itinerary Producer ───────────────────────────────────────────────────────

const plannerSystemPromptFmt = `You are a professional travel planner.
Rules:
- Group nearby places together to optimize travel routes.
- Assign realistic activities per day.
- Output exactly the requested number of day-wise plans with specific costs.
- Each day must include specific costs for hotel, food, transport, and activities based on the provided research data.
- Scale food and hotel costs appropriately according to the '%s' budget tier.
Respond with a single JSON array of {day, date, places, description, cost:{hotel, food, transport, activities}}. Day indexes start at 1. No prose outside the JSON.`

// PlanItinerary organizes a research payload into numDays day plans. Shape
// enforcement (day count, contiguous indexes, cost fields) belongs to
// planner.AssembleTrip, not here.
func (c *AIClient) PlanItinerary(ctx context.Context, destination string, numDays int, research planner.ResearchResult, tier planner.BudgetTier) ([]planner.DayPlan, error) {
	places, _ := json.Marshal(research.SuggestedPlaces)
	hotels, _ := json.Marshal(research.SuggestedHotels)
	transport, _ := json.Marshal(research.TransportOptions)

	prompt := fmt.Sprintf(
		`Organize the following researched data into a logical %d-day itinerary for %s.
Budget Tier: %s.

Data:
Places: %s
Hotels: %s
Transport: %s`,
		numDays, destination, tier, places, hotels, transport)

	var days []planner.DayPlan
	if err := c.generateJSON(ctx, c.proModel, fmt.Sprintf(plannerSystemPromptFmt, tier), prompt, &days); err != nil {
		return nil, fmt.Errorf("itinerary producer: %w", err)
	}
	return days, nil
}

// ─── Support-Chat Producer ────────────────────────────────────────────────────

const chatSystemPrompt = `You are the "AI Travel Agent Help & Grievance Assistant".
Your role is to assist users with FAQs, bookings, cancellations, refunds, and complaints.

Operational Rules:
1. PERSONA: Be professional, empathetic, and efficient.
2. ENTITY EXTRACTION: Always look for Booking IDs (format: TX followed by 4-6 digits, e.g., TX1234).
3. INTENT CLASSIFICATION: Classify the user's intent into: FAQ, Booking_Status, Cancellation, Refund, Complaint, or Talk_To_Human.
4. REFUNDS: If a user asks about a refund for a specific ID, simulate a check and inform them it is "Processing" or "Completed".
5. COMPLAINTS: If a user has a grievance, provide a simulated Ticket ID (e.g., CASE-9923).
6. ESCALATION: If the user is very frustrated or explicitly asks for a human, set the intent to 'Talk_To_Human'.
7. FORMATTING: Use clear, concise language. Use bullet points for steps.

Always respond with a single JSON object: {"text": ..., "intent": ..., "entities": {"bookingId": ..., "issueType": ..., "ticketId": ...}}. Only "text" is mandatory.`

// SupportChat sends one user message with prior history and returns the
// assistant's reply plus classified intent and extracted entities.
func (c *AIClient) SupportChat(ctx context.Context, history []ChatMessage, message string) (ChatReply, error) {
	if !c.Enabled() {
		return ChatReply{}, fmt.Errorf("AI client not configured")
	}

	model := c.client.GenerativeModel(c.flashModel)
	model.SystemInstruction = genai.NewUserContent(genai.Text(chatSystemPrompt))
	model.ResponseMIMEType = "application/json"

	cs := model.StartChat()
	for _, h := range history {
		role := "user"
		if h.Role == "model" || h.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(h.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return ChatReply{}, fmt.Errorf("chat producer: %w", err)
	}

	var reply ChatReply
	if err := json.Unmarshal([]byte(stripFences(responseText(resp))), &reply); err != nil {
		return ChatReply{}, fmt.Errorf("chat producer: failed to parse response: %w", err)
	}
	if reply.Text == "" {
		return ChatReply{}, fmt.Errorf("chat producer returned an empty reply")
	}
	return reply, nil
}

// ─── Explore Producer ─────────────────────────────────────────────────────────

const exploreSystemPrompt = "You are a travel recommendation engine. " +
	"Respond with a single JSON object: {\"recommended\": [...], \"trending\": [...]}, " +
	"each an array of destination names. No prose outside the JSON."

// Explore returns personalized and trending destinations. RecentlyViewed is
// filled in by the caller from the activity log.
func (c *AIClient) Explore(ctx context.Context, interests []string) (ExploreData, error) {
	prompt := fmt.Sprintf(
		"Based on user interests: %s, recommend 3 travel destinations and 3 trending global destinations.",
		strings.Join(interests, ", "))

	var data ExploreData
	if err := c.generateJSON(ctx, c.flashModel, exploreSystemPrompt, prompt, &data); err != nil {
		return ExploreData{}, fmt.Errorf("explore producer: %w", err)
	}
	return data, nil
}

// ─── Shared plumbing ──────────────────────────────────────────────────────────

// generateJSON runs a single-turn generation and unmarshals the JSON reply
// into out. One attempt per call; retries are the caller's decision.
func (c *AIClient) generateJSON(ctx context.Context, modelName, system, prompt string, out any) error {
	if !c.Enabled() {
		return fmt.Errorf("AI client not configured")
	}

	model := c.client.GenerativeModel(modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return err
	}

	text := stripFences(responseText(resp))
	if text == "" {
		return fmt.Errorf("empty response from model %s", modelName)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// stripFences removes a Markdown code fence the model sometimes wraps JSON in
// despite the response MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
