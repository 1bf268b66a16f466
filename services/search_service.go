package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"connectSFUAPI/internal/search"
)

type SearchService struct {
	generator contentGenerator
}

func NewSearchService(generator contentGenerator) *SearchService {
	return &SearchService{generator: generator}
}

var (
	fenceOpenRe  = regexp.MustCompile("(?i)^```json\\s*|^```\\s*")
	fenceCloseRe = regexp.MustCompile("```\\s*$")
)

// ParseQuery turns a free-text event search into structured filters via
// Gemini. Unlike compatibility scoring this does not fail open: a
// transport error or malformed model output is an error for the caller.
func (s *SearchService) ParseQuery(ctx context.Context, query string) (*search.Filters, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("search parsing is not configured")
	}

	raw, err := s.generator.GenerateContent(ctx, buildSearchPrompt(query))
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	cleaned := stripCodeFences(raw)

	filters := &search.Filters{}
	if err := json.Unmarshal([]byte(cleaned), filters); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}

	return filters, nil
}

// stripCodeFences removes a leading ```json / ``` fence and a trailing
// ``` fence that models often wrap JSON in despite instructions.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = fenceOpenRe.ReplaceAllString(text, "")
	text = fenceCloseRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func buildSearchPrompt(query string) string {
	return fmt.Sprintf(`
You are an event search assistant. Parse the user's query and extract structured filters.

User Query: "%s"

RULES FOR CATEGORY MATCHING:
Think semantically. Don't just match exact words - understand INTENT and CONTEXT.

Technology category includes: coding, programming, web dev, app development, software, AI, ML, machine learning, data science, cybersecurity, hackathon, tech, computer science, React, Python, Java, databases, cloud, DevOps, game dev, mobile dev, AR, VR, blockchain, etc.

Business category includes: entrepreneurship, startup, pitch, business plan, finance, marketing, sales, MBA, consulting, etc.

Networking category includes: meet people, connect, professionals, career fair, mixer, social, community building, etc.

Health & Wellness category includes: mental health, fitness, yoga, meditation, wellness, mindfulness, stress relief, nutrition, etc.

Cultural category includes: food festival, international, diversity, heritage, traditions, cultural celebration, music, art, etc.

Career category includes: job, internship, resume, interview, professional development, career panel, industry talks, etc.

Environment category includes: sustainability, climate, green, eco-friendly, recycling, conservation, nature, etc.

IMPORTANT: Understand the MEANING, not just keywords. "React workshop" = Technology even though it doesn't say "tech". "Pitch competition" = Business even without saying "business".

Available campuses: Burnaby, Surrey, Vancouver
Date ranges: Today, Tomorrow, This weekend, Next week, This month

Return ONLY valid JSON. No markdown, no backticks, no explanation.

Format:
{
  "categories": ["exact category names that match the INTENT"],
  "campuses": ["exact campus names"],
  "dateRange": "exact date range or empty string",
  "keywords": ["extract key terms from query"]
}

Examples:
Query: "React workshops"
{"categories": ["Technology"], "campuses": [], "dateRange": "", "keywords": ["react", "workshops"]}

Query: "startup pitch night"
{"categories": ["Business"], "campuses": [], "dateRange": "", "keywords": ["startup", "pitch"]}

Query: "food festival this weekend"
{"categories": ["Cultural"], "campuses": [], "dateRange": "This weekend", "keywords": ["food", "festival"]}

Now parse this query (think about INTENT and CONTEXT, not just exact words):
`, query)
}
