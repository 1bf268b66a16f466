package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"connectSFUAPI/internal/buddy"
	"connectSFUAPI/internal/event"
	"connectSFUAPI/middleware"
	"connectSFUAPI/utils"
)

// neutralScore is substituted when the scoring call fails for any
// reason. Load-bearing for the acceptance threshold: matching degrades
// to rule-based scoring rather than failing the request.
const neutralScore = 50

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// MatchProfile is the slice of a participant that the scorer sees.
type MatchProfile struct {
	Bio              string
	Interests        []string
	Vibe             buddy.Vibe
	GenderPreference buddy.GenderPreference
}

// ScoringService produces 0-100 compatibility scores by blending a
// Gemini-derived semantic score with deterministic bonuses.
type ScoringService struct {
	generator contentGenerator
}

func NewScoringService(generator contentGenerator) *ScoringService {
	return &ScoringService{generator: generator}
}

// Score returns the final compatibility score for a requester/candidate
// pair. Bonuses are added after the semantic score and are not
// re-clamped, so a strong pairing can exceed 100.
func (s *ScoringService) Score(ctx context.Context, requester, candidate *MatchProfile, ev *event.Event) int {
	score := s.semanticScore(ctx, requester, candidate, ev)
	score += utils.CompatibilityBonuses(requester.Vibe, candidate.Vibe, requester.Interests, candidate.Interests)
	return score
}

// semanticScore asks Gemini for a 0-100 rating of the pairing. One
// outbound call per candidate, bounded by ctx. Any failure falls open
// to the neutral default.
func (s *ScoringService) semanticScore(ctx context.Context, requester, candidate *MatchProfile, ev *event.Event) int {
	if s.generator == nil {
		middleware.RecordGeminiFallback()
		return neutralScore
	}

	reply, err := s.generator.GenerateContent(ctx, buildScorePrompt(requester, candidate, ev))
	if err != nil {
		log.Printf("Gemini API error: %v", err)
		middleware.RecordGeminiFallback()
		return neutralScore
	}

	return utils.ClampScore(utils.ParseScoreText(reply))
}

func buildScorePrompt(requester, candidate *MatchProfile, ev *event.Event) string {
	var b strings.Builder

	b.WriteString("Rate the compatibility between two students for attending an event together. Return only a number between 0-100.\n\n")
	fmt.Fprintf(&b, "Event: %s - %s\n", ev.Title, ev.Description)
	fmt.Fprintf(&b, "Event Category: %s\n", ev.Category)
	fmt.Fprintf(&b, "Event Campus: %s\n\n", ev.Campus)

	writeStudent(&b, 1, requester)
	b.WriteString("\n")
	writeStudent(&b, 2, candidate)

	b.WriteString(`
Consider:
- Shared interests and hobbies
- Compatible vibes (just attend vs explore vs new friend)
- Gender preferences
- Event type and category relevance
- Campus proximity

Return only a compatibility score (0-100):`)

	return b.String()
}

func writeStudent(b *strings.Builder, n int, p *MatchProfile) {
	bio := p.Bio
	if bio == "" {
		bio = "No bio provided"
	}
	interests := strings.Join(p.Interests, ", ")
	if interests == "" {
		interests = "No interests listed"
	}

	fmt.Fprintf(b, "Student %d:\n", n)
	fmt.Fprintf(b, "- Bio: %s\n", bio)
	fmt.Fprintf(b, "- Interests: %s\n", interests)
	fmt.Fprintf(b, "- Vibe: %s\n", p.Vibe)
	fmt.Fprintf(b, "- Gender Preference: %s\n", p.GenderPreference)
}
