package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"connectSFUAPI/internal/buddy"
	"connectSFUAPI/internal/event"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testEvent() *event.Event {
	return &event.Event{
		Title:       "Hack Night",
		Description: "An evening of pair programming",
		Category:    "Technology",
		Campus:      "Burnaby",
	}
}

func plainProfile(vibe buddy.Vibe) *MatchProfile {
	return &MatchProfile{Vibe: vibe, GenderPreference: buddy.PreferenceOpen}
}

func TestScoreUsesModelReply(t *testing.T) {
	scorer := NewScoringService(&fakeGenerator{reply: "85"})

	score := scorer.Score(context.Background(), plainProfile(buddy.VibeExplore), plainProfile(buddy.VibeJustAttend), testEvent())
	assert.Equal(t, 85, score)
}

func TestScoreFallsOpenToNeutralOnError(t *testing.T) {
	scorer := NewScoringService(&fakeGenerator{err: errors.New("deadline exceeded")})

	score := scorer.Score(context.Background(), plainProfile(buddy.VibeExplore), plainProfile(buddy.VibeJustAttend), testEvent())
	assert.Equal(t, 50, score)
}

func TestScoreNonNumericReplyIsZeroNotNeutral(t *testing.T) {
	// A successful call with unusable text parses to 0; the neutral
	// default only covers transport failures.
	scorer := NewScoringService(&fakeGenerator{reply: "N/A"})

	score := scorer.Score(context.Background(), plainProfile(buddy.VibeExplore), plainProfile(buddy.VibeJustAttend), testEvent())
	assert.Equal(t, 0, score)
}

func TestScoreClampsModelReply(t *testing.T) {
	scorer := NewScoringService(&fakeGenerator{reply: "250"})

	score := scorer.Score(context.Background(), plainProfile(buddy.VibeExplore), plainProfile(buddy.VibeJustAttend), testEvent())
	assert.Equal(t, 100, score)
}

func TestScoreAddsBonusesAfterBase(t *testing.T) {
	scorer := NewScoringService(&fakeGenerator{reply: "50"})

	requester := &MatchProfile{
		Vibe:             buddy.VibeExplore,
		GenderPreference: buddy.PreferenceOpen,
		Interests:        []string{"hiking", "chess"},
	}
	candidate := &MatchProfile{
		Vibe:             buddy.VibeExplore,
		GenderPreference: buddy.PreferenceOpen,
		Interests:        []string{"chess", "hiking"},
	}

	// 50 base + 10 same vibe + 2*5 shared interests
	score := scorer.Score(context.Background(), requester, candidate, testEvent())
	assert.Equal(t, 70, score)
}

func TestScoreBonusesAreNotReclamped(t *testing.T) {
	scorer := NewScoringService(&fakeGenerator{reply: "95"})

	requester := &MatchProfile{Vibe: buddy.VibeExplore, Interests: []string{"chess"}}
	candidate := &MatchProfile{Vibe: buddy.VibeExplore, Interests: []string{"chess"}}

	score := scorer.Score(context.Background(), requester, candidate, testEvent())
	assert.Equal(t, 110, score)
}

func TestScoreWithoutGeneratorIsNeutral(t *testing.T) {
	scorer := NewScoringService(nil)

	score := scorer.Score(context.Background(), plainProfile(buddy.VibeExplore), plainProfile(buddy.VibeExplore), testEvent())
	assert.Equal(t, 60, score) // 50 neutral + 10 same vibe
}
