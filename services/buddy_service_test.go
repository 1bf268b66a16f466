package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectSFUAPI/internal/buddy"
)

// sequenceGenerator replies with a fixed score per call, in order.
type sequenceGenerator struct {
	replies []string
	calls   int
}

func (g *sequenceGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	reply := g.replies[g.calls%len(g.replies)]
	g.calls++
	return reply, nil
}

func matchServiceWith(gen contentGenerator) *BuddyService {
	return &BuddyService{scorer: NewScoringService(gen)}
}

func openCandidate(nickname string, pref buddy.GenderPreference) buddy.Candidate {
	return buddy.Candidate{
		Nickname:         nickname,
		GenderPreference: pref,
		Vibe:             buddy.VibeJustAttend,
	}
}

func TestPickBestCandidateKeepsHighestScore(t *testing.T) {
	gen := &sequenceGenerator{replies: []string{"40", "80", "70"}}
	svc := matchServiceWith(gen)

	candidates := []buddy.Candidate{
		openCandidate("alice", buddy.PreferenceOpen),
		openCandidate("bob", buddy.PreferenceOpen),
		openCandidate("carol", buddy.PreferenceOpen),
	}

	best, score := svc.PickBestCandidate(context.Background(), plainProfile(buddy.VibeExplore), candidates, testEvent())
	require.NotNil(t, best)
	assert.Equal(t, "bob", best.Nickname)
	assert.Equal(t, 80, score)
	assert.Equal(t, 3, gen.calls)
}

func TestPickBestCandidateFirstSeenWinsOnTie(t *testing.T) {
	gen := &sequenceGenerator{replies: []string{"75", "75"}}
	svc := matchServiceWith(gen)

	candidates := []buddy.Candidate{
		openCandidate("first", buddy.PreferenceOpen),
		openCandidate("second", buddy.PreferenceOpen),
	}

	best, score := svc.PickBestCandidate(context.Background(), plainProfile(buddy.VibeExplore), candidates, testEvent())
	require.NotNil(t, best)
	assert.Equal(t, "first", best.Nickname)
	assert.Equal(t, 75, score)
}

func TestPickBestCandidateSkipsIneligible(t *testing.T) {
	gen := &sequenceGenerator{replies: []string{"99"}}
	svc := matchServiceWith(gen)

	requester := &MatchProfile{
		Vibe:             buddy.VibeExplore,
		GenderPreference: buddy.PreferenceSameGender,
	}
	// Incompatible pairs are never scored, so the generator must not
	// be called at all.
	candidates := []buddy.Candidate{
		{Nickname: "other", GenderPreference: buddy.GenderPreference("other_pref")},
	}

	best, score := svc.PickBestCandidate(context.Background(), requester, candidates, testEvent())
	assert.Nil(t, best)
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, gen.calls)
}

func TestMeetsThresholdIsStrict(t *testing.T) {
	assert.False(t, meetsThreshold(60))
	assert.True(t, meetsThreshold(61))
	assert.False(t, meetsThreshold(0))
}

func TestFirstCompatible(t *testing.T) {
	candidates := []buddy.Candidate{
		openCandidate("closed_pref", buddy.PreferenceSameGender),
		openCandidate("open_pref", buddy.PreferenceOpen),
	}

	t.Run("same_gender requester matches same_gender candidate first", func(t *testing.T) {
		got := firstCompatible(buddy.PreferenceSameGender, candidates)
		require.NotNil(t, got)
		assert.Equal(t, "closed_pref", got.Nickname)
	})

	t.Run("no candidates", func(t *testing.T) {
		assert.Nil(t, firstCompatible(buddy.PreferenceOpen, nil))
	})
}
