package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"connectSFUAPI/internal/buddy"
)

func TestGenderPreferencesCompatible(t *testing.T) {
	cases := []struct {
		name      string
		requester buddy.GenderPreference
		candidate buddy.GenderPreference
		want      bool
	}{
		{"both open", buddy.PreferenceOpen, buddy.PreferenceOpen, true},
		{"requester open", buddy.PreferenceOpen, buddy.PreferenceSameGender, true},
		{"candidate open", buddy.PreferenceSameGender, buddy.PreferenceOpen, true},
		// Both wanting same gender counts as compatible regardless of
		// actual gender, a known simplification.
		{"both same_gender", buddy.PreferenceSameGender, buddy.PreferenceSameGender, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenderPreferencesCompatible(tc.requester, tc.candidate))
		})
	}
}

func TestParseScoreText(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"85", 85},
		{"  85\n", 85},
		{"85 out of 100", 85},
		{"N/A", 0},
		{"", 0},
		{"score: 70", 0}, // no leading integer
		{"150", 150},
		{"-5", -5},
		{"+42", 42},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseScoreText(tc.text), "input %q", tc.text)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-5))
	assert.Equal(t, 0, ClampScore(0))
	assert.Equal(t, 72, ClampScore(72))
	assert.Equal(t, 100, ClampScore(100))
	assert.Equal(t, 100, ClampScore(150))
}

func TestCompatibilityBonuses(t *testing.T) {
	t.Run("same vibe and two shared interests", func(t *testing.T) {
		bonus := CompatibilityBonuses(
			buddy.VibeExplore, buddy.VibeExplore,
			[]string{"hiking", "chess", "photography"},
			[]string{"chess", "hiking", "cooking"},
		)
		assert.Equal(t, 20, bonus)
	})

	t.Run("different vibes, no shared interests", func(t *testing.T) {
		bonus := CompatibilityBonuses(
			buddy.VibeJustAttend, buddy.VibeNewFriend,
			[]string{"hiking"},
			[]string{"cooking"},
		)
		assert.Equal(t, 0, bonus)
	})

	t.Run("interest comparison is case sensitive", func(t *testing.T) {
		bonus := CompatibilityBonuses(
			buddy.VibeExplore, buddy.VibeJustAttend,
			[]string{"Hiking"},
			[]string{"hiking"},
		)
		assert.Equal(t, 0, bonus)
	})
}
