package utils

import (
	"strings"
	"unicode"

	"connectSFUAPI/internal/buddy"
)

const (
	SameVibeBonus       = 10
	SharedInterestBonus = 5
)

// GenderPreferencesCompatible reports whether two requests pass the hard
// gender-preference filter. Two same_gender requests are treated as
// compatible regardless of actual gender, a known simplification.
func GenderPreferencesCompatible(requester, candidate buddy.GenderPreference) bool {
	return requester == buddy.PreferenceOpen ||
		candidate == buddy.PreferenceOpen ||
		requester == candidate
}

// ParseScoreText extracts the leading integer from a model reply, the
// way JavaScript's parseInt reads "85" out of "85 out of 100". A reply
// with no leading integer yields 0.
func ParseScoreText(text string) int {
	text = strings.TrimSpace(text)

	i := 0
	neg := false
	if i < len(text) && (text[i] == '-' || text[i] == '+') {
		neg = text[i] == '-'
		i++
	}

	n := 0
	digits := 0
	for i < len(text) && unicode.IsDigit(rune(text[i])) {
		n = n*10 + int(text[i]-'0')
		i++
		digits++
		if n > 1000000 {
			break
		}
	}

	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// ClampScore bounds a raw score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CompatibilityBonuses returns the deterministic additions applied on
// top of the semantic base score: +10 for a shared vibe and +5 for each
// of the requester's interests also listed by the candidate. Interests
// compare case-sensitively, no fuzzy matching.
func CompatibilityBonuses(requesterVibe, candidateVibe buddy.Vibe, requesterInterests, candidateInterests []string) int {
	bonus := 0
	if requesterVibe == candidateVibe {
		bonus += SameVibeBonus
	}

	candidateSet := make(map[string]struct{}, len(candidateInterests))
	for _, interest := range candidateInterests {
		candidateSet[interest] = struct{}{}
	}
	for _, interest := range requesterInterests {
		if _, ok := candidateSet[interest]; ok {
			bonus += SharedInterestBonus
		}
	}

	return bonus
}
