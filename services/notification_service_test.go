package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchNotificationContent(t *testing.T) {
	title, message := MatchNotificationContent("Sam", "Hack Night")

	assert.Equal(t, "🎉 You've got a buddy!", title)
	assert.Equal(t, "You've been matched with Sam for Hack Night! Start chatting to coordinate.", message)
}
