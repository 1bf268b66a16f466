package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryReadsFencedJSON(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"categories\": [\"Technology\"], \"campuses\": [\"Burnaby\"], \"dateRange\": \"Today\", \"keywords\": [\"react\"]}\n```"}
	svc := NewSearchService(gen)

	filters, err := svc.ParseQuery(context.Background(), "react workshops today")
	require.NoError(t, err)
	assert.Equal(t, []string{"Technology"}, filters.Categories)
	assert.Equal(t, []string{"Burnaby"}, filters.Campuses)
	assert.Equal(t, "Today", filters.DateRange)
	assert.Equal(t, []string{"react"}, filters.Keywords)
}

func TestParseQueryReadsBareJSON(t *testing.T) {
	gen := &fakeGenerator{reply: `{"categories": [], "campuses": [], "dateRange": "", "keywords": ["food"]}`}
	svc := NewSearchService(gen)

	filters, err := svc.ParseQuery(context.Background(), "food")
	require.NoError(t, err)
	assert.Empty(t, filters.Categories)
	assert.Equal(t, []string{"food"}, filters.Keywords)
}

func TestParseQueryMalformedOutputIsAnError(t *testing.T) {
	gen := &fakeGenerator{reply: "sorry, I cannot help with that"}
	svc := NewSearchService(gen)

	_, err := svc.ParseQuery(context.Background(), "anything")
	assert.Error(t, err)
}

func TestParseQueryTransportErrorIsAnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewSearchService(gen)

	_, err := svc.ParseQuery(context.Background(), "anything")
	assert.Error(t, err)
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"{}", "{}"},
		{"  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, stripCodeFences(tc.in), "input %q", tc.in)
	}
}
