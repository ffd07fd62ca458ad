package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAge(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"29", 29, true},
		{" 42 ", 42, true},
		{"abc", 0, false},
		{"29.5", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAge(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestParseMeasurement(t *testing.T) {
	got, ok := ParseMeasurement("170.5")
	assert.True(t, ok)
	assert.Equal(t, 170.5, got)

	_, ok = ParseMeasurement("tall")
	assert.False(t, ok)

	// Zero and negative values parse: no domain-range validation is applied.
	got, ok = ParseMeasurement("0")
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)

	got, ok = ParseMeasurement("-80")
	assert.True(t, ok)
	assert.Equal(t, -80.0, got)
}

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bengaluru", "Bangalore"},
		{"bangalore", "Bangalore"},
		{"BANGALORE", "Bangalore"},
		{"bombay", "Mumbai"},
		{" new delhi ", "Delhi"},
		{"Pune", "Pune"},
		{"pune", "Pune"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCity(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeRelation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"brother", "Sibling"},
		{"Mother", "Parent"},
		{"dad", "Parent"},
		{"wife", "Spouse"},
		{"Friend", "Friend"},
		{"  husband!  ", "Spouse"},
		{"colleague", "Other"},
		{"", "Other"},
		{"123", "Other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRelation(tt.input), "input %q", tt.input)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Alice", TitleCase("alice"))
	assert.Equal(t, "Raj Kumar", TitleCase("raj kumar"))
	assert.Equal(t, "Alice", TitleCase("ALICE"))
}
