package flow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-health/sampark/internal/models"
)

type stubPharmacy struct{}

func (stubPharmacy) Locate(city string) string { return "pharmacies near " + city }

type stubResearch struct{}

func (stubResearch) PubMed(ctx context.Context) []string         { return []string{"• Study A"} }
func (stubResearch) ClinicalTrials(ctx context.Context) []string { return []string{"• Trial B"} }

func newTestDispatcher() *Dispatcher {
	d := NewDispatcher(stubPharmacy{}, stubResearch{})
	d.pickRecipe = func() string { return "recipe" }
	d.pickTip = func() string { return "tip" }
	return d
}

func readyProfile() *models.UserProfile {
	return &models.UserProfile{Phone: "919876543210", City: "Bangalore", State: models.StateReady}
}

func TestDispatchMenu(t *testing.T) {
	d := newTestDispatcher()
	segments := d.Dispatch(context.Background(), readyProfile(), "MENU")
	require.Len(t, segments, 1)
	assert.Equal(t, MenuText, segments[0])
}

func TestDispatchMenuOptions(t *testing.T) {
	d := newTestDispatcher()
	p := readyProfile()

	tests := []struct {
		input string
		want  string
	}{
		{"1", "onboarding.mp4"},
		{"2", "Common side effects"},
		{"4", "recipe"},
		{"5", "pharmacies near Bangalore"},
		{"doctor", "connect-doctor"},
	}
	for _, tt := range tests {
		segments := d.Dispatch(context.Background(), p, tt.input)
		require.Len(t, segments, 1, "input %q", tt.input)
		assert.Contains(t, segments[0], tt.want, "input %q", tt.input)
		// A handled option never carries the generic fallback.
		assert.NotContains(t, segments[0], FallbackMessage)
	}
}

func TestDispatchKnowledgeHub(t *testing.T) {
	d := newTestDispatcher()
	segments := d.Dispatch(context.Background(), readyProfile(), "6")
	require.Len(t, segments, 2)
	assert.Contains(t, segments[0], "PubMed")
	assert.Contains(t, segments[0], "• Study A")
	assert.Contains(t, segments[1], "Clinical Trials")
	assert.Contains(t, segments[1], "• Trial B")
}

func TestDispatchCheckin(t *testing.T) {
	d := newTestDispatcher()
	p := readyProfile()

	segments := d.Dispatch(context.Background(), p, "check-in")
	require.Len(t, segments, 1)
	assert.Equal(t, 1, p.Checkins)
	assert.Contains(t, segments[0], "(1/12 weeks)")
	assert.Contains(t, segments[0], "tip")
	assert.Contains(t, segments[0], "recipe")

	// Option 3 is a shortcut for the same action.
	segments = d.Dispatch(context.Background(), p, "3")
	assert.Equal(t, 2, p.Checkins)
	assert.Contains(t, segments[0], "(2/12 weeks)")
}

func TestDispatchCheckinMilestones(t *testing.T) {
	d := newTestDispatcher()
	p := readyProfile()

	p.Checkins = 5
	segments := d.Dispatch(context.Background(), p, "checkin")
	assert.Contains(t, segments[0], "👏 Halfway there!")
	assert.Contains(t, segments[0], "▰▰▰▰▰▱▱▱▱▱")

	p.Checkins = 11
	segments = d.Dispatch(context.Background(), p, "check in")
	assert.Contains(t, segments[0], "🎉 Challenge complete!")
	assert.Equal(t, models.MaxCheckins, p.Checkins)
}

func TestDispatchCheckinAtCeiling(t *testing.T) {
	d := newTestDispatcher()
	p := readyProfile()
	p.Checkins = models.MaxCheckins

	segments := d.Dispatch(context.Background(), p, "check-in")
	require.Len(t, segments, 1)
	assert.Contains(t, segments[0], "already complete")
	assert.Equal(t, models.MaxCheckins, p.Checkins)
}

func TestDispatchFAQFallthrough(t *testing.T) {
	d := newTestDispatcher()
	p := readyProfile()

	segments := d.Dispatch(context.Background(), p, "can i drink alcohol")
	require.Len(t, segments, 1)
	assert.Contains(t, segments[0], "alcohol")
	assert.NotEqual(t, FallbackMessage, segments[0])

	segments = d.Dispatch(context.Background(), p, "xyzzy plugh")
	require.Len(t, segments, 1)
	assert.Equal(t, FallbackMessage, segments[0])
}

func TestIsCheckinSynonym(t *testing.T) {
	for _, in := range []string{"check-in", "Checkin", " CHECK IN "} {
		assert.True(t, IsCheckinSynonym(in), "input %q", in)
	}
	for _, in := range []string{"check", "menu", "3", ""} {
		assert.False(t, IsCheckinSynonym(in), "input %q", in)
	}
}

func TestDispatchTrimsInput(t *testing.T) {
	d := newTestDispatcher()
	segments := d.Dispatch(context.Background(), readyProfile(), "  5  ")
	require.Len(t, segments, 1)
	assert.True(t, strings.HasPrefix(segments[0], "pharmacies near"))
}
