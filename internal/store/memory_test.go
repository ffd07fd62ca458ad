package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-health/sampark/internal/models"
)

func TestInMemoryStoreGetOrCreateProfile(t *testing.T) {
	st := NewInMemoryStore()

	p, err := st.GetOrCreateProfile("919876543210")
	require.NoError(t, err)
	assert.Equal(t, "919876543210", p.Phone)
	assert.Equal(t, models.StateNew, p.State)
	assert.False(t, p.CreatedAt.IsZero())

	// Idempotent: mutations saved in between survive a second call.
	p.Name = "Alice"
	p.State = models.StateAwaitingAge
	require.NoError(t, st.SaveProfile(*p))

	again, err := st.GetOrCreateProfile("919876543210")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
	assert.Equal(t, models.StateAwaitingAge, again.State)

	_, err = st.GetOrCreateProfile("")
	assert.ErrorIs(t, err, models.ErrEmptyIdentity)
}

func TestInMemoryStoreGetProfileAbsent(t *testing.T) {
	st := NewInMemoryStore()
	p, err := st.GetProfile("nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestInMemoryStoreSaveRoundTrip(t *testing.T) {
	st := NewInMemoryStore()
	age, height, weight, bmi := 29, 165.0, 60.0, 22.0
	in := models.UserProfile{
		Phone:                "919876543210",
		Name:                 "Alice",
		Age:                  &age,
		HeightCM:             &height,
		WeightKG:             &weight,
		BMI:                  &bmi,
		BMICategory:          "Normal",
		City:                 "Mumbai",
		FamilyMemberName:     "Raj",
		FamilyMemberRelation: "Parent",
		FamilyMember:         "Raj (Parent)",
		Checkins:             3,
		State:                models.StateReady,
		MessageCount:         10,
	}
	require.NoError(t, st.SaveProfile(in))

	out, err := st.GetProfile(in.Phone)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.City, out.City)
	assert.Equal(t, in.FamilyMember, out.FamilyMember)
	assert.Equal(t, in.Checkins, out.Checkins)
	assert.Equal(t, in.State, out.State)
	require.NotNil(t, out.BMI)
	assert.Equal(t, 22.0, *out.BMI)

	assert.ErrorIs(t, st.SaveProfile(models.UserProfile{}), models.ErrEmptyIdentity)
}

func TestInMemoryStoreListProfilesSorted(t *testing.T) {
	st := NewInMemoryStore()
	for _, phone := range []string{"912", "910", "911"} {
		_, err := st.GetOrCreateProfile(phone)
		require.NoError(t, err)
	}
	profiles, err := st.ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "910", profiles[0].Phone)
	assert.Equal(t, "912", profiles[2].Phone)
}

func TestInMemoryStoreEvents(t *testing.T) {
	st := NewInMemoryStore()
	now := time.Now()
	require.NoError(t, st.AddEvent(models.EngagementEvent{ID: "a", Phone: "910", Kind: models.EventInbound, Body: "hi", Time: now}))
	require.NoError(t, st.AddEvent(models.EngagementEvent{ID: "b", Phone: "911", Kind: models.EventReply, Body: "yo", Time: now}))
	require.NoError(t, st.AddEvent(models.EngagementEvent{ID: "c", Phone: "910", Kind: models.EventCheckin, Time: now}))

	events, err := st.ListEvents("910")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventInbound, events[0].Kind)
	assert.Equal(t, models.EventCheckin, events[1].Kind)
}
