package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampark-health/sampark/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "sampark.db")
	st, err := NewSQLiteStore(WithSQLiteDSN(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteStoreRequiresDSN(t *testing.T) {
	_, err := NewSQLiteStore()
	assert.Error(t, err)
}

func TestSQLiteStoreGetOrCreateProfile(t *testing.T) {
	st := newTestSQLiteStore(t)

	p, err := st.GetOrCreateProfile("919876543210")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, models.StateNew, p.State)
	assert.Nil(t, p.Age)

	// Second call returns the same record rather than resetting it.
	p.Name = "Alice"
	p.State = models.StateAwaitingAge
	require.NoError(t, st.SaveProfile(*p))

	again, err := st.GetOrCreateProfile("919876543210")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
	assert.Equal(t, models.StateAwaitingAge, again.State)
}

func TestSQLiteStoreGetProfileAbsent(t *testing.T) {
	st := newTestSQLiteStore(t)
	p, err := st.GetProfile("nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSQLiteStoreSaveRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)

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
		Checkins:             7,
		State:                models.StateReady,
		MessageCount:         20,
	}
	require.NoError(t, st.SaveProfile(in))

	out, err := st.GetProfile(in.Phone)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Alice", out.Name)
	require.NotNil(t, out.Age)
	assert.Equal(t, 29, *out.Age)
	require.NotNil(t, out.HeightCM)
	assert.Equal(t, 165.0, *out.HeightCM)
	require.NotNil(t, out.BMI)
	assert.Equal(t, 22.0, *out.BMI)
	assert.Equal(t, "Normal", out.BMICategory)
	assert.Equal(t, "Raj (Parent)", out.FamilyMember)
	assert.Equal(t, 7, out.Checkins)
	assert.Equal(t, models.StateReady, out.State)
	assert.Equal(t, 20, out.MessageCount)

	// Upsert: a second save updates in place.
	in.Checkins = 8
	require.NoError(t, st.SaveProfile(in))
	out, err = st.GetProfile(in.Phone)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Checkins)

	profiles, err := st.ListProfiles()
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestSQLiteStoreEvents(t *testing.T) {
	st := newTestSQLiteStore(t)
	base := time.Now().Truncate(time.Second)

	require.NoError(t, st.AddEvent(models.EngagementEvent{ID: "a", Phone: "910", Kind: models.EventInbound, Body: "hi", Time: base}))
	require.NoError(t, st.AddEvent(models.EngagementEvent{ID: "b", Phone: "910", Kind: models.EventReply, Body: "hello", Time: base.Add(time.Second)}))
	require.NoError(t, st.AddEvent(models.EngagementEvent{ID: "c", Phone: "911", Kind: models.EventCheckin, Time: base}))

	events, err := st.ListEvents("910")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, models.EventReply, events[1].Kind)
	assert.Equal(t, "hello", events[1].Body)
}
