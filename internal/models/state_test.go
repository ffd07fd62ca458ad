package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOnboardingState(t *testing.T) {
	for _, s := range OnboardingSequence {
		assert.True(t, IsValidOnboardingState(s), "state %q", s)
	}
	assert.False(t, IsValidOnboardingState("done"))
	assert.False(t, IsValidOnboardingState(""))
}

func TestIsReady(t *testing.T) {
	assert.True(t, StateReady.IsReady())
	assert.False(t, StateNew.IsReady())
	assert.False(t, StateAwaitingFamilyRelation.IsReady())
}

func TestHasBMI(t *testing.T) {
	p := &UserProfile{}
	assert.False(t, p.HasBMI())
	bmi := 22.0
	p.BMI = &bmi
	assert.True(t, p.HasBMI())
}
