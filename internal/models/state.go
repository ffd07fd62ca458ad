// Package models defines onboarding state for the Sampark flow.
package models

// OnboardingState identifies which input the bot expects next from a
// patient. States advance strictly forward; StateReady is absorbing.
type OnboardingState string

const (
	StateNew                    OnboardingState = "new"
	StateAwaitingName           OnboardingState = "awaiting_name"
	StateAwaitingAge            OnboardingState = "awaiting_age"
	StateAwaitingHeight         OnboardingState = "awaiting_height"
	StateAwaitingWeight         OnboardingState = "awaiting_weight"
	StateAwaitingCity           OnboardingState = "awaiting_city"
	StateAwaitingFamilyName     OnboardingState = "awaiting_family_name"
	StateAwaitingFamilyRelation OnboardingState = "awaiting_family_relation"
	StateReady                  OnboardingState = "ready"
)

// OnboardingSequence lists the states in required order.
var OnboardingSequence = []OnboardingState{
	StateNew,
	StateAwaitingName,
	StateAwaitingAge,
	StateAwaitingHeight,
	StateAwaitingWeight,
	StateAwaitingCity,
	StateAwaitingFamilyName,
	StateAwaitingFamilyRelation,
	StateReady,
}

// IsValidOnboardingState checks if the given state is one the flow knows.
func IsValidOnboardingState(s OnboardingState) bool {
	for _, st := range OnboardingSequence {
		if st == s {
			return true
		}
	}
	return false
}

// IsReady reports whether the state is the terminal menu state.
func (s OnboardingState) IsReady() bool {
	return s == StateReady
}
