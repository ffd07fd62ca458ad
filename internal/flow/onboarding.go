package flow

import (
	"fmt"

	"github.com/sampark-health/sampark/internal/models"
)

// Advance runs one onboarding transition: given the profile's current state
// and one line of input, it mutates the profile (state plus at most one
// captured field) and returns the reply text. Invalid numeric input leaves
// the profile untouched and re-prompts. Must not be called once the profile
// is in the ready state.
func Advance(p *models.UserProfile, input string) string {
	switch p.State {
	case models.StateNew:
		// Input is ignored on the first contact, even if non-empty.
		p.State = models.StateAwaitingName
		return "✅ Product verified: Wegovy authenticity confirmed.\n👋 Welcome to Wegovy Sampark! What's your *name*?"

	case models.StateAwaitingName:
		p.Name = TitleCase(input)
		p.State = models.StateAwaitingAge
		return fmt.Sprintf("Hi %s! 🎉 How old are you?", p.Name)

	case models.StateAwaitingAge:
		age, ok := ParseAge(input)
		if !ok {
			return "Please enter a valid number for age."
		}
		p.Age = &age
		p.State = models.StateAwaitingHeight
		return "Got it! What is your *height* in cm?"

	case models.StateAwaitingHeight:
		height, ok := ParseMeasurement(input)
		if !ok {
			return "Please enter a valid height in cm."
		}
		p.HeightCM = &height
		p.State = models.StateAwaitingWeight
		return "Great! Now tell me your *weight* in kg."

	case models.StateAwaitingWeight:
		weight, ok := ParseMeasurement(input)
		if !ok {
			return "Please enter a valid weight in kg."
		}
		p.WeightKG = &weight
		p.State = models.StateAwaitingCity

		// BMI is derived once here, from the previously stored height and
		// this weight. It is not recomputed if either changes later.
		var height float64
		if p.HeightCM != nil {
			height = *p.HeightCM
		}
		if bmi, category, ok := ComputeBMI(height, weight); ok {
			p.BMI = &bmi
			p.BMICategory = category
			return fmt.Sprintf("✅ Saved your details!\nYour BMI is *%s* (%s).\nWhich *city* are you from?", FormatBMI(bmi), category)
		}
		return "✅ Saved your details!\nWhich *city* are you from?"

	case models.StateAwaitingCity:
		p.City = NormalizeCity(input)
		p.State = models.StateAwaitingFamilyName
		return fmt.Sprintf("🏙️ Got it! You're from %s.\nNow tell me your *family member's name*.", p.City)

	case models.StateAwaitingFamilyName:
		p.FamilyMemberName = TitleCase(input)
		p.State = models.StateAwaitingFamilyRelation
		return "And what is their *relation* to you? (e.g., Brother, Mother)"

	case models.StateAwaitingFamilyRelation:
		p.FamilyMemberRelation = NormalizeRelation(input)
		p.FamilyMember = fmt.Sprintf("%s (%s)", p.FamilyMemberName, p.FamilyMemberRelation)
		p.State = models.StateReady
		return fmt.Sprintf("📨 Family member added: %s ❤️\nType 'menu' to see options.", p.FamilyMember)
	}

	// Unknown or terminal state: nothing to collect.
	return "✅ Onboarding complete! Type 'menu' to see options."
}
