package flow

import (
	"math/rand"
	"strings"

	"github.com/sampark-health/sampark/internal/models"
)

// FAQEntry pairs one known patient question with its canned answer.
type FAQEntry struct {
	Question string
	Answer   string
}

// faqs is the fixed question set the fuzzy matcher searches. Order matters
// only for tie-breaking: the first best match wins.
var faqs = []FAQEntry{
	{"what are side effects", "🤒 Common side effects: nausea, vomiting, constipation. Ginger tea + small meals help.\n(Type 'doctor' to connect to our experts)"},
	{"how to store wegovy", "🧊 Store in fridge (2-8°C). Do not freeze."},
	{"can i take it at night", "🕒 Yes, morning or night — keep your schedule consistent."},
	{"what to do if i miss a dose", "💉 If <5 days late: take as soon as you remember. If >5 days: skip and continue your normal schedule."},
	{"how to reduce nausea", "🍵 Ginger tea, small frequent meals, avoid greasy food, stay hydrated."},
	{"when will i see weight loss", "📊 Usually between 4–8 weeks, varies by patient."},
	{"can i exercise", "🏃 Yes — combine diet + exercise for best results."},
	{"who should not take wegovy", "⚠️ Those with thyroid cancer history or MEN2 syndrome should avoid. Consult doctor."},
	{"what is the price", "💰 Price varies by pharmacy. Type 'doctor' to ask clinical or cost queries."},
	{"can i drink alcohol", "🍷 Light alcohol is usually safe, but avoid if it worsens nausea."},
}

var recipes = []string{
	"🥗 Quick recipe: Cucumber & tomato salad with lemon and olive oil — light and filling.",
	"🍲 Lentil & veggie soup: protein-rich and gentle on the stomach.",
	"🥣 Overnight oats with chia: easy digestion & sustained energy.",
}

var hydrationTips = []string{
	"💧 Tip: sip water throughout the day — small, frequent sips reduce nausea.",
	"🥤 Try an electrolyte drink if you feel light-headed after injections.",
}

// DoctorContact is the expert hand-off card.
const DoctorContact = "👩‍⚕️ Connect to an expert here: https://example.com/connect-doctor"

// OnboardingVideoMessage links patients to the onboarding video.
const OnboardingVideoMessage = "📹 Watch the onboarding video here:\nhttps://www.dropbox.com/scl/fi/kgizm8vb8uhdqlaxswqfx/onboarding.mp4?rlkey=7f5krq9j630jd8n2wp5fohypc&st=9eaijrh8&dl=1"

// MenuText lists the six menu options.
const MenuText = "📌 *Main Menu*\n\n" +
	"1️⃣ Onboarding Video\n" +
	"2️⃣ Side-effect Tips\n" +
	"3️⃣ Weekly Check-in\n" +
	"4️⃣ Recipe\n" +
	"5️⃣ Pharmacy Locator\n" +
	"6️⃣ Knowledge Hub\n\n" +
	"Reply with a number (1-6), or just ask me your question!"

// FallbackMessage is the generic reply when nothing else handled the turn.
const FallbackMessage = "🤔 Sorry, I didn't get that. Type 'menu' to see options or ask me anything about Wegovy."

// StoreUnavailableMessage is the single reply for a turn the store refused.
const StoreUnavailableMessage = "⚠️ Temporary DB error. Please try again in a moment."

// progressBarTicks is the width of the rendered adherence bar.
const progressBarTicks = 10

// MakeProgressBar renders a 10-tick bar scaled from current/MaxCheckins.
func MakeProgressBar(current int) string {
	if current > models.MaxCheckins {
		current = models.MaxCheckins
	}
	if current < 0 {
		current = 0
	}
	filled := current * progressBarTicks / models.MaxCheckins
	return strings.Repeat("▰", filled) + strings.Repeat("▱", progressBarTicks-filled)
}

// RandomRecipe picks one recipe suggestion.
func RandomRecipe() string {
	return recipes[rand.Intn(len(recipes))]
}

// RandomHydrationTip picks one hydration tip.
func RandomHydrationTip() string {
	return hydrationTips[rand.Intn(len(hydrationTips))]
}
