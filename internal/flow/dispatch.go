package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sampark-health/sampark/internal/models"
)

// PharmacyLocator resolves a stored city to a pharmacy listing message.
type PharmacyLocator interface {
	Locate(city string) string
}

// ResearchHub fetches external literature and trial summaries. Both calls
// are best-effort and must return placeholder text on failure.
type ResearchHub interface {
	PubMed(ctx context.Context) []string
	ClinicalTrials(ctx context.Context) []string
}

// Dispatcher routes post-onboarding input to menu content, the check-in
// flow, or the FAQ matcher. It only runs for profiles in the ready state.
type Dispatcher struct {
	pharmacy   PharmacyLocator
	research   ResearchHub
	pickRecipe func() string
	pickTip    func() string
}

// NewDispatcher creates a menu dispatcher over the given collaborators.
func NewDispatcher(pharmacy PharmacyLocator, research ResearchHub) *Dispatcher {
	return &Dispatcher{
		pharmacy:   pharmacy,
		research:   research,
		pickRecipe: RandomRecipe,
		pickTip:    RandomHydrationTip,
	}
}

// IsCheckinSynonym reports whether the (lowercased, trimmed) input is one of
// the accepted check-in spellings.
func IsCheckinSynonym(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "check-in", "checkin", "check in":
		return true
	}
	return false
}

// Dispatch handles one ready-state turn. It may mutate the profile (the
// check-in counter) and returns the reply segments for this turn. The
// generic fallback is suppressed whenever an earlier rule already produced
// a reply.
func (d *Dispatcher) Dispatch(ctx context.Context, p *models.UserProfile, input string) []string {
	lc := strings.ToLower(strings.TrimSpace(input))

	var segments []string
	handled := false

	switch lc {
	case "menu":
		return []string{MenuText}
	case "1":
		segments = append(segments, OnboardingVideoMessage)
		handled = true
	case "2":
		segments = append(segments, faqAnswer("what are side effects"))
		handled = true
	case "3":
		// Menu shortcut for the weekly check-in.
		lc = "check-in"
	case "4":
		segments = append(segments, d.pickRecipe())
		handled = true
	case "5":
		segments = append(segments, d.pharmacy.Locate(p.City))
		handled = true
	case "6":
		segments = append(segments,
			"🩺 *Knowledge Hub — PubMed*\n"+strings.Join(d.research.PubMed(ctx), "\n\n"),
			"🧪 *Clinical Trials*\n"+strings.Join(d.research.ClinicalTrials(ctx), "\n\n"),
		)
		handled = true
	case "doctor":
		segments = append(segments, DoctorContact)
		handled = true
	}

	if IsCheckinSynonym(lc) {
		segments = append(segments, d.checkin(p))
		handled = true
	}

	if !handled {
		if answer, ok := FindAnswer(lc); ok {
			slog.Debug("Dispatcher FAQ match", "phone", p.Phone, "input", lc)
			segments = append(segments, answer)
		} else {
			segments = append(segments, FallbackMessage)
		}
	}

	return segments
}

// checkin applies one weekly check-in. The counter is clamped at
// models.MaxCheckins; at the ceiling the action is an acknowledged no-op.
func (d *Dispatcher) checkin(p *models.UserProfile) string {
	if p.Checkins >= models.MaxCheckins {
		return "✅ You've already completed all 12 weeks! 🎉 Challenge already complete."
	}

	p.Checkins++
	reply := fmt.Sprintf("✅ Check-in recorded! Progress: %s (%d/%d weeks)",
		MakeProgressBar(p.Checkins), p.Checkins, models.MaxCheckins)
	switch p.Checkins {
	case models.MaxCheckins:
		reply += "\n🎉 Challenge complete!"
	case models.MaxCheckins / 2:
		reply += "\n👏 Halfway there!"
	}
	reply += "\n\n" + d.pickTip() + "\n" + d.pickRecipe()
	return reply
}
