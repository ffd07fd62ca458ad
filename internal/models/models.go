// Package models defines the core data structures for Sampark.
//
// It includes the patient profile record, onboarding state, engagement
// events, and API response envelopes shared across modules.
package models

import (
	"errors"
	"time"
)

// MaxCheckins is the length of the adherence challenge in weeks. The
// check-in counter is clamped at this value.
const MaxCheckins = 12

// Error variables for better error handling and testability
var (
	ErrEmptyIdentity = errors.New("identity cannot be empty")
	ErrEmptyBody     = errors.New("message body cannot be empty")
)

// UserProfile is one patient record, keyed by canonical phone number.
// Numeric fields are pointers because they stay null until the onboarding
// flow captures them.
type UserProfile struct {
	Phone                string          `json:"phone"`
	Name                 string          `json:"name,omitempty"`
	Age                  *int            `json:"age,omitempty"`
	HeightCM             *float64        `json:"height_cm,omitempty"`
	WeightKG             *float64        `json:"weight_kg,omitempty"`
	BMI                  *float64        `json:"bmi,omitempty"`
	BMICategory          string          `json:"bmi_category,omitempty"`
	City                 string          `json:"city,omitempty"`
	FamilyMemberName     string          `json:"family_member_name,omitempty"`
	FamilyMemberRelation string          `json:"family_member_relation,omitempty"`
	FamilyMember         string          `json:"family_member,omitempty"` // composite "Name (Relation)"
	Checkins             int             `json:"checkins"`
	State                OnboardingState `json:"state"`
	MessageCount         int             `json:"message_count"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// HasBMI reports whether a BMI has been derived for this profile.
func (p *UserProfile) HasBMI() bool {
	return p.BMI != nil
}

// EventKind categorizes engagement log entries.
type EventKind string

const (
	// EventInbound records a message received from a patient.
	EventInbound EventKind = "inbound"
	// EventReply records a reply segment sent back to a patient.
	EventReply EventKind = "reply"
	// EventCheckin records a successful weekly check-in.
	EventCheckin EventKind = "checkin"
)

// EngagementEvent is one entry in the per-patient activity log.
type EngagementEvent struct {
	ID    string    `json:"id"`
	Phone string    `json:"phone"`
	Kind  EventKind `json:"kind"`
	Body  string    `json:"body"`
	Time  time.Time `json:"time"`
}
