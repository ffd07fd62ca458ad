// Package dashboard aggregates the profile store for the operator UI.
//
// The rendering and charting live outside this repo; this package only
// computes the numbers and rows the UI consumes. It must tolerate an empty
// store and profiles without a BMI.
package dashboard

import (
	"math"

	"github.com/sampark-health/sampark/internal/flow"
	"github.com/sampark-health/sampark/internal/models"
)

// PatientRow is one patient as the dashboard table shows it. Phone numbers
// are masked down to the last three digits.
type PatientRow struct {
	PhoneMasked  string   `json:"phone_masked"`
	Name         string   `json:"name,omitempty"`
	Age          *int     `json:"age,omitempty"`
	HeightCM     *float64 `json:"height_cm,omitempty"`
	WeightKG     *float64 `json:"weight_kg,omitempty"`
	BMI          *float64 `json:"bmi,omitempty"`
	BMICategory  string   `json:"bmi_category,omitempty"`
	FamilyMember string   `json:"family_member,omitempty"`
	Checkins     int      `json:"checkins"`
	AdherenceBar string   `json:"adherence_bar"`
	State        string   `json:"state"`
}

// Summary is the aggregate view over all profiles.
type Summary struct {
	TotalPatients   int            `json:"total_patients"`
	AverageBMI      *float64       `json:"average_bmi,omitempty"`
	AverageCheckins float64        `json:"average_checkins"`
	TotalCheckins   int            `json:"total_checkins"`
	BMIDistribution map[string]int `json:"bmi_distribution"`
	Patients        []PatientRow   `json:"patients"`
}

// MaskPhone hides all but the last three digits of a phone number.
func MaskPhone(phone string) string {
	if phone == "" {
		return "—"
	}
	tail := phone
	if len(phone) > 3 {
		tail = phone[len(phone)-3:]
	}
	return "*******" + tail
}

// BuildSummary computes the aggregate dashboard view. Profiles without a
// BMI contribute to counts but not to the BMI average or distribution.
func BuildSummary(profiles []models.UserProfile) Summary {
	summary := Summary{
		BMIDistribution: make(map[string]int),
		Patients:        make([]PatientRow, 0, len(profiles)),
	}

	var bmiSum float64
	var bmiCount int
	for _, p := range profiles {
		checkins := p.Checkins
		if checkins > models.MaxCheckins {
			checkins = models.MaxCheckins
		}

		summary.TotalPatients++
		summary.TotalCheckins += checkins
		if p.BMI != nil {
			bmiSum += *p.BMI
			bmiCount++
			summary.BMIDistribution[p.BMICategory]++
		}

		summary.Patients = append(summary.Patients, PatientRow{
			PhoneMasked:  MaskPhone(p.Phone),
			Name:         p.Name,
			Age:          p.Age,
			HeightCM:     p.HeightCM,
			WeightKG:     p.WeightKG,
			BMI:          p.BMI,
			BMICategory:  p.BMICategory,
			FamilyMember: p.FamilyMember,
			Checkins:     checkins,
			AdherenceBar: flow.MakeProgressBar(checkins),
			State:        string(p.State),
		})
	}

	if bmiCount > 0 {
		avg := math.Round(bmiSum/float64(bmiCount)*10) / 10
		summary.AverageBMI = &avg
	}
	if summary.TotalPatients > 0 {
		summary.AverageCheckins = math.Round(float64(summary.TotalCheckins)/float64(summary.TotalPatients)*10) / 10
	}
	return summary
}
