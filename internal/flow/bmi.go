package flow

import (
	"math"
	"strconv"
)

// BMI category thresholds, lower-bound-inclusive. These match the
// classification shown to patients and must not drift.
const (
	bmiUnderweightMax = 18.5
	bmiNormalMax      = 25
	bmiOverweightMax  = 30
)

// ComputeBMI derives body mass index from height in centimeters and weight
// in kilograms, rounded to one decimal. Returns ok=false when height is
// zero so the division is guarded.
func ComputeBMI(heightCM, weightKG float64) (bmi float64, category string, ok bool) {
	if heightCM == 0 {
		return 0, "", false
	}
	h := heightCM / 100.0
	bmi = weightKG / (h * h)
	bmi = math.Round(bmi*10) / 10

	switch {
	case bmi < bmiUnderweightMax:
		category = "Underweight"
	case bmi < bmiNormalMax:
		category = "Normal"
	case bmi < bmiOverweightMax:
		category = "Overweight"
	default:
		category = "Obese"
	}
	return bmi, category, true
}

// FormatBMI renders a BMI value the way replies display it, always with one
// decimal place.
func FormatBMI(bmi float64) string {
	return strconv.FormatFloat(bmi, 'f', 1, 64)
}
