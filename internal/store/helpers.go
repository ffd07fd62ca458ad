package store

import (
	"database/sql"
	"fmt"

	"github.com/sampark-health/sampark/internal/models"
)

// profileColumns is the column order shared by every profile query.
const profileColumns = `phone, name, age, height_cm, weight_kg, bmi, bmi_category, city, fam_name, fam_relation, family_member, checkins, state, msg_count, created_at, updated_at`

// nilIfEmpty returns nil if s is empty, otherwise returns s.
// Used for nullable database columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProfile scans one profile row, converting nullable columns to the
// pointer/empty-string representation used by models.UserProfile.
func scanProfile(row rowScanner) (models.UserProfile, error) {
	var p models.UserProfile
	var name, bmiCategory, city, famName, famRelation, familyMember sql.NullString
	var age sql.NullInt64
	var heightCM, weightKG, bmi sql.NullFloat64
	var state string

	err := row.Scan(
		&p.Phone, &name, &age, &heightCM, &weightKG, &bmi, &bmiCategory,
		&city, &famName, &famRelation, &familyMember,
		&p.Checkins, &state, &p.MessageCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, fmt.Errorf("scan profile failed: %w", err)
	}

	p.Name = name.String
	p.BMICategory = bmiCategory.String
	p.City = city.String
	p.FamilyMemberName = famName.String
	p.FamilyMemberRelation = famRelation.String
	p.FamilyMember = familyMember.String
	p.State = models.OnboardingState(state)
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if heightCM.Valid {
		v := heightCM.Float64
		p.HeightCM = &v
	}
	if weightKG.Valid {
		v := weightKG.Float64
		p.WeightKG = &v
	}
	if bmi.Valid {
		v := bmi.Float64
		p.BMI = &v
	}
	return p, nil
}

// profileArgs returns the insert/update argument list matching profileColumns
// after the phone key.
func profileArgs(p models.UserProfile) []interface{} {
	var age, heightCM, weightKG, bmi interface{}
	if p.Age != nil {
		age = *p.Age
	}
	if p.HeightCM != nil {
		heightCM = *p.HeightCM
	}
	if p.WeightKG != nil {
		weightKG = *p.WeightKG
	}
	if p.BMI != nil {
		bmi = *p.BMI
	}
	return []interface{}{
		nilIfEmpty(p.Name), age, heightCM, weightKG, bmi,
		nilIfEmpty(p.BMICategory), nilIfEmpty(p.City),
		nilIfEmpty(p.FamilyMemberName), nilIfEmpty(p.FamilyMemberRelation),
		nilIfEmpty(p.FamilyMember),
		p.Checkins, string(p.State), p.MessageCount,
	}
}
