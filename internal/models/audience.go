package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownGender = errors.New("unknown gender option")
)

type TargetAudience struct {
	AgeMin    string `json:"ageMin"`
	AgeMax    string `json:"ageMax"`
	Gender    string `json:"gender"`
	Location  string `json:"location"`
	Interests string `json:"interests"`
}

// GenderOption pairs the value sent to the model with the label shown in forms.
type GenderOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

const (
	GenderAll    = "Semua"
	GenderMale   = "Pria"
	GenderFemale = "Wanita"
)

var GenderOptions = []GenderOption{
	{Value: GenderAll, Label: "Semuanya Boleh"},
	{Value: GenderMale, Label: "Cowok"},
	{Value: GenderFemale, Label: "Cewek"},
}

func IsGenderOption(value string) bool {
	for _, opt := range GenderOptions {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func DefaultAudience() TargetAudience {
	return TargetAudience{
		AgeMin: "18",
		AgeMax: "35",
		Gender: GenderOptions[0].Value,
	}
}

type AudienceField string

const (
	AudienceAgeMin    AudienceField = "ageMin"
	AudienceAgeMax    AudienceField = "ageMax"
	AudienceGender    AudienceField = "gender"
	AudienceLocation  AudienceField = "location"
	AudienceInterests AudienceField = "interests"
)

var AudienceFields = []AudienceField{
	AudienceAgeMin,
	AudienceAgeMax,
	AudienceGender,
	AudienceLocation,
	AudienceInterests,
}

// Set updates a single field. The audience is left untouched on error.
func (a *TargetAudience) Set(field AudienceField, value string) error {
	switch field {
	case AudienceAgeMin:
		a.AgeMin = value
	case AudienceAgeMax:
		a.AgeMax = value
	case AudienceGender:
		if !IsGenderOption(value) {
			return fmt.Errorf("%w: %q", ErrUnknownGender, value)
		}
		a.Gender = value
	case AudienceLocation:
		a.Location = value
	case AudienceInterests:
		a.Interests = value
	default:
		return fmt.Errorf("%w: audience.%s", ErrUnknownField, field)
	}
	return nil
}

func (a TargetAudience) Get(field AudienceField) string {
	switch field {
	case AudienceAgeMin:
		return a.AgeMin
	case AudienceAgeMax:
		return a.AgeMax
	case AudienceGender:
		return a.Gender
	case AudienceLocation:
		return a.Location
	case AudienceInterests:
		return a.Interests
	}
	return ""
}
