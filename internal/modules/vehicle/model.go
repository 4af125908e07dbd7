// README: Customer vehicle categories, service-vehicle types and the evacuator questionnaire.
package vehicle

import (
	"errors"
	"strings"
)

// Category is what the customer says they drive.
type Category string

const (
	CategorySedan        Category = "SEDAN"
	CategorySUV          Category = "SUV"
	CategoryMinibus      Category = "MINIBUS"
	CategoryConstruction Category = "CONSTRUCTION"
	CategoryMoto         Category = "MOTO"
	CategorySports       Category = "SPORTS"
)

var Categories = []Category{
	CategorySedan,
	CategorySUV,
	CategoryMinibus,
	CategoryConstruction,
	CategoryMoto,
	CategorySports,
}

// ServiceVehicleType is the evacuator equipment dispatched for a job. It also keys the
// evacuator price table.
type ServiceVehicleType string

const (
	Standard         ServiceVehicleType = "STANDARD"
	Spider           ServiceVehicleType = "SPIDER"
	Lowboy           ServiceVehicleType = "LOWBOY"
	HeavyManipulator ServiceVehicleType = "HEAVY_MANIPULATOR"
	LongBed          ServiceVehicleType = "LONG_BED"
	MotoCarrier      ServiceVehicleType = "MOTO_CARRIER"
)

var ServiceVehicleTypes = []ServiceVehicleType{
	Standard,
	Spider,
	Lowboy,
	HeavyManipulator,
	LongBed,
	MotoCarrier,
}

// Question identifies one yes/no item of the evacuator questionnaire.
type Question string

const (
	QuestionWheelLocked    Question = "wheelLocked"
	QuestionSteeringLocked Question = "steeringLocked"
	QuestionGoesNeutral    Question = "goesNeutral"
)

// Answers holds the questionnaire. A nil field means the question was not answered.
type Answers struct {
	WheelLocked    *bool `json:"wheelLocked,omitempty" firestore:"wheelLocked,omitempty"`
	SteeringLocked *bool `json:"steeringLocked,omitempty" firestore:"steeringLocked,omitempty"`
	GoesNeutral    *bool `json:"goesNeutral,omitempty" firestore:"goesNeutral,omitempty"`
}

var ErrUnknownCategory = errors.New("unknown vehicle category")

func ParseCategory(v string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(v)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

func (t ServiceVehicleType) Valid() bool {
	for _, known := range ServiceVehicleTypes {
		if t == known {
			return true
		}
	}
	return false
}

func isTrue(v *bool) bool  { return v != nil && *v }
func isFalse(v *bool) bool { return v != nil && !*v }
