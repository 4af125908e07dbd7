// README: Evacuator rule table mapping vehicle category and questionnaire answers to equipment.
package vehicle

// rule resolves one customer category. When problem is nil the category maps to light
// unconditionally. Otherwise any reported problem escalates to heavy.
type rule struct {
	questions []Question
	problem   func(Answers) bool
	light     ServiceVehicleType
	heavy     ServiceVehicleType
}

// Unanswered questions count as "no problem"; goesNeutral only escalates when it is
// explicitly false.
var rules = map[Category]rule{
	CategorySedan: {
		questions: []Question{QuestionWheelLocked, QuestionSteeringLocked, QuestionGoesNeutral},
		problem:   carProblem,
		light:     Standard,
		heavy:     Spider,
	},
	CategorySUV: {
		questions: []Question{QuestionWheelLocked, QuestionSteeringLocked, QuestionGoesNeutral},
		problem:   carProblem,
		light:     Standard,
		heavy:     Spider,
	},
	CategoryMinibus: {
		questions: []Question{QuestionWheelLocked, QuestionSteeringLocked},
		problem:   minibusProblem,
		light:     LongBed,
		heavy:     HeavyManipulator,
	},
	CategoryConstruction: {light: Lowboy},
	CategoryMoto:         {light: MotoCarrier},
	CategorySports:       {light: Spider},
}

func carProblem(a Answers) bool {
	return isTrue(a.WheelLocked) || isTrue(a.SteeringLocked) || isFalse(a.GoesNeutral)
}

func minibusProblem(a Answers) bool {
	return isTrue(a.WheelLocked) || isTrue(a.SteeringLocked)
}

// Classify returns the service vehicle required for a customer's vehicle. Every known
// category has a result; ErrUnknownCategory is only returned for values outside Categories.
func Classify(c Category, a Answers) (ServiceVehicleType, error) {
	r, ok := rules[c]
	if !ok {
		return "", ErrUnknownCategory
	}
	if r.problem != nil && r.problem(a) {
		return r.heavy, nil
	}
	return r.light, nil
}

// Questions lists what the booking wizard has to ask for a category, in display order.
func Questions(c Category) ([]Question, error) {
	r, ok := rules[c]
	if !ok {
		return nil, ErrUnknownCategory
	}
	out := make([]Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

// NeedsQuestionnaire reports whether the answers influence the result for c.
func NeedsQuestionnaire(c Category) bool {
	return rules[c].problem != nil
}
