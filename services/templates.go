package services

import (
	"math/rand"

	"vitascreen/models"
)

// questionTemplate is a fixed, pre-authored question definition. Phrasings are
// interchangeable wordings sharing one semantic id; scoring is keyed by id
// only, so which phrasing was shown never affects the result.
type questionTemplate struct {
	id        string
	kind      models.QuestionKind
	phrasings []string
	options   []string
	slider    *models.SliderRange
}

var questionTemplates = []questionTemplate{
	{
		id:   "age",
		kind: models.KindNumber,
		phrasings: []string{
			"How old are you?",
			"What is your age in years?",
		},
	},
	{
		id:   "smoking",
		kind: models.KindYesNo,
		phrasings: []string{
			"Do you currently smoke or use tobacco products?",
			"Are you a smoker?",
		},
		options: []string{"Yes", "No"},
	},
	{
		id:   "alcohol",
		kind: models.KindMultipleChoice,
		phrasings: []string{
			"How often do you drink alcohol?",
			"How would you describe your alcohol consumption?",
		},
		options: []string{"Never", "Occasionally", "Frequently", "Daily"},
	},
	{
		id:   "exercise",
		kind: models.KindSlider,
		phrasings: []string{
			"How many days per week do you exercise for at least 30 minutes?",
			"On how many days of a typical week are you physically active?",
		},
		slider: &models.SliderRange{Min: 0, Max: 7, Unit: "days/week"},
	},
	{
		id:   "bmi",
		kind: models.KindNumber,
		phrasings: []string{
			"What is your body mass index (BMI)? If unsure, divide your weight in kg by your height in metres squared.",
			"Please enter your BMI (weight in kg divided by height in metres squared).",
		},
	},
	{
		id:   "blood_pressure",
		kind: models.KindMultipleChoice,
		phrasings: []string{
			"Have you been diagnosed with high blood pressure?",
			"Do you have a high blood pressure condition?",
		},
		options: []string{"No", "Yes, controlled with medication", "Yes, uncontrolled"},
	},
	{
		id:   "diabetes",
		kind: models.KindYesNo,
		phrasings: []string{
			"Have you been diagnosed with diabetes or pre-diabetes?",
			"Do you have a diabetes diagnosis?",
		},
		options: []string{"Yes", "No"},
	},
	{
		id:   "family_history",
		kind: models.KindYesNo,
		phrasings: []string{
			"Does anyone in your immediate family have heart disease, diabetes, or stroke history?",
			"Is there a family history of heart disease, diabetes, or stroke?",
		},
		options: []string{"Yes", "No"},
	},
	{
		id:   "stress",
		kind: models.KindMultipleChoice,
		phrasings: []string{
			"How would you rate your day-to-day stress levels?",
			"How stressed do you feel on a typical day?",
		},
		options: []string{"Low", "Moderate", "High", "Very High"},
	},
	{
		id:   "sleep",
		kind: models.KindSlider,
		phrasings: []string{
			"How many hours of sleep do you get on a typical night?",
			"On average, how long do you sleep per night?",
		},
		slider: &models.SliderRange{Min: 3, Max: 12, Unit: "hours"},
	},
	{
		id:   "diet",
		kind: models.KindMultipleChoice,
		phrasings: []string{
			"How would you describe your overall diet?",
			"How healthy is your typical diet?",
		},
		options: []string{"Very healthy", "Average", "Poor"},
	},
	{
		id:   "checkup",
		kind: models.KindMultipleChoice,
		phrasings: []string{
			"When was your last general health check-up?",
			"How long ago was your most recent medical check-up?",
		},
		options: []string{"Within the last year", "1-3 years ago", "More than 3 years ago", "Never"},
	},
}

// pickPhrasing selects one wording for a template. Phrasing choice is
// cosmetic; the id and option set stay fixed.
func pickPhrasing(t questionTemplate, rng *rand.Rand) string {
	if len(t.phrasings) == 1 {
		return t.phrasings[0]
	}
	return t.phrasings[rng.Intn(len(t.phrasings))]
}

// buildTemplateQuestion materializes a template into a Question.
func buildTemplateQuestion(t questionTemplate, rng *rand.Rand) *models.Question {
	q := &models.Question{
		ID:   t.id,
		Text: pickPhrasing(t, rng),
		Kind: t.kind,
	}
	if len(t.options) > 0 {
		q.Options = append([]string(nil), t.options...)
	}
	if t.slider != nil {
		r := *t.slider
		q.Range = &r
	}
	return q
}
