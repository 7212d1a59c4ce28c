package services

import (
	"fmt"
	"strconv"
	"strings"

	"vitascreen/models"
)

// Classification thresholds, inclusive lower bounds.
const (
	veryHighThreshold = 75
	highThreshold     = 50
	moderateThreshold = 25
)

var riskSummaries = map[models.RiskLevel]string{
	models.RiskLow:      "Your responses indicate a low risk profile. Keep up your current healthy habits and continue routine screenings.",
	models.RiskModerate: "Your responses indicate a moderate risk profile. A few lifestyle factors deserve attention before they become bigger problems.",
	models.RiskHigh:     "Your responses indicate a high risk profile. Several significant risk factors were identified; we recommend discussing them with a doctor soon.",
	models.RiskVeryHigh: "Your responses indicate a very high risk profile. Multiple serious risk factors were identified; please seek medical advice promptly.",
}

// latestAnswer returns the most recent answer recorded for a question id.
// Duplicate submissions append rather than overwrite, so reading from the end
// gives last-write-wins semantics.
func latestAnswer(answers []models.Answer, id string) (interface{}, bool) {
	for i := len(answers) - 1; i >= 0; i-- {
		if answers[i].QuestionID == id {
			return answers[i].Value, true
		}
	}
	return nil, false
}

// numericAnswer coerces an answer value to a float64.
func numericAnswer(answers []models.Answer, id string) (float64, bool) {
	v, ok := latestAnswer(answers, id)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// choiceAnswer coerces an answer value to its choice string.
func choiceAnswer(answers []models.Answer, id string) (string, bool) {
	v, ok := latestAnswer(answers, id)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case bool:
		if s {
			return "Yes", true
		}
		return "No", true
	default:
		return "", false
	}
}

// yesAnswer reports whether a yes/no answer is affirmative.
func yesAnswer(answers []models.Answer, id string) bool {
	v, ok := latestAnswer(answers, id)
	if !ok {
		return false
	}
	switch s := v.(type) {
	case bool:
		return s
	case string:
		t := strings.ToLower(strings.TrimSpace(s))
		return t == "yes" || t == "true"
	default:
		return false
	}
}

// computeLocalAssessment derives the deterministic risk assessment from the
// accumulated answers. It is a pure function: an ordered list of independent
// rules, each conditionally adding a fixed weight and appending fixed strings.
// A missing answer simply means the rule does not fire.
func computeLocalAssessment(answers []models.Answer) models.RiskAssessment {
	score := 0
	var findings, recommendations, urgent []string

	if age, ok := numericAnswer(answers, "age"); ok {
		switch {
		case age > 60:
			score += 15
			findings = append(findings, "Age above 60 raises baseline risk for most non-communicable diseases")
		case age >= 46:
			score += 10
			findings = append(findings, "Age between 46 and 60 moderately raises baseline risk")
		}
	}

	if yesAnswer(answers, "smoking") {
		score += 25
		urgent = append(urgent, "Quit smoking — contact a cessation program or your doctor for support")
		findings = append(findings, "Active smoking, the single largest modifiable risk factor identified")
	}

	if alcohol, ok := choiceAnswer(answers, "alcohol"); ok {
		switch alcohol {
		case "Daily":
			score += 20
			recommendations = append(recommendations, "Reduce alcohol intake; daily consumption significantly elevates long-term risk")
		case "Frequently":
			score += 15
		}
	}

	if days, ok := numericAnswer(answers, "exercise"); ok {
		switch {
		case days < 2:
			score += 15
			findings = append(findings, "Very low physical activity (fewer than 2 active days per week)")
			recommendations = append(recommendations, "Build up to at least 150 minutes of moderate activity per week")
		case days <= 3:
			score += 8
			recommendations = append(recommendations, "Add one or two more active days per week to reach recommended levels")
		}
	}

	if bmi, ok := numericAnswer(answers, "bmi"); ok {
		switch {
		case bmi > 35:
			score += 20
			urgent = append(urgent, "Arrange a weight management consultation; BMI above 35 indicates severe obesity")
			findings = append(findings, "BMI above 35 (severe obesity)")
		case bmi > 30:
			score += 15
			findings = append(findings, "BMI in the obese range (30-35)")
		case bmi > 25:
			score += 8
			recommendations = append(recommendations, "Aim for gradual weight loss to bring BMI under 25")
		case bmi < 18.5 && bmi > 0:
			score += 10
			recommendations = append(recommendations, "Discuss healthy weight gain strategies with a nutritionist; BMI is underweight")
		}
	}

	if bp, ok := choiceAnswer(answers, "blood_pressure"); ok {
		lower := strings.ToLower(bp)
		if strings.Contains(lower, "uncontrolled") {
			score += 25
			urgent = append(urgent, "Seek medical attention for uncontrolled high blood pressure")
			findings = append(findings, "Uncontrolled hypertension")
		} else if strings.Contains(lower, "controlled") {
			score += 10
			recommendations = append(recommendations, "Keep taking blood pressure medication as prescribed and monitor regularly")
		}
	}

	if yesAnswer(answers, "diabetes") {
		score += 20
		findings = append(findings, "Existing diabetes or pre-diabetes diagnosis")
		recommendations = append(recommendations, "Maintain regular blood glucose monitoring and follow your management plan")
	}

	if yesAnswer(answers, "family_history") {
		score += 12
		findings = append(findings, "Family history of heart disease, diabetes, or stroke")
		recommendations = append(recommendations, "Tell your doctor about your family history so screenings can start earlier")
	}

	if stress, ok := choiceAnswer(answers, "stress"); ok {
		switch stress {
		case "Very High":
			score += 15
			findings = append(findings, "Very high self-reported stress levels")
			recommendations = append(recommendations, "Consider stress management techniques such as mindfulness, exercise, or counselling")
		case "High":
			score += 10
			recommendations = append(recommendations, "Build regular breaks and relaxation time into your routine to lower stress")
		}
	}

	if hours, ok := numericAnswer(answers, "sleep"); ok {
		if hours < 6 || hours > 9 {
			score += 10
			findings = append(findings, "Sleep duration outside the healthy 6-9 hour range")
			recommendations = append(recommendations, "Target 7-8 hours of sleep on a consistent schedule")
		}
	}

	if diet, ok := choiceAnswer(answers, "diet"); ok {
		switch diet {
		case "Poor":
			score += 15
			findings = append(findings, "Poor overall diet quality")
			recommendations = append(recommendations, "Shift towards more vegetables, whole grains, and less processed food")
		case "Average":
			score += 8
			recommendations = append(recommendations, "Small diet improvements, like cutting sugary drinks, compound over time")
		}
	}

	// Boilerplate advice, counted within the recommendation cap.
	recommendations = append(recommendations,
		"Schedule a consultation with your doctor to review these results",
		"Stay hydrated and keep up regular health screenings")

	if score > 100 {
		score = 100
	}
	level := classifyScore(score)

	if len(findings) > 5 {
		findings = findings[:5]
	}
	if len(recommendations) > 6 {
		recommendations = recommendations[:6]
	}

	return models.RiskAssessment{
		RiskLevel:        level,
		Score:            score,
		Summary:          riskSummaries[level],
		KeyFindings:      findings,
		Recommendations:  recommendations,
		UrgentActions:    urgent,
		DetailedAnalysis: buildTemplatedAnalysis(level, score, findings),
	}
}

func classifyScore(score int) models.RiskLevel {
	switch {
	case score >= veryHighThreshold:
		return models.RiskVeryHigh
	case score >= highThreshold:
		return models.RiskHigh
	case score >= moderateThreshold:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// buildTemplatedAnalysis is the deterministic fallback narrative used when no
// AI enhancement is available.
func buildTemplatedAnalysis(level models.RiskLevel, score int, findings []string) string {
	first := fmt.Sprintf(
		"Based on your answers, your overall risk score is %d out of 100, placing you in the %s risk tier. "+
			"This score aggregates lifestyle, medical history, and physiological signals from your screening.",
		score, level)

	second := "No individual risk factors stood out in your answers."
	if len(findings) > 0 {
		second = "The main contributors to your score were: " + strings.Join(findings, "; ") + "."
	}

	third := "Most non-communicable disease risk is modifiable. Consistent changes to activity, diet, sleep, and " +
		"substance use measurably reduce long-term risk, and improvements tend to reinforce each other."

	fourth := "This screening is informational and does not replace professional medical advice. " +
		"Share these results with a healthcare provider, especially if any urgent actions were flagged."

	return strings.Join([]string{first, second, third, fourth}, "\n\n")
}
