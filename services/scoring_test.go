package services

import (
	"reflect"
	"testing"

	"vitascreen/models"
)

func answer(id string, value interface{}) models.Answer {
	return models.Answer{QuestionID: id, Value: value, QuestionText: id}
}

func healthyAnswers() []models.Answer {
	return []models.Answer{
		answer("age", 25.0),
		answer("smoking", "No"),
		answer("alcohol", "Never"),
		answer("exercise", 6.0),
		answer("bmi", 22.0),
		answer("blood_pressure", "No"),
		answer("diabetes", false),
		answer("family_history", false),
		answer("stress", "Low"),
		answer("sleep", 7.5),
		answer("diet", "Very healthy"),
	}
}

func TestHealthyProfileScoresZero(t *testing.T) {
	result := computeLocalAssessment(healthyAnswers())

	if result.Score != 0 {
		t.Errorf("score = %d, want 0", result.Score)
	}
	if result.RiskLevel != models.RiskLow {
		t.Errorf("riskLevel = %s, want %s", result.RiskLevel, models.RiskLow)
	}
	if len(result.UrgentActions) != 0 {
		t.Errorf("urgentActions should be absent, got %v", result.UrgentActions)
	}
	if result.Summary == "" || result.DetailedAnalysis == "" {
		t.Error("summary and detailed analysis must always be populated")
	}
}

func TestSevereProfileTriggersUrgentActions(t *testing.T) {
	answers := []models.Answer{
		answer("smoking", "Yes"),
		answer("bmi", 36.0),
		answer("blood_pressure", "Yes, uncontrolled"),
	}
	result := computeLocalAssessment(answers)

	if result.Score != 70 {
		t.Errorf("score = %d, want 70", result.Score)
	}
	if result.RiskLevel != models.RiskHigh {
		t.Errorf("riskLevel = %s, want %s", result.RiskLevel, models.RiskHigh)
	}
	if len(result.UrgentActions) != 3 {
		t.Errorf("expected 3 urgent actions, got %d: %v", len(result.UrgentActions), result.UrgentActions)
	}
}

func TestScoreIsClampedAt100(t *testing.T) {
	answers := []models.Answer{
		answer("age", 65.0),
		answer("smoking", "Yes"),
		answer("alcohol", "Daily"),
		answer("exercise", 0.0),
		answer("bmi", 40.0),
		answer("blood_pressure", "Yes, uncontrolled"),
		answer("diabetes", true),
		answer("family_history", true),
		answer("stress", "Very High"),
		answer("sleep", 4.0),
		answer("diet", "Poor"),
	}
	result := computeLocalAssessment(answers)

	if result.Score != 100 {
		t.Errorf("score = %d, want clamp at 100", result.Score)
	}
	if result.RiskLevel != models.RiskVeryHigh {
		t.Errorf("riskLevel = %s, want %s", result.RiskLevel, models.RiskVeryHigh)
	}
	if len(result.KeyFindings) > 5 {
		t.Errorf("keyFindings not truncated: %d entries", len(result.KeyFindings))
	}
	if len(result.Recommendations) > 6 {
		t.Errorf("recommendations not truncated: %d entries", len(result.Recommendations))
	}
}

func TestClassifyScoreThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{24, models.RiskLow},
		{25, models.RiskModerate},
		{49, models.RiskModerate},
		{50, models.RiskHigh},
		{74, models.RiskHigh},
		{75, models.RiskVeryHigh},
		{100, models.RiskVeryHigh},
	}
	for _, tt := range tests {
		if got := classifyScore(tt.score); got != tt.want {
			t.Errorf("classifyScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScoringIsDeterministic(t *testing.T) {
	answers := []models.Answer{
		answer("age", 55.0),
		answer("smoking", "Yes"),
		answer("stress", "High"),
	}

	first := computeLocalAssessment(answers)
	second := computeLocalAssessment(answers)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated scoring of the same answers produced different results")
	}
}

func TestDuplicateAnswersUseLastWriteWins(t *testing.T) {
	answers := []models.Answer{
		answer("smoking", "Yes"),
		answer("smoking", "No"),
	}
	result := computeLocalAssessment(answers)

	if result.Score != 0 {
		t.Errorf("score = %d, want 0 after smoking answer was overwritten", result.Score)
	}
}

func TestMissingAnswersDoNotFireRules(t *testing.T) {
	result := computeLocalAssessment(nil)

	if result.Score != 0 {
		t.Errorf("score with no answers = %d, want 0", result.Score)
	}
	if result.RiskLevel != models.RiskLow {
		t.Errorf("riskLevel = %s, want %s", result.RiskLevel, models.RiskLow)
	}
	// The boilerplate advice is present even for an empty transcript.
	if len(result.Recommendations) != 2 {
		t.Errorf("expected only boilerplate recommendations, got %v", result.Recommendations)
	}
}

func TestRuleWeights(t *testing.T) {
	tests := []struct {
		name    string
		answers []models.Answer
		want    int
	}{
		{"age over 60", []models.Answer{answer("age", 61.0)}, 15},
		{"age 46-60", []models.Answer{answer("age", 50.0)}, 10},
		{"age under 46", []models.Answer{answer("age", 45.0)}, 0},
		{"daily alcohol", []models.Answer{answer("alcohol", "Daily")}, 20},
		{"frequent alcohol", []models.Answer{answer("alcohol", "Frequently")}, 15},
		{"sedentary", []models.Answer{answer("exercise", 1.0)}, 15},
		{"some exercise", []models.Answer{answer("exercise", 3.0)}, 8},
		{"active", []models.Answer{answer("exercise", 5.0)}, 0},
		{"severe obesity", []models.Answer{answer("bmi", 36.0)}, 20},
		{"obesity", []models.Answer{answer("bmi", 31.0)}, 15},
		{"overweight", []models.Answer{answer("bmi", 27.0)}, 8},
		{"underweight", []models.Answer{answer("bmi", 17.0)}, 10},
		{"controlled blood pressure", []models.Answer{answer("blood_pressure", "Yes, controlled with medication")}, 10},
		{"uncontrolled blood pressure", []models.Answer{answer("blood_pressure", "Yes, uncontrolled")}, 25},
		{"diabetes", []models.Answer{answer("diabetes", true)}, 20},
		{"family history", []models.Answer{answer("family_history", "Yes")}, 12},
		{"very high stress", []models.Answer{answer("stress", "Very High")}, 15},
		{"high stress", []models.Answer{answer("stress", "High")}, 10},
		{"short sleep", []models.Answer{answer("sleep", 5.0)}, 10},
		{"long sleep", []models.Answer{answer("sleep", 10.0)}, 10},
		{"healthy sleep", []models.Answer{answer("sleep", 8.0)}, 0},
		{"poor diet", []models.Answer{answer("diet", "Poor")}, 15},
		{"average diet", []models.Answer{answer("diet", "Average")}, 8},
		{"numeric answer as string", []models.Answer{answer("bmi", "31.5")}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := computeLocalAssessment(tt.answers)
			if result.Score != tt.want {
				t.Errorf("score = %d, want %d", result.Score, tt.want)
			}
		})
	}
}
