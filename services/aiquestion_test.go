package services

import (
	"strings"
	"testing"

	"vitascreen/models"
)

func TestParseGeneratedQuestionPlainJSON(t *testing.T) {
	raw := `{"question": "How many cups of coffee do you drink per day?", "type": "number"}`
	q, err := ParseGeneratedQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != models.KindNumber {
		t.Errorf("kind = %s, want %s", q.Kind, models.KindNumber)
	}
	if q.Text != "How many cups of coffee do you drink per day?" {
		t.Errorf("unexpected text: %q", q.Text)
	}
}

func TestParseGeneratedQuestionStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"question\": \"Do you take any regular medication?\", \"type\": \"yesno\"}\n```"
	q, err := ParseGeneratedQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != models.KindYesNo {
		t.Errorf("kind = %s, want %s", q.Kind, models.KindYesNo)
	}
}

func TestParseGeneratedQuestionExtractsEmbeddedObject(t *testing.T) {
	raw := `Sure! Here is the question you asked for:
{"question": "How often do you eat red meat?", "type": "multiple_choice", "options": ["Rarely", "Weekly", "Daily"]}
Let me know if you need anything else.`
	q, err := ParseGeneratedQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != models.KindMultipleChoice {
		t.Errorf("kind = %s, want %s", q.Kind, models.KindMultipleChoice)
	}
	if len(q.Options) != 3 {
		t.Errorf("options = %v", q.Options)
	}
}

func TestParseGeneratedQuestionStopsAtFirstBalancedObject(t *testing.T) {
	raw := `{"question": "Do you snore regularly?", "type": "yesno"} Hope that helps! {unrelated}`
	q, err := ParseGeneratedQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Do you snore regularly?" {
		t.Errorf("unexpected text: %q", q.Text)
	}
	if q.Kind != models.KindYesNo {
		t.Errorf("kind = %s, want %s", q.Kind, models.KindYesNo)
	}
}

func TestParseGeneratedQuestionHandlesBracesInsideStrings(t *testing.T) {
	raw := `{"question": "Pick the set {a, b} you prefer", "type": "multiple_choice", "options": ["{a}", "{b}"]}`
	q, err := ParseGeneratedQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Options) != 2 {
		t.Errorf("options = %v", q.Options)
	}
}

func TestParseGeneratedQuestionDefaultsYesNoOptions(t *testing.T) {
	raw := `{"question": "Have you had a flu shot this year?", "type": "boolean"}`
	q, err := ParseGeneratedQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != models.KindYesNo {
		t.Fatalf("kind = %s, want %s", q.Kind, models.KindYesNo)
	}
	if len(q.Options) != 2 || q.Options[0] != "Yes" || q.Options[1] != "No" {
		t.Errorf("expected default Yes/No options, got %v", q.Options)
	}
}

func TestParseGeneratedQuestionDefaultsSliderBounds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing bounds", `{"question": "Rate your energy levels", "type": "slider"}`},
		{"inverted bounds", `{"question": "Rate your energy levels", "type": "slider", "min": 10, "max": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseGeneratedQuestion(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Range == nil || q.Range.Min != 0 || q.Range.Max != 10 {
				t.Errorf("expected default 0-10 range, got %+v", q.Range)
			}
		})
	}
}

func TestParseGeneratedQuestionCoercesUnknownType(t *testing.T) {
	raw := `{"question": "Describe your typical breakfast", "type": "essay"}`
	q, err := ParseGeneratedQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != models.KindFreeText {
		t.Errorf("kind = %s, want coercion to %s", q.Kind, models.KindFreeText)
	}
}

func TestParseGeneratedQuestionCoercesUnusableChoices(t *testing.T) {
	raw := `{"question": "Pick one", "type": "multiple_choice", "options": ["only one"]}`
	q, err := ParseGeneratedQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != models.KindFreeText {
		t.Errorf("kind = %s, want %s for a one-option choice", q.Kind, models.KindFreeText)
	}
}

func TestParseGeneratedQuestionRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no JSON at all", "I am a helpful assistant and here is some prose."},
		{"broken JSON", `{"question": "unterminated`},
		{"empty question", `{"question": "   ", "type": "number"}`},
		{"empty input", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGeneratedQuestion(tt.raw); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBuildQuestionPromptIncludesRecentContext(t *testing.T) {
	answers := []models.Answer{
		answer("age", 40.0),
		answer("smoking", "No"),
		answer("alcohol", "Daily"),
		answer("exercise", 2.0),
	}
	prompt := buildQuestionPrompt(answers, []string{"age", "smoking", "alcohol", "exercise"})

	// Only the last three answers are included as context.
	if strings.Contains(prompt, "age: 40") {
		t.Error("prompt should not include answers older than the last three")
	}
	for _, fragment := range []string{"smoking", "alcohol", "exercise", "JSON"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}
