package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vitascreen/models"
)

// generatedQuestion mirrors the JSON object the model is instructed to emit.
type generatedQuestion struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Unit     string   `json:"unit"`
}

// firstJSONObject returns the first balanced {...} substring, tracking string
// literals so braces inside quoted text don't affect the depth count. Returns
// "" when no balanced object exists.
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// ParseGeneratedQuestion extracts a Question from raw model output. Model
// output is untrusted: code fences are stripped, the first balanced {...}
// substring is pulled out, unknown types are coerced to free text, and
// missing option sets or slider bounds are back-filled with safe defaults.
// The caller assigns the question id and provenance flag.
func ParseGeneratedQuestion(raw string) (*models.Question, error) {
	cleaned := cleanModelOutput(raw)
	jsonPart := firstJSONObject(cleaned)
	if jsonPart == "" {
		return nil, errors.New("no JSON object in model output")
	}

	var gq generatedQuestion
	if err := json.Unmarshal([]byte(jsonPart), &gq); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}
	if strings.TrimSpace(gq.Question) == "" {
		return nil, errors.New("model output has no question text")
	}

	q := &models.Question{Text: strings.TrimSpace(gq.Question)}

	switch strings.ToLower(strings.TrimSpace(gq.Type)) {
	case "number", "numeric":
		q.Kind = models.KindNumber
	case "yesno", "yes_no", "boolean":
		q.Kind = models.KindYesNo
		q.Options = gq.Options
		if len(q.Options) != 2 {
			q.Options = []string{"Yes", "No"}
		}
	case "slider", "scale":
		q.Kind = models.KindSlider
		min, max := 0.0, 10.0
		if gq.Min != nil {
			min = *gq.Min
		}
		if gq.Max != nil {
			max = *gq.Max
		}
		if max <= min {
			min, max = 0, 10
		}
		q.Range = &models.SliderRange{Min: min, Max: max, Unit: gq.Unit}
	case "multiple_choice", "choice", "select":
		if len(gq.Options) < 2 {
			// Unusable option set, degrade to free text instead of rejecting.
			q.Kind = models.KindFreeText
		} else {
			q.Kind = models.KindMultipleChoice
			q.Options = gq.Options
		}
	default:
		// Unrecognized type: coerce rather than fail, to keep the flow moving.
		q.Kind = models.KindFreeText
	}

	return q, nil
}

// buildQuestionPrompt constructs the follow-up-question prompt: a fixed
// preamble, the last few answers as context, the already-covered topics, and
// a strict single-object output directive.
func buildQuestionPrompt(answers []models.Answer, askedIDs []string) string {
	var sb strings.Builder
	sb.WriteString("You are a health screening assistant conducting a non-communicable disease risk assessment. ")
	sb.WriteString("Generate ONE personalized follow-up question based on the user's recent answers.\n\n")

	sb.WriteString("Recent answers:\n")
	start := len(answers) - 3
	if start < 0 {
		start = 0
	}
	for _, a := range answers[start:] {
		sb.WriteString(fmt.Sprintf("- %s: %v\n", a.QuestionText, a.Value))
	}

	sb.WriteString("\nTopics already covered (do not repeat these): ")
	sb.WriteString(strings.Join(askedIDs, ", "))
	sb.WriteString("\n\n")

	sb.WriteString("Respond with ONLY a single JSON object, no other text, in this exact shape:\n")
	sb.WriteString(`{"question": "...", "type": "number|yesno|slider|multiple_choice|text", "options": ["..."], "min": 0, "max": 10, "unit": "..."}`)
	sb.WriteString("\nInclude options only for multiple_choice or yesno, and min/max/unit only for slider.")
	return sb.String()
}
