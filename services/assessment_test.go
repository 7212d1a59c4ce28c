package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"vitascreen/models"
)

// fakeGenerator is a scripted TextGenerator for exercising the AI paths.
type fakeGenerator struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.responses[(f.calls-1)%len(f.responses)], nil
}

func TestNextQuestionTerminatesAfterMaxQuestions(t *testing.T) {
	session := NewAssessmentSession(DefaultEngineConfig(), nil)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		q := session.NextQuestion(ctx)
		if q == nil {
			t.Fatalf("question %d: expected non-nil question", i)
		}
		session.SaveAnswer(q, "anything")
	}

	// Terminal state is idempotent.
	for i := 0; i < 3; i++ {
		if q := session.NextQuestion(ctx); q != nil {
			t.Errorf("call %d after exhaustion: expected nil, got %q", i, q.ID)
		}
	}
}

func TestNextQuestionNeverRepeatsTemplatesWithinPool(t *testing.T) {
	session := NewAssessmentSession(DefaultEngineConfig(), nil)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 12; i++ {
		q := session.NextQuestion(ctx)
		if q == nil {
			t.Fatalf("question %d: expected non-nil question", i)
		}
		if seen[q.ID] {
			t.Errorf("question id %q returned twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestNextQuestionWrapsAroundWhenPoolExhausted(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.MaxQuestions = 15
	session := NewAssessmentSession(cfg, nil)
	ctx := context.Background()

	count := 0
	for q := session.NextQuestion(ctx); q != nil; q = session.NextQuestion(ctx) {
		count++
		if count > 20 {
			t.Fatal("session did not terminate")
		}
	}
	if count != 15 {
		t.Errorf("expected 15 questions including wraparound repeats, got %d", count)
	}
}

func TestAIQuestionsRespectQuotaAndWindow(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"question": "How many glasses of water do you drink daily?", "type": "number"}`,
	}}
	session := NewAssessmentSession(DefaultEngineConfig(), gen)
	ctx := context.Background()

	var aiIndices []int
	aiCount := 0
	for i := 0; i < 12; i++ {
		q := session.NextQuestion(ctx)
		if q == nil {
			t.Fatalf("question %d: expected non-nil question", i)
		}
		if q.IsAiGenerated {
			aiCount++
			aiIndices = append(aiIndices, i)
		}
		session.SaveAnswer(q, 3)
	}

	if aiCount != 2 {
		t.Fatalf("expected 2 AI questions, got %d", aiCount)
	}
	if !reflect.DeepEqual(aiIndices, []int{8, 9}) {
		t.Errorf("AI questions generated outside the eligible window: %v", aiIndices)
	}
	if gen.calls != 2 {
		t.Errorf("expected 2 generator calls, got %d", gen.calls)
	}
}

func TestAIFailureFallsBackToTemplateWithoutConsumingQuota(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"I would rather not answer in JSON."}}
	session := NewAssessmentSession(DefaultEngineConfig(), gen)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		q := session.NextQuestion(ctx)
		if q == nil {
			t.Fatalf("question %d: expected non-nil question despite AI failure", i)
		}
		if q.IsAiGenerated {
			t.Errorf("question %d flagged AI-generated after parse failure", i)
		}
	}

	if session.aiQuestionsUsed != 0 {
		t.Errorf("failed generations consumed quota: %d", session.aiQuestionsUsed)
	}
	// The quota was never consumed, so both window slots retried.
	if gen.calls != 2 {
		t.Errorf("expected 2 generation attempts, got %d", gen.calls)
	}
}

func TestAINetworkErrorFallsBackToTemplate(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	session := NewAssessmentSession(DefaultEngineConfig(), gen)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if q := session.NextQuestion(ctx); q == nil || q.IsAiGenerated {
			t.Fatalf("question %d: expected template question on network error", i)
		}
	}
}

func TestProgress(t *testing.T) {
	session := NewAssessmentSession(DefaultEngineConfig(), nil)
	ctx := context.Background()

	if got := session.Progress(); got != 0 {
		t.Errorf("fresh session progress = %d, want 0", got)
	}

	for i := 0; i < 3; i++ {
		q := session.NextQuestion(ctx)
		session.SaveAnswer(q, "value")
	}
	if got := session.Progress(); got != 25 {
		t.Errorf("progress after 3 of 12 = %d, want 25", got)
	}
}

func TestReset(t *testing.T) {
	session := NewAssessmentSession(DefaultEngineConfig(), nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		q := session.NextQuestion(ctx)
		session.SaveAnswer(q, i)
	}
	session.Reset()

	if got := session.Progress(); got != 0 {
		t.Errorf("progress after reset = %d, want 0", got)
	}
	if len(session.Answers()) != 0 {
		t.Errorf("answers survived reset: %v", session.Answers())
	}

	// A full flow is possible again.
	count := 0
	for q := session.NextQuestion(ctx); q != nil; q = session.NextQuestion(ctx) {
		count++
	}
	if count != 12 {
		t.Errorf("expected 12 questions after reset, got %d", count)
	}
}

func TestNarrativeEnhancementDoesNotAffectScoring(t *testing.T) {
	answerSet := []struct {
		id    string
		value interface{}
	}{
		{"smoking", "Yes"},
		{"bmi", 36.0},
		{"blood_pressure", "Yes, uncontrolled"},
	}

	failing := NewAssessmentSession(DefaultEngineConfig(), &fakeGenerator{err: errors.New("boom")})
	succeeding := NewAssessmentSession(DefaultEngineConfig(), &fakeGenerator{responses: []string{"A custom clinical narrative."}})
	for _, a := range answerSet {
		q := &models.Question{ID: a.id, Text: a.id}
		failing.SaveAnswer(q, a.value)
		succeeding.SaveAnswer(q, a.value)
	}

	ctx := context.Background()
	failed := failing.GenerateRiskAssessment(ctx)
	enhanced := succeeding.GenerateRiskAssessment(ctx)

	if failed.Score != enhanced.Score || failed.RiskLevel != enhanced.RiskLevel {
		t.Errorf("AI pass changed score/level: %d/%s vs %d/%s",
			failed.Score, failed.RiskLevel, enhanced.Score, enhanced.RiskLevel)
	}
	if !reflect.DeepEqual(failed.KeyFindings, enhanced.KeyFindings) {
		t.Errorf("AI pass changed key findings")
	}
	if !reflect.DeepEqual(failed.Recommendations, enhanced.Recommendations) {
		t.Errorf("AI pass changed recommendations")
	}
	if !reflect.DeepEqual(failed.UrgentActions, enhanced.UrgentActions) {
		t.Errorf("AI pass changed urgent actions")
	}

	if enhanced.DetailedAnalysis != "A custom clinical narrative." {
		t.Errorf("enhanced analysis = %q", enhanced.DetailedAnalysis)
	}
	if failed.DetailedAnalysis == enhanced.DetailedAnalysis {
		t.Error("failed enhancement should keep the templated analysis")
	}
}
