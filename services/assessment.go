package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"vitascreen/config"
	"vitascreen/models"
)

// EngineConfig bounds one assessment flow.
type EngineConfig struct {
	MaxQuestions   int
	MaxAIQuestions int
	// AI generation is only attempted while the question index falls inside
	// [AIWindowStart, AIWindowEnd].
	AIWindowStart int
	AIWindowEnd   int
}

// DefaultEngineConfig returns the standard 12-question flow with up to two AI
// follow-ups in the back third of the interview.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxQuestions:   12,
		MaxAIQuestions: 2,
		AIWindowStart:  8,
		AIWindowEnd:    9,
	}
}

// EngineConfigFromApp maps the yaml assessment section onto an EngineConfig.
// LoadConfig has already applied defaults, so the AI pointers are set.
func EngineConfigFromApp(cfg *config.Config) EngineConfig {
	return EngineConfig{
		MaxQuestions:   cfg.Assessment.MaxQuestions,
		MaxAIQuestions: *cfg.Assessment.MaxAiQuestions,
		AIWindowStart:  *cfg.Assessment.AiWindowStart,
		AIWindowEnd:    *cfg.Assessment.AiWindowEnd,
	}
}

// AssessmentSession is one user's screening flow. Sessions are constructed
// per flow and passed by handle; they hold no external resources and are
// discarded when the flow completes or expires.
type AssessmentSession struct {
	mu        sync.Mutex
	cfg       EngineConfig
	generator TextGenerator
	rng       *rand.Rand

	answers          []models.Answer
	askedQuestionIDs map[string]bool
	questionsAsked   int
	aiQuestionsUsed  int
}

// NewAssessmentSession creates an empty session. A nil generator disables AI
// question generation and narrative enhancement; the flow then runs purely on
// templates with no other behavioral difference.
func NewAssessmentSession(cfg EngineConfig, generator TextGenerator) *AssessmentSession {
	return &AssessmentSession{
		cfg:              cfg,
		generator:        generator,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
		askedQuestionIDs: make(map[string]bool),
	}
}

// NextQuestion selects and returns the next question, or nil once the flow
// has asked its full quota. Nil is the sole termination signal and the
// terminal state is idempotent.
//
// An AI follow-up is attempted only inside the eligible window while quota
// remains; any AI failure silently falls back to a template for that turn and
// does not consume quota.
func (s *AssessmentSession) NextQuestion(ctx context.Context) *models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.questionsAsked >= s.cfg.MaxQuestions {
		return nil
	}

	var question *models.Question
	if s.aiEligible() {
		q, err := s.generateAIQuestion(ctx)
		if err != nil {
			log.Printf("AI question generation failed, falling back to template: %v", err)
		} else {
			question = q
			s.aiQuestionsUsed++
		}
	}
	if question == nil {
		question = s.nextTemplateQuestion()
	}

	s.askedQuestionIDs[question.ID] = true
	s.questionsAsked++
	return question
}

func (s *AssessmentSession) aiEligible() bool {
	return s.generator != nil &&
		s.aiQuestionsUsed < s.cfg.MaxAIQuestions &&
		s.questionsAsked >= s.cfg.AIWindowStart &&
		s.questionsAsked <= s.cfg.AIWindowEnd
}

// nextTemplateQuestion picks the first template not yet asked. When the pool
// is exhausted it wraps around by index modulo pool size, accepting a repeat
// (with the same id, so last-write-wins applies) rather than failing.
func (s *AssessmentSession) nextTemplateQuestion() *models.Question {
	for _, t := range questionTemplates {
		if !s.askedQuestionIDs[t.id] {
			return buildTemplateQuestion(t, s.rng)
		}
	}
	t := questionTemplates[s.questionsAsked%len(questionTemplates)]
	return buildTemplateQuestion(t, s.rng)
}

func (s *AssessmentSession) generateAIQuestion(ctx context.Context) (*models.Question, error) {
	askedIDs := make([]string, 0, len(s.askedQuestionIDs))
	for _, t := range questionTemplates {
		if s.askedQuestionIDs[t.id] {
			askedIDs = append(askedIDs, t.id)
		}
	}

	prompt := buildQuestionPrompt(s.answers, askedIDs)
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	q, err := ParseGeneratedQuestion(text)
	if err != nil {
		return nil, err
	}
	q.ID = fmt.Sprintf("ai_%d", s.aiQuestionsUsed+1)
	q.IsAiGenerated = true
	return q, nil
}

// SaveAnswer appends one response to the transcript. The engine performs no
// validation of value against the question's kind or range; the caller is
// trusted, and the scorer reads the most recent entry per question id.
func (s *AssessmentSession) SaveAnswer(question *models.Question, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers = append(s.answers, models.Answer{
		QuestionID:   question.ID,
		Value:        value,
		QuestionText: question.Text,
	})
}

// Progress returns the flow completion percentage, integer-rounded.
func (s *AssessmentSession) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.MaxQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(s.questionsAsked) / float64(s.cfg.MaxQuestions) * 100))
}

// Answers returns a copy of the transcript in insertion order.
func (s *AssessmentSession) Answers() []models.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Answer(nil), s.answers...)
}

// Reset clears all accumulated state back to the initial empty session.
func (s *AssessmentSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers = nil
	s.askedQuestionIDs = make(map[string]bool)
	s.questionsAsked = 0
	s.aiQuestionsUsed = 0
}

// GenerateRiskAssessment computes the deterministic assessment and, when a
// generator is configured, attempts a single narrative enhancement. The AI
// pass may replace only DetailedAnalysis; score, tier, findings,
// recommendations, and urgent actions are never altered by it. Any failure
// is logged and the deterministic result returned unchanged.
func (s *AssessmentSession) GenerateRiskAssessment(ctx context.Context) models.RiskAssessment {
	s.mu.Lock()
	answers := append([]models.Answer(nil), s.answers...)
	s.mu.Unlock()

	result := computeLocalAssessment(answers)

	if s.generator != nil {
		narrative, err := s.generateNarrative(ctx, answers, result)
		if err != nil {
			log.Printf("AI narrative enhancement failed, keeping templated analysis: %v", err)
		} else {
			result.DetailedAnalysis = narrative
		}
	}
	return result
}

func (s *AssessmentSession) generateNarrative(ctx context.Context, answers []models.Answer, result models.RiskAssessment) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are a clinical health advisor writing up a non-communicable disease risk screening. ")
	sb.WriteString(fmt.Sprintf("The user's computed risk score is %d/100 (%s risk). Do not change or dispute this score.\n\n", result.Score, result.RiskLevel))

	sb.WriteString("Screening transcript:\n")
	for _, a := range answers {
		sb.WriteString(fmt.Sprintf("- %s: %v\n", a.QuestionText, a.Value))
	}

	sb.WriteString("\nWrite a detailed analysis in exactly four paragraphs: (1) overall risk picture, ")
	sb.WriteString("(2) the specific factors driving the score, (3) concrete lifestyle guidance, ")
	sb.WriteString("(4) when and why to involve a medical professional. ")
	sb.WriteString("Plain prose, no headings or lists, 250 words maximum.")

	text, err := s.generator.GenerateText(ctx, sb.String())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty narrative response")
	}
	return text, nil
}
