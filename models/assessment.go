package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionKind enumerates the input widget a question expects.
type QuestionKind string

const (
	KindNumber         QuestionKind = "number"
	KindYesNo          QuestionKind = "yesno"
	KindSlider         QuestionKind = "slider"
	KindMultipleChoice QuestionKind = "multiple_choice"
	KindFreeText       QuestionKind = "text"
)

// SliderRange bounds a slider question.
type SliderRange struct {
	Min  float64 `json:"min" bson:"min"`
	Max  float64 `json:"max" bson:"max"`
	Unit string  `json:"unit,omitempty" bson:"unit,omitempty"`
}

// Question is a single prompt shown to the user. Questions are built by the
// assessment engine and are immutable once returned.
type Question struct {
	ID            string       `json:"id" bson:"id"`
	Text          string       `json:"text" bson:"text"`
	Kind          QuestionKind `json:"kind" bson:"kind"`
	Options       []string     `json:"options,omitempty" bson:"options,omitempty"`
	Range         *SliderRange `json:"range,omitempty" bson:"range,omitempty"`
	IsAiGenerated bool         `json:"isAiGenerated" bson:"isAiGenerated"`
}

// Answer is one user response bound to a question by id. Value is a string,
// number or boolean depending on the question kind; QuestionText is kept
// denormalized for later prompt construction.
type Answer struct {
	QuestionID   string      `json:"questionId" bson:"questionId"`
	Value        interface{} `json:"value" bson:"value"`
	QuestionText string      `json:"questionText" bson:"questionText"`
}

// RiskLevel is the four-tier classification of a computed score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
)

// RiskAssessment is the final output of a completed assessment flow.
type RiskAssessment struct {
	RiskLevel        RiskLevel `json:"riskLevel" bson:"riskLevel"`
	Score            int       `json:"score" bson:"score"`
	Summary          string    `json:"summary" bson:"summary"`
	KeyFindings      []string  `json:"keyFindings" bson:"keyFindings"`
	Recommendations  []string  `json:"recommendations" bson:"recommendations"`
	UrgentActions    []string  `json:"urgentActions,omitempty" bson:"urgentActions,omitempty"`
	DetailedAnalysis string    `json:"detailedAnalysis" bson:"detailedAnalysis"`
}

// AssessmentRecord is the persisted form of a completed assessment.
type AssessmentRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Answers   []Answer           `json:"answers" bson:"answers"`
	Result    RiskAssessment     `json:"result" bson:"result"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
