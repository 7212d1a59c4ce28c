package structs

import "vitascreen/models"

type StartAssessmentResponse struct {
	SessionId string           `json:"sessionId"`
	Question  *models.Question `json:"question"`
	Progress  int              `json:"progress"`
}

type NextQuestionResponse struct {
	Question *models.Question `json:"question"` // null once the flow is complete
	Done     bool             `json:"done"`
	Progress int              `json:"progress"`
}

// Value carries whatever the question kind demands (string, number, or
// boolean); no required tag, since false is a legitimate yes/no answer.
type SaveAnswerRequest struct {
	Question models.Question `json:"question" binding:"required"`
	Value    interface{}     `json:"value"`
}

type CompleteAssessmentResponse struct {
	AssessmentId string                `json:"assessmentId,omitempty"`
	Result       models.RiskAssessment `json:"result"`
}

type ContactFormRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type DemoRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Organization string `json:"organization" binding:"required"`
	Message      string `json:"message"`
}
