package main

import (
	"time"

	"github.com/woodhall335/landlord-heaven/compliance"
	"github.com/woodhall335/landlord-heaven/facts"
	"github.com/woodhall335/landlord-heaven/wizard"
)

// API Request and Response Models with Swagger annotations

// CreateSessionRequest represents the request body for starting a wizard session
type CreateSessionRequest struct {
	CaseType string `json:"caseType" example:"section8" binding:"required"`
} // @name CreateSessionRequest

// AnswerRequest represents the request body for answering a wizard question
type AnswerRequest struct {
	QuestionID string `json:"questionId" example:"tenant_details" binding:"required"`
	Value      any    `json:"value"`
} // @name AnswerRequest

// SessionResponse represents a wizard session in API responses
type SessionResponse struct {
	ID        string       `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	CaseType  string       `json:"caseType" example:"section8"`
	Facts     facts.Record `json:"facts"`
	CreatedAt time.Time    `json:"created_at" example:"2026-01-15T10:30:00Z"`
	UpdatedAt time.Time    `json:"updated_at" example:"2026-01-15T10:30:00Z"`
} // @name SessionResponse

// QuestionResponse represents a wizard question in API responses
type QuestionResponse struct {
	ID      string   `json:"id" example:"tenant_full_name"`
	Text    string   `json:"text" example:"What is the tenant's full name?"`
	Type    string   `json:"type" example:"text"`
	Options []string `json:"options,omitempty"`
	MapsTo  []string `json:"mapsTo,omitempty" example:"tenant_full_name"`
} // @name QuestionResponse

// QuestionsResponse represents the question list for one case type
type QuestionsResponse struct {
	CaseType  string             `json:"caseType" example:"section8"`
	Questions []QuestionResponse `json:"questions"`
} // @name QuestionsResponse

// CreateRuleRequest represents the request body for creating a compliance rule
type CreateRuleRequest struct {
	Name       string `json:"name" example:"Deposit protected" binding:"required"`
	Expression string `json:"expression" example:"facts[\"deposit_protected\"] == true" binding:"required"`
	Severity   string `json:"severity" example:"error"`
	Message    string `json:"message" example:"The deposit must be protected before serving notice"`
	Active     bool   `json:"active" example:"true"`
} // @name CreateRuleRequest

// UpdateRuleRequest represents the request body for updating a compliance rule
type UpdateRuleRequest struct {
	Name       string `json:"name" example:"Deposit protected"`
	Expression string `json:"expression" example:"facts[\"deposit_protected\"] == true"`
	Severity   string `json:"severity" example:"error"`
	Message    string `json:"message" example:"The deposit must be protected before serving notice"`
	Active     bool   `json:"active" example:"true"`
} // @name UpdateRuleRequest

// RuleResponse represents a compliance rule in API responses
type RuleResponse struct {
	ID         string    `json:"id" example:"rule-123e4567-e89b-12d3-a456-426614174000"`
	Name       string    `json:"name" example:"Deposit protected"`
	Expression string    `json:"expression" example:"facts[\"deposit_protected\"] == true"`
	Severity   string    `json:"severity" example:"error"`
	Message    string    `json:"message" example:"The deposit must be protected before serving notice"`
	Active     bool      `json:"active" example:"true"`
	CreatedAt  time.Time `json:"created_at" example:"2026-01-15T10:30:00Z"`
	UpdatedAt  time.Time `json:"updated_at" example:"2026-01-15T10:30:00Z"`
} // @name RuleResponse

// RulesListResponse represents the response for listing compliance rules
type RulesListResponse struct {
	DocumentType string         `json:"documentType" example:"section8"`
	Rules        []RuleResponse `json:"rules"`
} // @name RulesListResponse

// CheckResponse represents a single compliance check result
type CheckResponse struct {
	RuleID   string `json:"ruleId" example:"rule-123"`
	RuleName string `json:"ruleName" example:"Deposit protected"`
	Severity string `json:"severity" example:"error"`
	Message  string `json:"message,omitempty"`
	Passed   bool   `json:"passed" example:"true"`
	Error    string `json:"error,omitempty"`
} // @name CheckResponse

// ValidateResponse represents the response for session validation
type ValidateResponse struct {
	SessionID      string          `json:"sessionId" example:"123e4567-e89b-12d3-a456-426614174000"`
	Results        []CheckResponse `json:"results"`
	EvaluationTime string          `json:"evaluationTime" example:"2.3ms"`
} // @name ValidateResponse

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"session not found"`
	Details string `json:"details,omitempty"`
} // @name ErrorResponse

func toSessionResponse(s *wizard.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		CaseType:  s.CaseType,
		Facts:     s.Facts,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toQuestionResponses(questions []wizard.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuestionResponse{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Options: q.Options,
			MapsTo:  q.MapsTo,
		})
	}
	return out
}

func toRuleResponse(r *compliance.Rule) RuleResponse {
	return RuleResponse{
		ID:         r.ID,
		Name:       r.Name,
		Expression: r.Expression,
		Severity:   r.Severity,
		Message:    r.Message,
		Active:     r.Active,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toCheckResponses(results []*compliance.CheckResult) []CheckResponse {
	out := make([]CheckResponse, 0, len(results))
	for _, res := range results {
		cr := CheckResponse{
			RuleID:   res.RuleID,
			RuleName: res.RuleName,
			Severity: res.Severity,
			Message:  res.Message,
			Passed:   res.Passed,
		}
		if res.Error != nil {
			cr.Error = res.Error.Error()
		}
		out = append(out, cr)
	}
	return out
}
