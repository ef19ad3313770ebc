package dto

import "time"

// UpgradeMembershipRequest entrada para cambiar de plan.
type UpgradeMembershipRequest struct {
	Type   string `json:"type" validate:"required,oneof=FREE PRO ENTERPRISE"`
	Months int    `json:"months" validate:"omitempty,min=1,max=24"`
}

// PlanResponse plan de membresía. EvaluationLimit -1 significa ilimitado.
type PlanResponse struct {
	Type            string `json:"type"`
	EvaluationLimit int    `json:"evaluationLimit"`
	Description     string `json:"description"`
}

// MembershipStatusResponse estado de la membresía del usuario.
type MembershipStatusResponse struct {
	MembershipType      string         `json:"membershipType"`
	EffectiveType       string         `json:"effectiveType"`
	MembershipExpiresAt *time.Time     `json:"membershipExpiresAt,omitempty"`
	Expired             bool           `json:"expired"`
	Plans               []PlanResponse `json:"plans"`
}

// MembershipCheckResponse cupo de evaluaciones para una tupla.
type MembershipCheckResponse struct {
	CanEvaluate bool   `json:"canEvaluate"`
	Used        int    `json:"used"`
	Limit       int    `json:"limit"`
	Remaining   int    `json:"remaining"`
	Technology  string `json:"technology"`
}
