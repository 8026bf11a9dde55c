package models

// Request payloads bound by the HTTP handlers.

type InitAccountRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Email    string `json:"email"`
}

type UpgradeRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

type CheckoutRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Interval string `json:"interval"` // "month" (default) or "year"
}

type PortalRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

type StartSessionRequest struct {
	ClientID string   `json:"client_id" binding:"required"`
	Category Category `json:"category" binding:"required"`
	Name     string   `json:"name"`
	Goal     string   `json:"goal"`
}

type AnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}
