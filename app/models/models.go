// Package models defines the documents persisted in the four store collections.
package models

import "time"

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

type Category string

const (
	CategoryBusiness Category = "business"
	CategoryContent  Category = "content"
	CategoryGeneral  Category = "general"
)

// Account maps an opaque client id to a plan and optional Stripe identifiers.
// client_id is the lookup key and never changes after creation.
type Account struct {
	ClientID             string    `bson:"client_id" json:"client_id"`
	Plan                 Plan      `bson:"plan" json:"plan"`
	Email                string    `bson:"email,omitempty" json:"email,omitempty"`
	StripeCustomerID     string    `bson:"stripe_customer_id,omitempty" json:"-"`
	StripeSubscriptionID string    `bson:"stripe_subscription_id,omitempty" json:"-"`
	SubscriptionStatus   string    `bson:"subscription_status,omitempty" json:"subscription_status,omitempty"`
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updated_at"`
}

// Session tracks one walkthrough of a category's question bank.
// Step only ever moves forward, one accepted answer at a time.
type Session struct {
	ID        string    `bson:"_id" json:"session_id"`
	Category  Category  `bson:"category" json:"category"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Goal      string    `bson:"goal,omitempty" json:"goal,omitempty"`
	Step      int       `bson:"step" json:"step"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	Plan      Plan      `bson:"plan" json:"plan"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Message is one answer-log entry. The question text is a snapshot of the
// prompt shown at submission time, not a reference into the bank.
type Message struct {
	SessionID string    `bson:"session_id" json:"session_id"`
	Step      int       `bson:"step" json:"step"`
	Question  string    `bson:"question" json:"question"`
	Answer    string    `bson:"answer" json:"answer"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Idea is one generated suggestion. Ideas are appended on every suggestion
// request; only the latest batch is returned to the caller.
type Idea struct {
	ID        string    `bson:"_id" json:"id"`
	SessionID string    `bson:"session_id" json:"session_id"`
	Title     string    `bson:"title" json:"title"`
	Summary   string    `bson:"summary" json:"summary"`
	Steps     []string  `bson:"steps" json:"steps"`
	Tags      []string  `bson:"tags" json:"tags"`
	Category  Category  `bson:"category" json:"category"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
