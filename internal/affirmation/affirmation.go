// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

// Package affirmation implements sending positive affirmations: curated
// templates, the send operation, and the caller's sent history.
package affirmation

import (
	"encoding/json"
	"time"
)

// SentVia values accepted for an affirmation dispatch channel.
var SentViaValues = []string{"in-app", "sms", "email", "social"}

// Template is a pre-written affirmation users can send as-is or personalize.
type Template struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// Affirmation records one sent affirmation.
//
// TemplateID is nil for free-form affirmations. RecipientInfo is an opaque
// client document (channel addressing, display name) stored as JSON; the
// server validates only the channel in SentVia.
type Affirmation struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Content       string          `json:"content"`
	TemplateID    *string         `json:"template_id"`
	SentVia       string          `json:"sent_via"`
	RecipientInfo json.RawMessage `json:"recipient_info"`
	CreatedAt     time.Time       `json:"created_at"`
}
