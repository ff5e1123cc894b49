// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

// Package coaching implements the solo learning modules and per-user progress
// tracking.
package coaching

import (
	"encoding/json"
	"time"
)

// Module is a coaching lesson available to every user.
//
// Content is structured JSON authored by the curriculum team (sections and
// exercises); the API stores and serves it opaquely.
type Module struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Content     json.RawMessage `json:"content"`
	Category    string          `json:"category"`
	Order       int             `json:"order"`
	CreatedAt   time.Time       `json:"created_at"`
}

// UserProgress tracks one user's advancement through one module.
//
// # Rules
//   - At most one row per (user, module); updates go through an upsert.
//   - ProgressPercentage is clamped to 0..100 at the API boundary.
//   - CompletedAt is stamped the first time Completed turns true and never
//     changes afterwards, even if the client later reports the module as
//     incomplete again.
type UserProgress struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	ModuleID           string     `json:"module_id"`
	Completed          bool       `json:"completed"`
	ProgressPercentage int        `json:"progress_percentage"`
	CompletedAt        *time.Time `json:"completed_at"`
	CreatedAt          time.Time  `json:"created_at"`
}
