// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package affirmation

import "context"

// Repository defines the data access contract for affirmations.
type Repository interface {
	// ListDefaultTemplates returns the curated template set.
	ListDefaultTemplates(ctx context.Context) ([]Template, error)

	// FindTemplateByID returns the template with the given ID.
	//
	// Returns [apperr.NotFound] if the template does not exist.
	FindTemplateByID(ctx context.Context, id string) (*Template, error)

	// CreateAffirmation persists a sent affirmation.
	CreateAffirmation(ctx context.Context, affirmation *Affirmation) error

	// ListSentByUser returns every affirmation the user has sent, newest
	// first.
	ListSentByUser(ctx context.Context, userID string) ([]Affirmation, error)
}
