// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package affirmation

import (
	"context"
	"encoding/json"

	"github.com/parityhq/parity-api/pkg/uuid"
)

// Service implements the affirmation use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repo Repository) *Service {
	return &Service{repository: repo}
}

// ListTemplates returns the curated default templates.
func (service *Service) ListTemplates(context context.Context) ([]Template, error) {
	return service.repository.ListDefaultTemplates(context)
}

// SendInput holds the data for sending an affirmation.
type SendInput struct {
	Content       string
	TemplateID    *string
	SentVia       string
	RecipientInfo json.RawMessage
}

// Send records a sent affirmation for the caller.
//
// # Returns
//   - [apperr.NotFound] if a TemplateID is given and matches no template;
//     nothing is written in that case.
//
// Free-form affirmations (nil TemplateID) skip the template check entirely.
func (service *Service) Send(context context.Context, userID string, input SendInput) (*Affirmation, error) {
	if input.TemplateID != nil {
		if _, err := service.repository.FindTemplateByID(context, *input.TemplateID); err != nil {
			return nil, err
		}
	}

	affirmation := &Affirmation{
		ID:            uuid.New(),
		UserID:        userID,
		Content:       input.Content,
		TemplateID:    input.TemplateID,
		SentVia:       input.SentVia,
		RecipientInfo: input.RecipientInfo,
	}

	if err := service.repository.CreateAffirmation(context, affirmation); err != nil {
		return nil, err
	}

	return affirmation, nil
}

// ListSent returns the caller's sent history, newest first.
func (service *Service) ListSent(context context.Context, userID string) ([]Affirmation, error) {
	return service.repository.ListSentByUser(context, userID)
}
