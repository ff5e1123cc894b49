// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package affirmation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parityhq/parity-api/internal/affirmation"
	"github.com/parityhq/parity-api/internal/platform/apperr"
)

// ── In-Memory Fake ───────────────────────────────────────────────────────────

type fakeRepository struct {
	templates map[string]*affirmation.Template
	sent      []affirmation.Affirmation
}

func newFakeRepository(templates ...*affirmation.Template) *fakeRepository {
	repository := &fakeRepository{templates: make(map[string]*affirmation.Template)}
	for _, template := range templates {
		copied := *template
		repository.templates[template.ID] = &copied
	}
	return repository
}

func (f *fakeRepository) ListDefaultTemplates(_ context.Context) ([]affirmation.Template, error) {
	var defaults []affirmation.Template
	for _, template := range f.templates {
		if template.IsDefault {
			defaults = append(defaults, *template)
		}
	}
	return defaults, nil
}

func (f *fakeRepository) FindTemplateByID(_ context.Context, id string) (*affirmation.Template, error) {
	if template, ok := f.templates[id]; ok {
		copied := *template
		return &copied, nil
	}
	return nil, apperr.NotFound("Affirmation template")
}

func (f *fakeRepository) CreateAffirmation(_ context.Context, sent *affirmation.Affirmation) error {
	copied := *sent
	copied.CreatedAt = time.Now().UTC()
	f.sent = append(f.sent, copied)
	return nil
}

func (f *fakeRepository) ListSentByUser(_ context.Context, userID string) ([]affirmation.Affirmation, error) {
	// Newest first, matching the query ordering.
	var rows []affirmation.Affirmation
	for index := len(f.sent) - 1; index >= 0; index-- {
		if f.sent[index].UserID == userID {
			rows = append(rows, f.sent[index])
		}
	}
	return rows, nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

/*
TestService_ListTemplates verifies only curated defaults are returned.
*/
func TestService_ListTemplates(t *testing.T) {
	service := affirmation.NewService(newFakeRepository(
		&affirmation.Template{ID: "template-1", Title: "Daily Gratitude", IsDefault: true},
		&affirmation.Template{ID: "template-2", Title: "Private Draft", IsDefault: false},
	))

	templates, err := service.ListTemplates(context.Background())
	require.NoError(t, err)

	require.Len(t, templates, 1)
	assert.Equal(t, "Daily Gratitude", templates[0].Title)
}

/*
TestService_Send covers template-backed sends, free-form sends, and the
unknown-template refusal.
*/
func TestService_Send(t *testing.T) {
	repository := newFakeRepository(
		&affirmation.Template{ID: "template-1", Title: "Daily Gratitude", IsDefault: true},
	)
	service := affirmation.NewService(repository)

	t.Run("template_backed_send", func(t *testing.T) {
		templateID := "template-1"
		sent, err := service.Send(context.Background(), "user-1", affirmation.SendInput{
			Content:       "I'm grateful for your patience with me today.",
			TemplateID:    &templateID,
			SentVia:       "in-app",
			RecipientInfo: json.RawMessage("{}"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, sent.ID)
		require.NotNil(t, sent.TemplateID)
		assert.Equal(t, "template-1", *sent.TemplateID)
		assert.Equal(t, "in-app", sent.SentVia)
	})

	t.Run("free_form_send_skips_template_check", func(t *testing.T) {
		sent, err := service.Send(context.Background(), "user-1", affirmation.SendInput{
			Content:       "You make even hard days lighter.",
			SentVia:       "sms",
			RecipientInfo: json.RawMessage(`{"phone":"+15550100"}`),
		})
		require.NoError(t, err)
		assert.Nil(t, sent.TemplateID)
		assert.JSONEq(t, `{"phone":"+15550100"}`, string(sent.RecipientInfo))
	})

	t.Run("unknown_template_not_found", func(t *testing.T) {
		templateID := "no-such-template"
		_, err := service.Send(context.Background(), "user-1", affirmation.SendInput{
			Content:    "hello",
			TemplateID: &templateID,
			SentVia:    "in-app",
		})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)

		// The refused send left no history behind.
		assert.Len(t, repository.sent, 2)
	})
}

/*
TestService_ListSent verifies per-user isolation and newest-first ordering.
*/
func TestService_ListSent(t *testing.T) {
	repository := newFakeRepository()
	service := affirmation.NewService(repository)

	_, err := service.Send(context.Background(), "user-1", affirmation.SendInput{Content: "first", SentVia: "in-app"})
	require.NoError(t, err)
	_, err = service.Send(context.Background(), "user-1", affirmation.SendInput{Content: "second", SentVia: "email"})
	require.NoError(t, err)
	_, err = service.Send(context.Background(), "user-2", affirmation.SendInput{Content: "other", SentVia: "in-app"})
	require.NoError(t, err)

	sent, err := service.ListSent(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, sent, 2)
	assert.Equal(t, "second", sent[0].Content)
	assert.Equal(t, "first", sent[1].Content)
}
