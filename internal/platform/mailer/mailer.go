// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

/*
Package mailer sends transactional email through Resend.

Delivery is best-effort by design: the password-reset flow reports a generic
success to the caller regardless of dispatch outcome, so a mail failure is
logged and surfaced to the service layer but never crashes the process.

In development mode (or with no API key configured) nothing is sent — the
message is logged instead so the reset link stays testable locally.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Mailer dispatches transactional email for the Parity API.
type Mailer struct {
	client    *resend.Client
	fromEmail string
	appURL    string
	logger    *slog.Logger
	isDev     bool
}

// New constructs a [Mailer]. An empty apiKey or dev mode disables real sends.
func New(apiKey, fromEmail, appURL string, isDev bool, logger *slog.Logger) *Mailer {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &Mailer{
		client:    client,
		fromEmail: fromEmail,
		appURL:    appURL,
		logger:    logger,
		isDev:     isDev,
	}
}

// SendPasswordReset emails a password-reset link carrying the given token.
func (mailer *Mailer) SendPasswordReset(ctx context.Context, email, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", mailer.appURL, token)

	if mailer.isDev {
		mailer.logger.InfoContext(ctx, "email_sent_dev_mode",
			slog.String("type", "password_reset"),
			slog.String("to", email),
			slog.String("url", resetURL),
		)
		return nil
	}

	if mailer.client == nil {
		return fmt.Errorf("mailer: not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    mailer.fromEmail,
		To:      []string{email},
		Subject: "Reset your Parity password",
		Text: fmt.Sprintf(
			"We received a request to reset your Parity password.\n\n"+
				"Open the link below to choose a new one. It expires in 1 hour.\n\n%s\n\n"+
				"If you did not request this, you can safely ignore this email.",
			resetURL,
		),
	}

	if _, err := mailer.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("mailer: password reset send failed: %w", err)
	}

	mailer.logger.InfoContext(ctx, "email_sent",
		slog.String("type", "password_reset"),
		slog.String("to", email),
	)
	return nil
}
