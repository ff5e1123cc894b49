// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

package auth

import "time"

const (
	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 8

	// ResetTokenLength is the random byte length of a password reset token.
	ResetTokenLength = 32

	// ResetTokenTTL is how long a password reset token stays valid in Redis.
	ResetTokenTTL = 1 * time.Hour
)
