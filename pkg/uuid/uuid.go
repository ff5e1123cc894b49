// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

// Package uuid wraps google/uuid to generate time-ordered UUIDv7 values.
//
// UUIDv7 is the primary key type across all Parity tables. Because it is
// time-sortable it keeps PostgreSQL b-tree indexes append-friendly, avoiding
// the fragmentation random UUIDv4 keys cause.
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable, which is an
// unrecoverable system-level condition.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUID: " + err.Error())
	}

	return id.String()
}
