// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/lti-service/internal/types"
)

// Define a private custom type to avoid collisions
type contextKey struct{}

var userContextKey = contextKey{}

// WithUser returns a new context carrying the authenticated user.
func WithUser(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUser retrieves the authenticated user from the context.
// Returns nil and false if no user is present.
func GetUser(ctx context.Context) (*types.User, bool) {
	u, ok := ctx.Value(userContextKey).(*types.User)
	return u, ok
}

type subjectContextKey struct{}

var subjectKey = subjectContextKey{}

// WithSubject returns a new context carrying the admin API caller's JWT
// subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// GetSubject retrieves the admin API caller's subject from the context.
func GetSubject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}
