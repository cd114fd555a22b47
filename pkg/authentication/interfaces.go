// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/lti-service/internal/types"
)

// LaunchVerifierInterface checks an LTI launch request's OAuth 1.0a
// signature and extracts the identity claims it carries.
type LaunchVerifierInterface interface {
	Verify(ctx context.Context, r *http.Request) (*types.LaunchClaims, error)
}

// ReconcilerInterface maps verified launch claims onto a local user row.
type ReconcilerInterface interface {
	Reconcile(ctx context.Context, claims *types.LaunchClaims) (*types.User, error)
}

// AuthenticatorInterface attempts to authenticate a request. A nil user
// with a nil error means the authenticator does not apply to the request
// and the next one in the chain should run.
type AuthenticatorInterface interface {
	Authenticate(ctx context.Context, r *http.Request) (*types.User, error)
}

// SecretResolverInterface maps an OAuth consumer key to its shared secret.
type SecretResolverInterface interface {
	LookupSecret(ctx context.Context, consumerKey string) (string, bool, error)
}

// CohortFinderInterface locates the cohort owning a consumer key, nil when
// the key is only statically configured.
type CohortFinderInterface interface {
	FindByKey(ctx context.Context, key string) (*types.Cohort, error)
}

type StorageInterface interface {
	GetOrCreateUser(ctx context.Context, username string) (*types.User, bool, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) error
	AddUserToGroup(ctx context.Context, userID, group string) error
	RemoveUserFromGroup(ctx context.Context, userID, group string) error
}

type ProviderInterface interface {
	// Verifier returns the token verifier associated with the specified OIDC issuer
	Verifier(*oidc.Config) *oidc.IDTokenVerifier
}

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string and validates authorization claims
	// Returns the subject (user ID) if the token is valid and authorized, otherwise an error
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}
