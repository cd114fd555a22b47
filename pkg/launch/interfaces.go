// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package launch

import (
	"context"
	"net/http"

	"github.com/canonical/lti-service/internal/types"
)

// Flow names a redirect flow towards the external producer.
type Flow string

const (
	FlowLogin Flow = "login"
	FlowEnrol Flow = "enrol"
)

// AuthenticatorInterface is the authentication chain the launch endpoint
// hands each incoming post to.
type AuthenticatorInterface interface {
	Authenticate(ctx context.Context, r *http.Request) (*types.User, error)
}

// CohortServiceInterface resolves the cohort governing a request.
type CohortServiceInterface interface {
	ResolveCurrent(ctx context.Context, user *types.User) (*types.Cohort, error)
}

// StateCarrierInterface moves launch state across the external redirect in
// a tamper-evident cookie named after the cohort's OAuth key.
type StateCarrierInterface interface {
	// BeginRedirect persists the request's carry-over parameters in the
	// cohort's state cookie and returns the external URL to send the
	// browser to.
	BeginRedirect(ctx context.Context, w http.ResponseWriter, r *http.Request, cohort *types.Cohort, flow Flow) (string, error)
	// Resume consumes the cohort's state cookie and returns the redirect
	// target plus any other carried parameters. Corrupt or missing state
	// falls back to the custom_next form field, then the default target.
	Resume(ctx context.Context, w http.ResponseWriter, r *http.Request, cohort *types.Cohort) (string, map[string]string)
}

// SessionInterface tracks the launched user between the launch post and
// the profile form round trip.
type SessionInterface interface {
	Issue(w http.ResponseWriter, userID string) error
	Read(r *http.Request) (string, bool)
	Clear(w http.ResponseWriter)
}

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) error
}
