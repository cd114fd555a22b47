// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"

	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/internal/types"
)

// LTIAuthenticator authenticates signed LTI launch posts. Requests without
// an oauth_consumer_key are not launches and pass through unanswered.
type LTIAuthenticator struct {
	verifier   LaunchVerifierInterface
	reconciler ReconcilerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewLTIAuthenticator(
	verifier LaunchVerifierInterface,
	reconciler ReconcilerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *LTIAuthenticator {
	return &LTIAuthenticator{
		verifier:   verifier,
		reconciler: reconciler,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

func (a *LTIAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*types.User, error) {
	ctx, span := a.tracer.Start(ctx, "authentication.LTIAuthenticator.Authenticate")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		return nil, nil
	}
	if r.PostFormValue("oauth_consumer_key") == "" {
		// Not an LTI launch.
		return nil, nil
	}

	claims, err := a.verifier.Verify(ctx, r)
	if err != nil {
		return nil, err
	}

	user, err := a.reconciler.Reconcile(ctx, claims)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Chain runs authenticators in order until one claims the request, in the
// sense of returning a user or an error. A request no authenticator claims
// stays anonymous.
type Chain struct {
	authenticators []AuthenticatorInterface
}

func NewChain(authenticators ...AuthenticatorInterface) *Chain {
	return &Chain{authenticators: authenticators}
}

func (c *Chain) Authenticate(ctx context.Context, r *http.Request) (*types.User, error) {
	for _, a := range c.authenticators {
		user, err := a.Authenticate(ctx, r)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}
	return nil, nil
}
