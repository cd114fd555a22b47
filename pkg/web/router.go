// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/secretbox"
	"github.com/canonical/lti-service/internal/storage"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/internal/validation"
	"github.com/canonical/lti-service/pkg/admin"
	"github.com/canonical/lti-service/pkg/authentication"
	"github.com/canonical/lti-service/pkg/cohort"
	"github.com/canonical/lti-service/pkg/credentials"
	"github.com/canonical/lti-service/pkg/launch"
	"github.com/canonical/lti-service/pkg/metrics"
	"github.com/canonical/lti-service/pkg/status"
)

// Config carries the launch-pipeline settings the router wires into its
// services.
type Config struct {
	StaticCohort          *cohort.StaticConfig
	StaticCredentials     map[string]string
	CredentialCacheMaxAge time.Duration

	UnknownUserPrefix string
	StaffGroup        string

	TimestampMaxAge       time.Duration
	RejectStaleTimestamps bool

	StateBox               *secretbox.SecretBox
	ScriptPrefix           string
	DefaultRedirectTarget  string
	SecureCookies          bool
	StateCookieMaxLifetime time.Duration

	AdminTokenVerifier authentication.TokenVerifierInterface
}

func NewRouter(
	cfg Config,
	s storage.StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
		cohort.Middleware,
	)

	router.Use(middlewares...)

	validate := validation.NewValidator()

	cohorts := cohort.NewService(s, cfg.StaticCohort, tracer, monitor, logger)
	secrets := credentials.NewService(s, cfg.StaticCredentials, cfg.CredentialCacheMaxAge, tracer, monitor, logger)

	verifier := authentication.NewLaunchVerifier(secrets, cohorts, cfg.TimestampMaxAge, cfg.RejectStaleTimestamps, tracer, monitor, logger)
	reconciler := authentication.NewReconciler(s, cfg.UnknownUserPrefix, cfg.StaffGroup, tracer, monitor, logger)
	chain := authentication.NewChain(
		authentication.NewLTIAuthenticator(verifier, reconciler, tracer, monitor, logger),
	)

	carrier := launch.NewStateCarrier(
		cfg.StateBox,
		cfg.DefaultRedirectTarget,
		cfg.ScriptPrefix,
		cfg.SecureCookies,
		cfg.StateCookieMaxLifetime,
		tracer, monitor, logger,
	)
	sessions := launch.NewSession(cfg.StateBox, cfg.SecureCookies, cfg.StateCookieMaxLifetime)

	launch.NewAPI(chain, cohorts, s, carrier, sessions, validate, tracer, monitor, logger).RegisterEndpoints(router)
	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	adminAuth := authentication.NewMiddleware(cfg.AdminTokenVerifier, tracer, monitor, logger)
	router.Group(func(r chi.Router) {
		r.Use(adminAuth.Authenticate())
		admin.NewAPI(cohorts, validate, tracer, monitor, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
