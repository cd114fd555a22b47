// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cohort

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/storage"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/internal/types"
)

// StaticConfig is the cohort-shaped fallback configuration. When the
// registry holds no default row, a non-persisted cohort is synthesized
// from it.
type StaticConfig struct {
	Title         string
	LoginURL      string
	EnrolURL      string
	PersistParams string
	// Credentials are the statically configured consumer key/secret
	// pairs. The lexicographically first key becomes the synthesized
	// cohort's credential pair.
	Credentials map[string]string
}

func (c *StaticConfig) empty() bool {
	return c == nil || (c.Title == "" && c.LoginURL == "" && len(c.Credentials) == 0)
}

type Service struct {
	storage StorageInterface
	static  *StaticConfig

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	static *StaticConfig,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		static:  static,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// ResolveCurrent resolves the cohort governing the current request:
// the user's assigned cohort first, then the registry default, then a
// cohort synthesized from static configuration, then nil. The result is
// memoized on the request cache attached to ctx by the Middleware, so one
// request hits the registry at most once.
func (s *Service) ResolveCurrent(ctx context.Context, user *types.User) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "cohort.Service.ResolveCurrent")
	defer span.End()

	cache := requestCacheFromContext(ctx)
	if cache != nil {
		if c, ok := cache.get(); ok {
			return c, nil
		}
	}

	c, err := s.resolveCurrent(ctx, user)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		cache.set(c)
	}

	return c, nil
}

func (s *Service) resolveCurrent(ctx context.Context, user *types.User) (*types.Cohort, error) {
	if user != nil && user.CohortID != nil {
		c, err := s.storage.GetCohortByID(ctx, *user.CohortID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
		// A dangling cohort reference falls through to the default.
		s.logger.Warnf("user %s references missing cohort %s", user.ID, *user.CohortID)
	}

	c, err := s.storage.GetDefaultCohort(ctx)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	return s.syntheticCohort(), nil
}

// syntheticCohort builds an ephemeral, non-persisted cohort from static
// configuration, or nil when none is configured.
func (s *Service) syntheticCohort() *types.Cohort {
	if s.static.empty() {
		return nil
	}

	c := &types.Cohort{
		Title:    s.static.Title,
		LoginURL: s.static.LoginURL,
	}
	if s.static.EnrolURL != "" {
		c.EnrolURL = &s.static.EnrolURL
	}
	if s.static.PersistParams != "" {
		c.PersistParams = &s.static.PersistParams
	}

	if len(s.static.Credentials) > 0 {
		keys := make([]string, 0, len(s.static.Credentials))
		for k := range s.static.Credentials {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		c.OAuthKey = keys[0]
		c.OAuthSecret = s.static.Credentials[keys[0]]
	}

	return c
}

// FindByKey returns the cohort owning the OAuth consumer key, or nil when
// no cohort matches.
func (s *Service) FindByKey(ctx context.Context, key string) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "cohort.Service.FindByKey")
	defer span.End()

	return s.storage.FindCohortByKey(ctx, key)
}

// SetDefault makes the given cohort the registry default. The storage layer
// clears the flag from every other row transactionally.
func (s *Service) SetDefault(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "cohort.Service.SetDefault")
	defer span.End()

	return s.storage.SetDefaultCohort(ctx, id)
}

func (s *Service) CreateCohort(ctx context.Context, c *types.Cohort) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "cohort.Service.CreateCohort")
	defer span.End()

	created, err := s.storage.CreateCohort(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create cohort: %w", err)
	}

	return created, nil
}

func (s *Service) UpdateCohort(ctx context.Context, c *types.Cohort, paths []string) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "cohort.Service.UpdateCohort")
	defer span.End()

	if err := s.storage.UpdateCohort(ctx, c, paths); err != nil {
		return nil, fmt.Errorf("failed to update cohort: %w", err)
	}

	updated, err := s.storage.GetCohortByID(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated cohort: %w", err)
	}

	return updated, nil
}

func (s *Service) GetCohort(ctx context.Context, id string) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "cohort.Service.GetCohort")
	defer span.End()

	return s.storage.GetCohortByID(ctx, id)
}

func (s *Service) ListCohorts(ctx context.Context) ([]*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "cohort.Service.ListCohorts")
	defer span.End()

	return s.storage.ListCohorts(ctx)
}
