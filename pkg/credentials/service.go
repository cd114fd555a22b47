// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package credentials resolves OAuth consumer keys to shared secrets by
// merging statically configured pairs with the cohort registry. Static
// pairs always win, so a key present in both sources signs with the
// configured secret rather than the stored one.
package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/tracing"
)

const snapshotCacheKey = "credentials.snapshot"

type Service struct {
	storage StorageInterface
	static  map[string]string

	maxAge   time.Duration
	snapshot *cache.Cache

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// NewService builds a resolver over the given registry storage and static
// key/secret pairs. A positive maxAge keeps the merged snapshot cached for
// that long; zero disables caching so every lookup sees the registry's
// current rows.
func NewService(
	storage StorageInterface,
	static map[string]string,
	maxAge time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := &Service{
		storage: storage,
		static:  static,
		maxAge:  maxAge,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}

	if maxAge > 0 {
		s.snapshot = cache.New(maxAge, 2*maxAge)
	}

	return s
}

// LookupSecret returns the shared secret for the consumer key, with ok
// reporting whether the key is known to either source.
func (s *Service) LookupSecret(ctx context.Context, consumerKey string) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "credentials.Service.LookupSecret")
	defer span.End()

	merged, err := s.merged(ctx)
	if err != nil {
		return "", false, err
	}

	secret, ok := merged[consumerKey]
	return secret, ok, nil
}

// Snapshot returns a copy of the merged key/secret map. Mutating the
// returned map does not affect the resolver.
func (s *Service) Snapshot(ctx context.Context) (map[string]string, error) {
	ctx, span := s.tracer.Start(ctx, "credentials.Service.Snapshot")
	defer span.End()

	merged, err := s.merged(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(merged))
	for k, v := range merged {
		out[k] = v
	}

	return out, nil
}

func (s *Service) merged(ctx context.Context) (map[string]string, error) {
	if s.snapshot != nil {
		if v, ok := s.snapshot.Get(snapshotCacheKey); ok {
			return v.(map[string]string), nil
		}
	}

	registry, err := s.storage.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registry credentials: %w", err)
	}

	merged := make(map[string]string, len(registry)+len(s.static))
	for k, v := range registry {
		merged[k] = v
	}
	for k, v := range s.static {
		if stored, ok := merged[k]; ok && stored != v {
			s.logger.Debugf("static secret overrides registry secret for consumer key %s", k)
		}
		merged[k] = v
	}

	if s.snapshot != nil {
		s.snapshot.Set(snapshotCacheKey, merged, cache.DefaultExpiration)
	}

	return merged, nil
}
