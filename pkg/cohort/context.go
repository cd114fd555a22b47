// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cohort

import (
	"context"
	"net/http"
	"sync"

	"github.com/canonical/lti-service/internal/types"
)

type requestCacheContextKey struct{}

var cacheKey requestCacheContextKey

// requestCache memoizes the resolved cohort for the lifetime of one
// request. It is attached per request by the Middleware and discarded with
// the request context, so no resolution can leak between requests.
type requestCache struct {
	mu       sync.Mutex
	resolved bool
	cohort   *types.Cohort
}

func (c *requestCache) get() (*types.Cohort, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cohort, c.resolved
}

func (c *requestCache) set(cohort *types.Cohort) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cohort = cohort
	c.resolved = true
}

// ContextWithRequestCache attaches a fresh resolution cache to ctx.
func ContextWithRequestCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, cacheKey, &requestCache{})
}

func requestCacheFromContext(ctx context.Context) *requestCache {
	if c, ok := ctx.Value(cacheKey).(*requestCache); ok {
		return c
	}
	return nil
}

// Middleware seeds every request with a cohort resolution cache.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(ContextWithRequestCache(r.Context())))
	})
}
