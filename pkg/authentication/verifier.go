// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/oauth1"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/internal/types"
)

// LaunchVerifier validates LTI launch requests. Every failure mode
// collapses into ErrPermissionDenied; the discriminating detail goes to the
// security log only.
type LaunchVerifier struct {
	secrets SecretResolverInterface
	cohorts CohortFinderInterface

	// maxTimestampAge is the staleness threshold for oauth_timestamp.
	// Stale launches are logged; they are only rejected when rejectStale
	// is set.
	maxTimestampAge time.Duration
	rejectStale     bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewLaunchVerifier(
	secrets SecretResolverInterface,
	cohorts CohortFinderInterface,
	maxTimestampAge time.Duration,
	rejectStale bool,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *LaunchVerifier {
	return &LaunchVerifier{
		secrets:         secrets,
		cohorts:         cohorts,
		maxTimestampAge: maxTimestampAge,
		rejectStale:     rejectStale,
		tracer:          tracer,
		monitor:         monitor,
		logger:          logger,
	}
}

// Verify checks the request's OAuth 1.0a HMAC-SHA1 signature against the
// secret resolved for its oauth_consumer_key and, on success, returns the
// launch claims. Nonce replay is not checked; the timestamp policy is the
// only freshness control.
func (v *LaunchVerifier) Verify(ctx context.Context, r *http.Request) (*types.LaunchClaims, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.LaunchVerifier.Verify")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		v.logger.Security().AuthFailure("", "malformed form body")
		return nil, ErrPermissionDenied
	}

	key := r.PostFormValue("oauth_consumer_key")
	if key == "" {
		v.logger.Security().AuthFailure("", "missing oauth_consumer_key")
		return nil, ErrPermissionDenied
	}

	secret, ok, err := v.secrets.LookupSecret(ctx, key)
	if err != nil {
		v.logger.Errorf("secret lookup failed for consumer key %s: %v", key, err)
		v.logger.Security().AuthFailure(key, "secret lookup failed")
		return nil, ErrPermissionDenied
	}
	if !ok || secret == "" {
		v.logger.Security().AuthFailure(key, "unknown consumer key")
		return nil, ErrPermissionDenied
	}

	if err := oauth1.Verify(r.Method, requestURL(r), r.PostForm, secret); err != nil {
		v.logger.Security().AuthFailure(key, err.Error())
		return nil, ErrPermissionDenied
	}

	timestamp := r.PostFormValue("oauth_timestamp")
	v.checkTimestampAge(key, timestamp)
	if v.rejectStale && v.isStale(timestamp) {
		return nil, ErrPermissionDenied
	}

	cohort, err := v.cohorts.FindByKey(ctx, key)
	if err != nil {
		v.logger.Errorf("cohort lookup failed for consumer key %s: %v", key, err)
		v.logger.Security().AuthFailure(key, "cohort lookup failed")
		return nil, ErrPermissionDenied
	}

	claims := &types.LaunchClaims{
		PersonID:   r.PostFormValue("lis_person_sourcedid"),
		Email:      r.PostFormValue("lis_person_contact_email_primary"),
		GivenName:  r.PostFormValue("lis_person_name_given"),
		FamilyName: r.PostFormValue("lis_person_name_family"),
		Roles:      splitRoles(r.PostFormValue("roles")),
		Cohort:     cohort,
	}

	return claims, nil
}

func (v *LaunchVerifier) checkTimestampAge(key, timestamp string) {
	age, ok := v.timestampAge(timestamp)
	if !ok {
		return
	}
	if age > int64(v.maxTimestampAge.Seconds()) {
		v.logger.Security().StaleTimestamp(key, age)
	}
}

func (v *LaunchVerifier) isStale(timestamp string) bool {
	age, ok := v.timestampAge(timestamp)
	return ok && age > int64(v.maxTimestampAge.Seconds())
}

func (v *LaunchVerifier) timestampAge(timestamp string) (int64, bool) {
	if timestamp == "" {
		return 0, false
	}
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return 0, false
	}
	return time.Now().Unix() - ts, true
}

// requestURL reconstructs the absolute URL the producer signed. Proxies
// rewrite the scheme, so X-Forwarded-Proto takes precedence over the
// connection's own.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func splitRoles(roles string) []string {
	if roles == "" {
		return nil
	}
	var out []string
	for _, role := range strings.Split(roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			out = append(out, role)
		}
	}
	return out
}
