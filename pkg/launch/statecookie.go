// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package launch

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/secretbox"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/internal/types"
)

// stateVersion guards the cookie payload schema. Payloads with any other
// version are discarded as if absent.
const stateVersion = 1

// nextParam is always carried, whatever the cohort's persist list says.
const nextParam = "next"

type statePayload struct {
	Version  int               `json:"v"`
	Params   map[string]string `json:"params"`
	IssuedAt int64             `json:"iat"`
}

// StateCarrier implements the redirect state cookie. The payload is
// JSON sealed with AES-GCM, so a tampered or foreign cookie opens to
// nothing rather than to attacker-chosen parameters.
type StateCarrier struct {
	box *secretbox.SecretBox

	defaultTarget string
	scriptPrefix  string
	secureCookies bool
	maxLifetime   time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewStateCarrier(
	box *secretbox.SecretBox,
	defaultTarget string,
	scriptPrefix string,
	secureCookies bool,
	maxLifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *StateCarrier {
	return &StateCarrier{
		box:           box,
		defaultTarget: defaultTarget,
		scriptPrefix:  scriptPrefix,
		secureCookies: secureCookies,
		maxLifetime:   maxLifetime,
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}

// BeginRedirect selects the flow's external URL and stores the request's
// carry-over parameters in the cohort's cookie. A seal failure only costs
// the carried state, never the redirect itself.
func (s *StateCarrier) BeginRedirect(ctx context.Context, w http.ResponseWriter, r *http.Request, cohort *types.Cohort, flow Flow) (string, error) {
	ctx, span := s.tracer.Start(ctx, "launch.StateCarrier.BeginRedirect")
	defer span.End()

	target := cohort.LoginURL
	if flow == FlowEnrol && cohort.EnrolURL != nil && *cohort.EnrolURL != "" {
		target = *cohort.EnrolURL
	}

	params := s.carriedParams(r, cohort)
	if len(params) == 0 {
		return target, nil
	}

	payload, err := json.Marshal(statePayload{
		Version:  stateVersion,
		Params:   params,
		IssuedAt: time.Now().Unix(),
	})
	if err != nil {
		s.logger.Errorf("failed to marshal state payload: %v", err)
		return target, nil
	}

	token, err := s.box.Seal(payload)
	if err != nil {
		// Carried state is best effort, the launch still proceeds.
		s.logger.Errorf("failed to seal state cookie for cohort %s: %v", cohort.OAuthKey, err)
		return target, nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cohort.OAuthKey,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.maxLifetime.Seconds()),
		Secure:   s.secureCookies,
		HttpOnly: true,
		SameSite: s.sameSite(),
	})

	return target, nil
}

// Resume consumes the state cookie and computes the post-launch redirect
// target. The cookie is single use: it is expired whether or not it opened
// cleanly.
func (s *StateCarrier) Resume(ctx context.Context, w http.ResponseWriter, r *http.Request, cohort *types.Cohort) (string, map[string]string) {
	ctx, span := s.tracer.Start(ctx, "launch.StateCarrier.Resume")
	defer span.End()

	var params map[string]string

	if cohort != nil {
		if c, err := r.Cookie(cohort.OAuthKey); err == nil {
			params = s.open(cohort, c.Value)
			s.expire(w, cohort.OAuthKey)
		}
	}

	next := params[nextParam]
	if next == "" {
		next = r.PostFormValue("custom_next")
	}

	return s.safeTarget(next), params
}

func (s *StateCarrier) open(cohort *types.Cohort, token string) map[string]string {
	plaintext, err := s.box.Open(token)
	if err != nil {
		s.logger.Warnf("discarding unreadable state cookie for cohort %s: %v", cohort.OAuthKey, err)
		return nil
	}

	var payload statePayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		s.logger.Warnf("discarding malformed state cookie for cohort %s: %v", cohort.OAuthKey, err)
		return nil
	}
	if payload.Version != stateVersion {
		s.logger.Warnf("discarding state cookie with version %d for cohort %s", payload.Version, cohort.OAuthKey)
		return nil
	}
	if s.maxLifetime > 0 && time.Since(time.Unix(payload.IssuedAt, 0)) > s.maxLifetime {
		return nil
	}

	return payload.Params
}

// carriedParams collects the cohort's persist parameters present on the
// request, plus next.
func (s *StateCarrier) carriedParams(r *http.Request, cohort *types.Cohort) map[string]string {
	if err := r.ParseForm(); err != nil {
		return nil
	}

	names := append(cohort.PersistParamNames(), nextParam)
	params := make(map[string]string)
	for _, name := range names {
		if v := r.Form.Get(name); v != "" {
			params[name] = v
		}
	}
	return params
}

// safeTarget admits relative paths only, with the configured script prefix
// stripped first. Anything absolute or protocol-relative falls back to the
// default target.
func (s *StateCarrier) safeTarget(next string) string {
	if next == "" {
		return s.defaultTarget
	}

	if s.scriptPrefix != "" && s.scriptPrefix != "/" && strings.HasPrefix(next, s.scriptPrefix) {
		next = "/" + strings.TrimPrefix(strings.TrimPrefix(next, s.scriptPrefix), "/")
	}

	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return s.defaultTarget
	}

	return next
}

func (s *StateCarrier) expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secureCookies,
		HttpOnly: true,
		SameSite: s.sameSite(),
	})
}

// sameSite returns None for cross-site producer posts when cookies are
// secure; None without Secure is rejected by browsers.
func (s *StateCarrier) sameSite() http.SameSite {
	if s.secureCookies {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
