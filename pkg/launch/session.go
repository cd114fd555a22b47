// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package launch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/canonical/lti-service/internal/secretbox"
)

// sessionCookie carries the launched user's identity between the launch
// post and the profile form.
const sessionCookie = "lti_session"

type sessionPayload struct {
	Version  int    `json:"v"`
	UserID   string `json:"uid"`
	IssuedAt int64  `json:"iat"`
}

// Session is a minimal sealed-cookie session, just enough state for the
// profile round trip.
type Session struct {
	box *secretbox.SecretBox

	secureCookies bool
	maxLifetime   time.Duration
}

func NewSession(box *secretbox.SecretBox, secureCookies bool, maxLifetime time.Duration) *Session {
	return &Session{
		box:           box,
		secureCookies: secureCookies,
		maxLifetime:   maxLifetime,
	}
}

func (s *Session) Issue(w http.ResponseWriter, userID string) error {
	payload, err := json.Marshal(sessionPayload{
		Version:  stateVersion,
		UserID:   userID,
		IssuedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	token, err := s.box.Seal(payload)
	if err != nil {
		return fmt.Errorf("failed to seal session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.maxLifetime.Seconds()),
		Secure:   s.secureCookies,
		HttpOnly: true,
		SameSite: s.sameSite(),
	})

	return nil
}

func (s *Session) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}

	plaintext, err := s.box.Open(c.Value)
	if err != nil {
		return "", false
	}

	var payload sessionPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return "", false
	}
	if payload.Version != stateVersion || payload.UserID == "" {
		return "", false
	}
	if s.maxLifetime > 0 && time.Since(time.Unix(payload.IssuedAt, 0)) > s.maxLifetime {
		return "", false
	}

	return payload.UserID, true
}

func (s *Session) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secureCookies,
		HttpOnly: true,
		SameSite: s.sameSite(),
	})
}

func (s *Session) sameSite() http.SameSite {
	if s.secureCookies {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
