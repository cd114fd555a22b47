// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package launch

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSession_RoundTrip(t *testing.T) {
	s := NewSession(testBox(t), false, time.Hour)

	rec := httptest.NewRecorder()
	if err := s.Issue(rec, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookie {
		t.Fatalf("expected a session cookie, got %+v", cookies)
	}

	r := httptest.NewRequest(http.MethodGet, "/lti/profile", nil)
	r.AddCookie(cookies[0])

	userID, ok := s.Read(r)
	if !ok || userID != "user-1" {
		t.Errorf("expected user-1, got %q ok=%t", userID, ok)
	}
}

func TestSession_ReadRejectsTamperedCookie(t *testing.T) {
	s := NewSession(testBox(t), false, time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/lti/profile", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "garbage"})

	if _, ok := s.Read(r); ok {
		t.Error("expected tampered session to be rejected")
	}
}

func TestSession_ReadWithoutCookie(t *testing.T) {
	s := NewSession(testBox(t), false, time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/lti/profile", nil)
	if _, ok := s.Read(r); ok {
		t.Error("expected no session without a cookie")
	}
}
