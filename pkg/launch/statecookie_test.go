// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package launch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/lti-service/internal/secretbox"
	"github.com/canonical/lti-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package launch -destination ./mock_launch.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package launch -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package launch -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package launch -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const testKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func testBox(t *testing.T) *secretbox.SecretBox {
	t.Helper()
	box, err := secretbox.New(testKey)
	if err != nil {
		t.Fatalf("failed to build secretbox: %v", err)
	}
	return box
}

func testCarrier(t *testing.T, ctrl *gomock.Controller) (*StateCarrier, *MockLoggerInterface) {
	t.Helper()

	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	c := NewStateCarrier(testBox(t), "/", "/", false, time.Hour, mockTracer, mockMonitor, mockLogger)
	return c, mockLogger
}

func persistCohort() *types.Cohort {
	persist := "context_id\nresource_link_id\n"
	enrol := "https://lms.example.com/enrol"
	return &types.Cohort{
		ID:            "cohort-1",
		Title:         "Sculpture 101",
		LoginURL:      "https://lms.example.com/login",
		EnrolURL:      &enrol,
		OAuthKey:      "sculpture",
		OAuthSecret:   "s3cret",
		PersistParams: &persist,
	}
}

func TestStateCarrier_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	carrier, _ := testCarrier(t, ctrl)
	cohort := persistCohort()

	form := url.Values{
		"next":       {"/widget/5"},
		"context_id": {"course-77"},
		"ignored":    {"dropped"},
	}
	begin := httptest.NewRequest(http.MethodGet, "https://tool.example.com/lti/login?"+form.Encode(), nil)
	beginRec := httptest.NewRecorder()

	target, err := carrier.BeginRedirect(context.Background(), beginRec, begin, cohort, FlowLogin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target != cohort.LoginURL {
		t.Errorf("expected login target %q, got %q", cohort.LoginURL, target)
	}

	cookies := beginRec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sculpture" {
		t.Fatalf("expected one state cookie named after the oauth key, got %+v", cookies)
	}

	resume := httptest.NewRequest(http.MethodPost, "https://tool.example.com/lti/launch", nil)
	resume.AddCookie(cookies[0])
	resumeRec := httptest.NewRecorder()

	next, params := carrier.Resume(context.Background(), resumeRec, resume, cohort)
	if next != "/widget/5" {
		t.Errorf("expected next /widget/5, got %q", next)
	}
	if params["context_id"] != "course-77" {
		t.Errorf("expected carried context_id, got %v", params)
	}
	if _, ok := params["ignored"]; ok {
		t.Errorf("expected non-persist param to be dropped, got %v", params)
	}

	// The cookie is single use.
	expired := resumeRec.Result().Cookies()
	if len(expired) != 1 || expired[0].Name != "sculpture" || expired[0].MaxAge >= 0 {
		t.Errorf("expected the state cookie to be expired, got %+v", expired)
	}
}

func TestStateCarrier_EnrolFlowTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	carrier, _ := testCarrier(t, ctrl)

	cohort := persistCohort()
	r := httptest.NewRequest(http.MethodGet, "https://tool.example.com/lti/enrol", nil)

	target, err := carrier.BeginRedirect(context.Background(), httptest.NewRecorder(), r, cohort, FlowEnrol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target != *cohort.EnrolURL {
		t.Errorf("expected enrol target, got %q", target)
	}

	// Without an enrol URL the flow falls back to the login URL.
	cohort.EnrolURL = nil
	target, err = carrier.BeginRedirect(context.Background(), httptest.NewRecorder(), r, cohort, FlowEnrol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target != cohort.LoginURL {
		t.Errorf("expected login fallback, got %q", target)
	}
}

func TestStateCarrier_ResumeTamperedCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	carrier, mockLogger := testCarrier(t, ctrl)
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
	cohort := persistCohort()

	form := url.Values{"custom_next": {"/fallback"}}
	r := httptest.NewRequest(http.MethodPost, "https://tool.example.com/lti/launch", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: "sculpture", Value: "not-a-sealed-token"})

	next, params := carrier.Resume(context.Background(), httptest.NewRecorder(), r, cohort)
	if next != "/fallback" {
		t.Errorf("expected custom_next fallback, got %q", next)
	}
	if params != nil {
		t.Errorf("expected no params from a tampered cookie, got %v", params)
	}
}

func TestStateCarrier_ResumeWithoutState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	carrier, _ := testCarrier(t, ctrl)

	r := httptest.NewRequest(http.MethodPost, "https://tool.example.com/lti/launch", nil)

	next, _ := carrier.Resume(context.Background(), httptest.NewRecorder(), r, persistCohort())
	if next != "/" {
		t.Errorf("expected default target, got %q", next)
	}

	// A nil cohort cannot name a cookie and also lands on the default.
	next, _ = carrier.Resume(context.Background(), httptest.NewRecorder(), r, nil)
	if next != "/" {
		t.Errorf("expected default target for nil cohort, got %q", next)
	}
}

func TestStateCarrier_SafeTarget(t *testing.T) {
	s := &StateCarrier{defaultTarget: "/home", scriptPrefix: "/tool"}

	testCases := []struct {
		name     string
		next     string
		expected string
	}{
		{"empty", "", "/home"},
		{"relative path", "/widget", "/widget"},
		{"script prefix stripped", "/tool/widget", "/widget"},
		{"absolute url", "https://evil.example.com/", "/home"},
		{"protocol relative", "//evil.example.com", "/home"},
		{"backslash schemeless", "/\\evil.example.com", "/home"},
		{"no leading slash", "widget", "/home"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.safeTarget(tc.next); got != tc.expected {
				t.Errorf("safeTarget(%q) = %q, expected %q", tc.next, got, tc.expected)
			}
		})
	}
}
