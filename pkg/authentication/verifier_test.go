// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/lti-service/internal/oauth1"
	"github.com/canonical/lti-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_authentication.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const launchURL = "http://tool.example.com/lti/launch"

// signedLaunchRequest builds a form POST signed the way an LTI producer
// would sign it.
func signedLaunchRequest(t *testing.T, params map[string]string, secret string) *http.Request {
	t.Helper()

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	sig, err := oauth1.Sign(http.MethodPost, launchURL, form, secret)
	if err != nil {
		t.Fatalf("failed to sign request: %v", err)
	}
	form.Set("oauth_signature", sig)

	r := httptest.NewRequest(http.MethodPost, launchURL, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func launchParams(key string) map[string]string {
	return map[string]string{
		"oauth_consumer_key":               key,
		"oauth_signature_method":           "HMAC-SHA1",
		"oauth_timestamp":                  strconv.FormatInt(time.Now().Unix(), 10),
		"oauth_nonce":                      "nonce-1",
		"oauth_version":                    "1.0",
		"lis_person_sourcedid":             "student42",
		"lis_person_contact_email_primary": "student42@lms.example.com",
		"lis_person_name_given":            "Ada",
		"lis_person_name_family":           "Lovelace",
		"roles":                            "Learner",
	}
}

func TestLaunchVerifier_Verify(t *testing.T) {
	cohort := &types.Cohort{ID: "cohort-1", OAuthKey: "sculpture", OAuthSecret: "s3cret"}
	dbErr := errors.New("db error")

	testCases := []struct {
		name           string
		params         map[string]string
		secret         string
		setupMocks     func(*MockSecretResolverInterface, *MockCohortFinderInterface, *MockSecurityLoggerInterface, *MockLoggerInterface)
		expectedClaims *types.LaunchClaims
		expectedErr    error
	}{
		{
			name:   "valid launch",
			params: launchParams("sculpture"),
			secret: "s3cret",
			setupMocks: func(secrets *MockSecretResolverInterface, cohorts *MockCohortFinderInterface, security *MockSecurityLoggerInterface, logger *MockLoggerInterface) {
				secrets.EXPECT().LookupSecret(gomock.Any(), "sculpture").Return("s3cret", true, nil)
				cohorts.EXPECT().FindByKey(gomock.Any(), "sculpture").Return(cohort, nil)
			},
			expectedClaims: &types.LaunchClaims{
				PersonID:   "student42",
				Email:      "student42@lms.example.com",
				GivenName:  "Ada",
				FamilyName: "Lovelace",
				Roles:      []string{"Learner"},
				Cohort:     cohort,
			},
		},
		{
			name:   "static credential launch has no cohort",
			params: launchParams("static-key"),
			secret: "static-secret",
			setupMocks: func(secrets *MockSecretResolverInterface, cohorts *MockCohortFinderInterface, security *MockSecurityLoggerInterface, logger *MockLoggerInterface) {
				secrets.EXPECT().LookupSecret(gomock.Any(), "static-key").Return("static-secret", true, nil)
				cohorts.EXPECT().FindByKey(gomock.Any(), "static-key").Return(nil, nil)
			},
			expectedClaims: &types.LaunchClaims{
				PersonID:   "student42",
				Email:      "student42@lms.example.com",
				GivenName:  "Ada",
				FamilyName: "Lovelace",
				Roles:      []string{"Learner"},
				Cohort:     nil,
			},
		},
		{
			name: "missing consumer key",
			params: func() map[string]string {
				p := launchParams("sculpture")
				delete(p, "oauth_consumer_key")
				return p
			}(),
			secret: "s3cret",
			setupMocks: func(secrets *MockSecretResolverInterface, cohorts *MockCohortFinderInterface, security *MockSecurityLoggerInterface, logger *MockLoggerInterface) {
				security.EXPECT().AuthFailure("", "missing oauth_consumer_key")
			},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:   "unknown consumer key",
			params: launchParams("nobody"),
			secret: "irrelevant",
			setupMocks: func(secrets *MockSecretResolverInterface, cohorts *MockCohortFinderInterface, security *MockSecurityLoggerInterface, logger *MockLoggerInterface) {
				secrets.EXPECT().LookupSecret(gomock.Any(), "nobody").Return("", false, nil)
				security.EXPECT().AuthFailure("nobody", "unknown consumer key")
			},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:   "secret resolver failure",
			params: launchParams("sculpture"),
			secret: "s3cret",
			setupMocks: func(secrets *MockSecretResolverInterface, cohorts *MockCohortFinderInterface, security *MockSecurityLoggerInterface, logger *MockLoggerInterface) {
				secrets.EXPECT().LookupSecret(gomock.Any(), "sculpture").Return("", false, dbErr)
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
				security.EXPECT().AuthFailure("sculpture", "secret lookup failed")
			},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:   "wrong secret rejects signature",
			params: launchParams("sculpture"),
			secret: "s3cret",
			setupMocks: func(secrets *MockSecretResolverInterface, cohorts *MockCohortFinderInterface, security *MockSecurityLoggerInterface, logger *MockLoggerInterface) {
				secrets.EXPECT().LookupSecret(gomock.Any(), "sculpture").Return("other-secret", true, nil)
				security.EXPECT().AuthFailure("sculpture", gomock.Any())
			},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:   "cohort lookup failure",
			params: launchParams("sculpture"),
			secret: "s3cret",
			setupMocks: func(secrets *MockSecretResolverInterface, cohorts *MockCohortFinderInterface, security *MockSecurityLoggerInterface, logger *MockLoggerInterface) {
				secrets.EXPECT().LookupSecret(gomock.Any(), "sculpture").Return("s3cret", true, nil)
				cohorts.EXPECT().FindByKey(gomock.Any(), "sculpture").Return(nil, dbErr)
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
				security.EXPECT().AuthFailure("sculpture", "cohort lookup failed")
			},
			expectedErr: ErrPermissionDenied,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSecrets := NewMockSecretResolverInterface(ctrl)
			mockCohorts := NewMockCohortFinderInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.LaunchVerifier.Verify").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockSecrets, mockCohorts, mockSecurity, mockLogger)

			v := NewLaunchVerifier(mockSecrets, mockCohorts, time.Hour, false, mockTracer, mockMonitor, mockLogger)

			r := signedLaunchRequest(t, tc.params, tc.secret)
			claims, err := v.Verify(context.Background(), r)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if claims.PersonID != tc.expectedClaims.PersonID ||
				claims.Email != tc.expectedClaims.Email ||
				claims.GivenName != tc.expectedClaims.GivenName ||
				claims.FamilyName != tc.expectedClaims.FamilyName {
				t.Errorf("expected claims %+v, got %+v", tc.expectedClaims, claims)
			}
			if len(claims.Roles) != len(tc.expectedClaims.Roles) {
				t.Errorf("expected roles %v, got %v", tc.expectedClaims.Roles, claims.Roles)
			}
			if (claims.Cohort == nil) != (tc.expectedClaims.Cohort == nil) {
				t.Errorf("expected cohort %+v, got %+v", tc.expectedClaims.Cohort, claims.Cohort)
			}
		})
	}
}

func TestLaunchVerifier_RepeatedParameterValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSecrets := NewMockSecretResolverInterface(ctrl)
	mockCohorts := NewMockCohortFinderInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
	mockTracer.EXPECT().Start(gomock.Any(), "authentication.LaunchVerifier.Verify").Return(context.Background(), trace.SpanFromContext(context.Background()))
	mockSecrets.EXPECT().LookupSecret(gomock.Any(), "sculpture").Return("s3cret", true, nil)
	mockCohorts.EXPECT().FindByKey(gomock.Any(), "sculpture").Return(nil, nil)

	form := url.Values{}
	for k, v := range launchParams("sculpture") {
		form.Set(k, v)
	}
	form.Del("roles")
	form.Add("roles", "Instructor")
	form.Add("roles", "Learner")

	sig, err := oauth1.Sign(http.MethodPost, launchURL, form, "s3cret")
	if err != nil {
		t.Fatalf("failed to sign request: %v", err)
	}
	form.Set("oauth_signature", sig)

	r := httptest.NewRequest(http.MethodPost, launchURL, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	v := NewLaunchVerifier(mockSecrets, mockCohorts, time.Hour, false, mockTracer, mockMonitor, mockLogger)

	claims, err := v.Verify(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "Instructor" {
		t.Errorf("expected first roles value to win, got %v", claims.Roles)
	}
}

func TestLaunchVerifier_StaleTimestamp(t *testing.T) {
	staleAge := int64(7200)

	testCases := []struct {
		name        string
		rejectStale bool
		expectedErr error
	}{
		{
			name:        "warn only by default",
			rejectStale: false,
		},
		{
			name:        "rejected when policy is strict",
			rejectStale: true,
			expectedErr: ErrPermissionDenied,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSecrets := NewMockSecretResolverInterface(ctrl)
			mockCohorts := NewMockCohortFinderInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.LaunchVerifier.Verify").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockSecrets.EXPECT().LookupSecret(gomock.Any(), "sculpture").Return("s3cret", true, nil)
			mockSecurity.EXPECT().StaleTimestamp("sculpture", gomock.Any())
			if !tc.rejectStale {
				mockCohorts.EXPECT().FindByKey(gomock.Any(), "sculpture").Return(nil, nil)
			}

			params := launchParams("sculpture")
			params["oauth_timestamp"] = strconv.FormatInt(time.Now().Unix()-staleAge, 10)

			v := NewLaunchVerifier(mockSecrets, mockCohorts, time.Hour, tc.rejectStale, mockTracer, mockMonitor, mockLogger)

			r := signedLaunchRequest(t, params, "s3cret")
			claims, err := v.Verify(context.Background(), r)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims == nil {
				t.Fatal("expected claims for warn-only stale launch")
			}
		})
	}
}

func TestSplitRoles(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"Learner", []string{"Learner"}},
		{"Instructor, Learner", []string{"Instructor", "Learner"}},
		{"Instructor,,Learner", []string{"Instructor", "Learner"}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.input), func(t *testing.T) {
			got := splitRoles(tc.input)
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("expected %v, got %v", tc.expected, got)
				}
			}
		})
	}
}
