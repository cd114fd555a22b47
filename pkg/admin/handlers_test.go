// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

//go:generate mockgen -build_flags=--mod=mod -package admin -destination ./mock_admin.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package admin -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package admin -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package admin -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/lti-service/internal/storage"
	"github.com/canonical/lti-service/internal/types"
	"github.com/canonical/lti-service/internal/validation"
)

func newTestMux(ctrl *gomock.Controller) (*chi.Mux, *MockServiceInterface, *MockLoggerInterface) {
	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	mux := chi.NewMux()
	NewAPI(mockService, validation.NewValidator(), mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)
	return mux, mockService, mockLogger
}

func testCohort(id string) *types.Cohort {
	return &types.Cohort{
		ID:          id,
		Title:       "Sculpture 101",
		LoginURL:    "https://lms.example.com/login",
		OAuthKey:    "sculpture",
		OAuthSecret: "terracotta",
		IsDefault:   true,
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		ModifiedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

const validPayload = `{
	"title": "Sculpture 101",
	"login_url": "https://lms.example.com/login",
	"oauth_key": "sculpture",
	"oauth_secret": "terracotta"
}`

func TestAPI_ListCohorts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mux, mockService, _ := newTestMux(ctrl)
	mockService.EXPECT().ListCohorts(gomock.Any()).Return([]*types.Cohort{testCohort("cohort-1")}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v0/cohorts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*cohortResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].OAuthKey != "sculpture" {
		t.Errorf("unexpected response %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "terracotta") {
		t.Error("response leaked the oauth secret")
	}
}

func TestAPI_GetCohort(t *testing.T) {
	testCases := []struct {
		name           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "found",
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().GetCohort(gomock.Any(), "cohort-1").Return(testCohort("cohort-1"), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().GetCohort(gomock.Any(), "cohort-1").Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mux, mockService, _ := newTestMux(ctrl)
			tc.setupMocks(mockService)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v0/cohorts/cohort-1", nil))

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}

func TestAPI_CreateCohort(t *testing.T) {
	testCases := []struct {
		name           string
		payload        string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name:    "created",
			payload: validPayload,
			setupMocks: func(m *MockServiceInterface, _ *MockLoggerInterface) {
				m.EXPECT().CreateCohort(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, c *types.Cohort) (*types.Cohort, error) {
						if c.OAuthKey != "sculpture" || c.OAuthSecret != "terracotta" {
							t.Errorf("unexpected cohort %+v", c)
						}
						return testCohort("cohort-1"), nil
					},
				)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed body",
			payload:        "{",
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing oauth key",
			payload:        `{"title": "Sculpture 101", "login_url": "https://lms.example.com/login", "oauth_secret": "terracotta"}`,
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "oauth key with spaces",
			payload:        `{"title": "Sculpture 101", "login_url": "https://lms.example.com/login", "oauth_key": "bad key", "oauth_secret": "terracotta"}`,
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "duplicate oauth key",
			payload: validPayload,
			setupMocks: func(m *MockServiceInterface, _ *MockLoggerInterface) {
				m.EXPECT().CreateCohort(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:    "storage failure",
			payload: validPayload,
			setupMocks: func(m *MockServiceInterface, l *MockLoggerInterface) {
				m.EXPECT().CreateCohort(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)
				l.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mux, mockService, mockLogger := newTestMux(ctrl)
			tc.setupMocks(mockService, mockLogger)

			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v0/cohorts", strings.NewReader(tc.payload))
			r.Header.Set("Content-Type", "application/json")
			mux.ServeHTTP(rec, r)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_UpdateCohort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mux, mockService, _ := newTestMux(ctrl)
	expectedPaths := []string{"title", "login_url", "enrol_url", "oauth_key", "oauth_secret", "persist_params"}
	mockService.EXPECT().UpdateCohort(gomock.Any(), gomock.Any(), expectedPaths).DoAndReturn(
		func(_ context.Context, c *types.Cohort, _ []string) (*types.Cohort, error) {
			if c.ID != "cohort-1" {
				t.Errorf("expected id from URL, got %q", c.ID)
			}
			return testCohort("cohort-1"), nil
		},
	)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPatch, "/api/v0/cohorts/cohort-1", strings.NewReader(validPayload))
	r.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAPI_SetDefault(t *testing.T) {
	testCases := []struct {
		name           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "switched",
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().SetDefault(gomock.Any(), "cohort-1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "unknown cohort",
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().SetDefault(gomock.Any(), "cohort-1").Return(storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mux, mockService, _ := newTestMux(ctrl)
			tc.setupMocks(mockService)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v0/cohorts/cohort-1/default", nil))

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}
