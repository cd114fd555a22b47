// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package launch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/lti-service/internal/storage"
	"github.com/canonical/lti-service/internal/types"
	"github.com/canonical/lti-service/internal/validation"
	"github.com/canonical/lti-service/pkg/authentication"
)

type apiMocks struct {
	auth     *MockAuthenticatorInterface
	cohorts  *MockCohortServiceInterface
	storage  *MockStorageInterface
	carrier  *MockStateCarrierInterface
	sessions *MockSessionInterface
	logger   *MockLoggerInterface
}

func newTestAPI(ctrl *gomock.Controller) (*API, *apiMocks) {
	m := &apiMocks{
		auth:     NewMockAuthenticatorInterface(ctrl),
		cohorts:  NewMockCohortServiceInterface(ctrl),
		storage:  NewMockStorageInterface(ctrl),
		carrier:  NewMockStateCarrierInterface(ctrl),
		sessions: NewMockSessionInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
	}
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	api := NewAPI(m.auth, m.cohorts, m.storage, m.carrier, m.sessions, validation.NewValidator(), mockTracer, mockMonitor, m.logger)
	return api, m
}

var errSealFailed = errors.New("seal failed")

func launchRequest(form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "https://tool.example.com/lti/launch", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestAPI_Launch(t *testing.T) {
	nickname := "ada"
	cohort := &types.Cohort{ID: "cohort-1", OAuthKey: "sculpture"}
	activeUser := &types.User{ID: "user-1", Username: "student42", Nickname: &nickname, IsActive: true}
	newUser := &types.User{ID: "user-2", Username: "fresh", IsActive: true}
	inactiveUser := &types.User{ID: "user-3", Username: "gone", Nickname: &nickname, IsActive: false}

	testCases := []struct {
		name             string
		form             url.Values
		setupMocks       func(*apiMocks)
		expectedStatus   int
		expectedLocation string
		expectedBody     string
	}{
		{
			name: "denied launch",
			form: url.Values{"oauth_consumer_key": {"sculpture"}},
			setupMocks: func(m *apiMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(nil, authentication.ErrPermissionDenied)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "nickname conflict on cohort reassignment",
			form: url.Values{"oauth_consumer_key": {"sculpture"}},
			setupMocks: func(m *apiMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNicknameConflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "anonymous request",
			form: url.Values{},
			setupMocks: func(m *apiMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "inactive user",
			form: url.Values{"oauth_consumer_key": {"sculpture"}},
			setupMocks: func(m *apiMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "account inactive",
		},
		{
			name: "first launch lands on the profile form",
			form: url.Values{"oauth_consumer_key": {"sculpture"}, "custom_next": {"/widget"}},
			setupMocks: func(m *apiMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(newUser, nil)
				m.sessions.EXPECT().Issue(gomock.Any(), "user-2").Return(nil)
				m.cohorts.EXPECT().ResolveCurrent(gomock.Any(), newUser).Return(cohort, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Complete your profile",
		},
		{
			name: "session failure blocks the profile form",
			form: url.Values{"oauth_consumer_key": {"sculpture"}},
			setupMocks: func(m *apiMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(newUser, nil)
				m.sessions.EXPECT().Issue(gomock.Any(), "user-2").Return(errSealFailed)
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "session failure still resumes users with a nickname",
			form: url.Values{"oauth_consumer_key": {"sculpture"}},
			setupMocks: func(m *apiMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(activeUser, nil)
				m.sessions.EXPECT().Issue(gomock.Any(), "user-1").Return(errSealFailed)
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
				m.cohorts.EXPECT().ResolveCurrent(gomock.Any(), activeUser).Return(cohort, nil)
				m.carrier.EXPECT().Resume(gomock.Any(), gomock.Any(), gomock.Any(), cohort).Return("/widget/5", nil)
			},
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/widget/5",
		},
		{
			name: "returning launch resumes the redirect",
			form: url.Values{"oauth_consumer_key": {"sculpture"}},
			setupMocks: func(m *apiMocks) {
				m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(activeUser, nil)
				m.sessions.EXPECT().Issue(gomock.Any(), "user-1").Return(nil)
				m.cohorts.EXPECT().ResolveCurrent(gomock.Any(), activeUser).Return(cohort, nil)
				m.carrier.EXPECT().Resume(gomock.Any(), gomock.Any(), gomock.Any(), cohort).Return("/widget/5", nil)
			},
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/widget/5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, m := newTestAPI(ctrl)
			tc.setupMocks(m)

			rec := httptest.NewRecorder()
			api.launch(rec, launchRequest(tc.form))

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
			if tc.expectedLocation != "" && rec.Header().Get("Location") != tc.expectedLocation {
				t.Errorf("expected redirect to %q, got %q", tc.expectedLocation, rec.Header().Get("Location"))
			}
			if tc.expectedBody != "" && !strings.Contains(rec.Body.String(), tc.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tc.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestAPI_RedirectHandler(t *testing.T) {
	cohort := &types.Cohort{ID: "cohort-1", OAuthKey: "sculpture", LoginURL: "https://lms.example.com/login"}

	testCases := []struct {
		name             string
		setupMocks       func(*apiMocks)
		expectedStatus   int
		expectedLocation string
	}{
		{
			name: "redirects to the cohort's external url",
			setupMocks: func(m *apiMocks) {
				m.cohorts.EXPECT().ResolveCurrent(gomock.Any(), nil).Return(cohort, nil)
				m.carrier.EXPECT().BeginRedirect(gomock.Any(), gomock.Any(), gomock.Any(), cohort, FlowLogin).Return(cohort.LoginURL, nil)
			},
			expectedStatus:   http.StatusFound,
			expectedLocation: "https://lms.example.com/login",
		},
		{
			name: "404 when no cohort is configured",
			setupMocks: func(m *apiMocks) {
				m.cohorts.EXPECT().ResolveCurrent(gomock.Any(), nil).Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, m := newTestAPI(ctrl)
			tc.setupMocks(m)

			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://tool.example.com/lti/login?next=/widget", nil)
			api.redirectHandler(FlowLogin)(rec, r)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
			if tc.expectedLocation != "" && rec.Header().Get("Location") != tc.expectedLocation {
				t.Errorf("expected redirect to %q, got %q", tc.expectedLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestAPI_ProfileSubmit(t *testing.T) {
	cohort := &types.Cohort{ID: "cohort-1", OAuthKey: "sculpture"}

	sessionUser := func() *types.User {
		return &types.User{ID: "user-1", Username: "student42", IsActive: true}
	}

	testCases := []struct {
		name             string
		form             url.Values
		setupMocks       func(*apiMocks)
		expectedStatus   int
		expectedLocation string
		expectedBody     string
	}{
		{
			name: "no session",
			form: url.Values{"nickname": {"ada"}},
			setupMocks: func(m *apiMocks) {
				m.sessions.EXPECT().Read(gomock.Any()).Return("", false)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "invalid nickname redisplays the form",
			form: url.Values{"nickname": {"bad nickname!"}},
			setupMocks: func(m *apiMocks) {
				m.sessions.EXPECT().Read(gomock.Any()).Return("user-1", true)
				m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(sessionUser(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "nickname may only contain",
		},
		{
			name: "unknown time zone redisplays the form",
			form: url.Values{"nickname": {"ada"}, "time_zone": {"Mars/Olympus"}},
			setupMocks: func(m *apiMocks) {
				m.sessions.EXPECT().Read(gomock.Any()).Return("user-1", true)
				m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(sessionUser(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "unknown time zone",
		},
		{
			name: "taken nickname redisplays the form",
			form: url.Values{"nickname": {"ada"}},
			setupMocks: func(m *apiMocks) {
				m.sessions.EXPECT().Read(gomock.Any()).Return("user-1", true)
				m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(sessionUser(), nil)
				m.storage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), []string{"nickname"}).Return(storage.ErrNicknameConflict)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "already taken",
		},
		{
			name: "successful update resumes the redirect",
			form: url.Values{"nickname": {"ada"}, "time_zone": {"Australia/Adelaide"}},
			setupMocks: func(m *apiMocks) {
				m.sessions.EXPECT().Read(gomock.Any()).Return("user-1", true)
				m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(sessionUser(), nil)
				m.storage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), []string{"nickname", "time_zone"}).Return(nil)
				m.cohorts.EXPECT().ResolveCurrent(gomock.Any(), gomock.Any()).Return(cohort, nil)
				m.carrier.EXPECT().Resume(gomock.Any(), gomock.Any(), gomock.Any(), cohort).Return("/widget", nil)
			},
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/widget",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, m := newTestAPI(ctrl)
			tc.setupMocks(m)

			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "https://tool.example.com/lti/profile", strings.NewReader(tc.form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			api.profileSubmit(rec, r)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
			if tc.expectedLocation != "" && rec.Header().Get("Location") != tc.expectedLocation {
				t.Errorf("expected redirect to %q, got %q", tc.expectedLocation, rec.Header().Get("Location"))
			}
			if tc.expectedBody != "" && !strings.Contains(rec.Body.String(), tc.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tc.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestAPI_ProfileForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, m := newTestAPI(ctrl)

	nickname := "ada"
	tz := "Australia/Adelaide"
	user := &types.User{ID: "user-1", Username: "student42", Nickname: &nickname, TimeZone: &tz, IsActive: true}

	m.sessions.EXPECT().Read(gomock.Any()).Return("user-1", true)
	m.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(user, nil)

	rec := httptest.NewRecorder()
	api.profileForm(rec, httptest.NewRequest(http.MethodGet, "https://tool.example.com/lti/profile", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `value="ada"`) || !strings.Contains(body, `value="Australia/Adelaide"`) {
		t.Errorf("expected prefilled form, got %q", body)
	}
}
