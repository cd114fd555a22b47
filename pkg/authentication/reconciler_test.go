// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/lti-service/internal/storage"
	"github.com/canonical/lti-service/internal/types"
)

func TestReconciler_ReconcileNewUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	cohort := &types.Cohort{ID: "cohort-1", OAuthKey: "sculpture"}
	claims := &types.LaunchClaims{
		PersonID:   "student42",
		Email:      "student42@lms.example.com",
		FamilyName: "Lovelace",
		Roles:      []string{"Learner"},
		Cohort:     cohort,
	}
	created := &types.User{ID: "user-1", Username: "student42", IsActive: true}

	mockTracer.EXPECT().Start(gomock.Any(), "authentication.Reconciler.Reconcile").Return(context.Background(), trace.SpanFromContext(context.Background()))
	mockStorage.EXPECT().GetOrCreateUser(gomock.Any(), "student42").Return(created, true, nil)
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
	mockStorage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), []string{"cohort_id", "email", "last_name"}).Return(nil)
	mockStorage.EXPECT().RemoveUserFromGroup(gomock.Any(), "user-1", "staff").Return(nil)

	rc := NewReconciler(mockStorage, "cuid:", "staff", mockTracer, mockMonitor, mockLogger)

	user, err := rc.Reconcile(context.Background(), claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.CohortID == nil || *user.CohortID != "cohort-1" {
		t.Errorf("expected cohort assignment, got %+v", user.CohortID)
	}
	if user.Email != "student42@lms.example.com" || user.LastName != "Lovelace" {
		t.Errorf("expected claim fields applied, got %+v", user)
	}
}

func TestReconciler_ReconcileInstructorBecomesStaff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	claims := &types.LaunchClaims{
		PersonID: "teacher1",
		Roles:    []string{"Instructor"},
	}
	existing := &types.User{ID: "user-2", Username: "teacher1", IsActive: true}

	mockTracer.EXPECT().Start(gomock.Any(), "authentication.Reconciler.Reconcile").Return(context.Background(), trace.SpanFromContext(context.Background()))
	mockStorage.EXPECT().GetOrCreateUser(gomock.Any(), "teacher1").Return(existing, false, nil)
	mockStorage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), []string{"is_staff"}).Return(nil)
	mockStorage.EXPECT().AddUserToGroup(gomock.Any(), "user-2", "staff").Return(nil)

	rc := NewReconciler(mockStorage, "cuid:", "staff", mockTracer, mockMonitor, mockLogger)

	user, err := rc.Reconcile(context.Background(), claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsStaff {
		t.Error("expected user to become staff")
	}
}

func TestReconciler_ReconcileDuplicateGroupMembershipSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	claims := &types.LaunchClaims{
		PersonID: "teacher1",
		Roles:    []string{"Instructor"},
	}
	// Already staff, so no user update is needed.
	existing := &types.User{ID: "user-2", Username: "teacher1", IsStaff: true, IsActive: true}

	mockTracer.EXPECT().Start(gomock.Any(), "authentication.Reconciler.Reconcile").Return(context.Background(), trace.SpanFromContext(context.Background()))
	mockStorage.EXPECT().GetOrCreateUser(gomock.Any(), "teacher1").Return(existing, false, nil)
	mockStorage.EXPECT().AddUserToGroup(gomock.Any(), "user-2", "staff").Return(storage.ErrDuplicateKey)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())

	rc := NewReconciler(mockStorage, "cuid:", "staff", mockTracer, mockMonitor, mockLogger)

	if _, err := rc.Reconcile(context.Background(), claims); err != nil {
		t.Fatalf("expected duplicate membership to be swallowed, got %v", err)
	}
}

func TestReconciler_ReconcileNicknameConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	cohort := &types.Cohort{ID: "cohort-2"}
	claims := &types.LaunchClaims{
		PersonID: "student42",
		Cohort:   cohort,
	}
	nickname := "ada"
	cohortID := "cohort-1"
	existing := &types.User{ID: "user-1", Username: "student42", Nickname: &nickname, CohortID: &cohortID, IsActive: true}

	mockTracer.EXPECT().Start(gomock.Any(), "authentication.Reconciler.Reconcile").Return(context.Background(), trace.SpanFromContext(context.Background()))
	mockStorage.EXPECT().GetOrCreateUser(gomock.Any(), "student42").Return(existing, false, nil)
	mockStorage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), []string{"cohort_id"}).Return(storage.ErrNicknameConflict)

	rc := NewReconciler(mockStorage, "cuid:", "staff", mockTracer, mockMonitor, mockLogger)

	_, err := rc.Reconcile(context.Background(), claims)
	if !errors.Is(err, storage.ErrNicknameConflict) {
		t.Fatalf("expected ErrNicknameConflict, got %v", err)
	}
}

func TestReconciler_ReconcileSynthesizesUsername(t *testing.T) {
	testCases := []struct {
		name     string
		personID string
	}{
		{"empty person id", ""},
		{"invalid characters", "person id with spaces"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			var gotUsername string
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Reconciler.Reconcile").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockStorage.EXPECT().GetOrCreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, username string) (*types.User, bool, error) {
					gotUsername = username
					return &types.User{ID: "user-3", Username: username, IsActive: true}, true, nil
				})
			mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
			mockStorage.EXPECT().RemoveUserFromGroup(gomock.Any(), "user-3", "staff").Return(nil)

			rc := NewReconciler(mockStorage, "cuid:", "staff", mockTracer, mockMonitor, mockLogger)

			claims := &types.LaunchClaims{PersonID: tc.personID}
			if _, err := rc.Reconcile(context.Background(), claims); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !strings.HasPrefix(gotUsername, "cuid:") {
				t.Errorf("expected synthesized username with prefix, got %q", gotUsername)
			}
			if len(gotUsername) <= len("cuid:") {
				t.Errorf("expected fallback token after prefix, got %q", gotUsername)
			}
		})
	}
}

func TestReconciler_ReconcileNoStaffGroupConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	existing := &types.User{ID: "user-1", Username: "student42", IsActive: true}

	mockTracer.EXPECT().Start(gomock.Any(), "authentication.Reconciler.Reconcile").Return(context.Background(), trace.SpanFromContext(context.Background()))
	mockStorage.EXPECT().GetOrCreateUser(gomock.Any(), "student42").Return(existing, false, nil)
	// No group calls expected when no staff group is configured.

	rc := NewReconciler(mockStorage, "cuid:", "", mockTracer, mockMonitor, mockLogger)

	if _, err := rc.Reconcile(context.Background(), &types.LaunchClaims{PersonID: "student42"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
