// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package credentials -destination ./mock_credentials.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package credentials -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package credentials -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package credentials -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestService_LookupSecret(t *testing.T) {
	dbErr := errors.New("db error")

	testCases := []struct {
		name           string
		static         map[string]string
		key            string
		setupMocks     func(*MockStorageInterface, *MockLoggerInterface)
		expectedSecret string
		expectedOK     bool
		expectedErr    error
	}{
		{
			name:   "registry key",
			static: map[string]string{},
			key:    "sculpture",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(map[string]string{"sculpture": "registry-secret"}, nil)
			},
			expectedSecret: "registry-secret",
			expectedOK:     true,
		},
		{
			name:   "static key",
			static: map[string]string{"static-key": "static-secret"},
			key:    "static-key",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(map[string]string{}, nil)
			},
			expectedSecret: "static-secret",
			expectedOK:     true,
		},
		{
			name:   "static secret overrides registry secret",
			static: map[string]string{"sculpture": "static-secret"},
			key:    "sculpture",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(map[string]string{"sculpture": "registry-secret"}, nil)
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
			expectedSecret: "static-secret",
			expectedOK:     true,
		},
		{
			name:   "unknown key",
			static: map[string]string{"static-key": "static-secret"},
			key:    "missing",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(map[string]string{"sculpture": "registry-secret"}, nil)
			},
			expectedOK: false,
		},
		{
			name:   "storage error",
			static: map[string]string{},
			key:    "sculpture",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			s := NewService(mockStorage, tc.static, 0, mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "credentials.Service.LookupSecret").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockStorage, mockLogger)

			secret, ok, err := s.LookupSecret(context.Background(), tc.key)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.expectedOK {
				t.Fatalf("expected ok=%t, got %t", tc.expectedOK, ok)
			}
			if secret != tc.expectedSecret {
				t.Errorf("expected secret %q, got %q", tc.expectedSecret, secret)
			}
		})
	}
}

func TestService_LookupSecretUncachedSeesRegistryChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	s := NewService(mockStorage, nil, 0, mockTracer, mockMonitor, mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), "credentials.Service.LookupSecret").Return(context.Background(), trace.SpanFromContext(context.Background())).Times(2)
	gomock.InOrder(
		mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(map[string]string{"sculpture": "old"}, nil),
		mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(map[string]string{"sculpture": "new"}, nil),
	)

	secret, ok, err := s.LookupSecret(context.Background(), "sculpture")
	if err != nil || !ok || secret != "old" {
		t.Fatalf("expected old secret, got %q ok=%t err=%v", secret, ok, err)
	}

	secret, ok, err = s.LookupSecret(context.Background(), "sculpture")
	if err != nil || !ok || secret != "new" {
		t.Fatalf("expected new secret, got %q ok=%t err=%v", secret, ok, err)
	}
}

func TestService_LookupSecretCachedSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	s := NewService(mockStorage, nil, time.Minute, mockTracer, mockMonitor, mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), "credentials.Service.LookupSecret").Return(context.Background(), trace.SpanFromContext(context.Background())).Times(3)
	// The snapshot is built once within the cache window.
	mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(map[string]string{"sculpture": "s3cret"}, nil).Times(1)

	for i := 0; i < 3; i++ {
		secret, ok, err := s.LookupSecret(context.Background(), "sculpture")
		if err != nil || !ok || secret != "s3cret" {
			t.Fatalf("expected cached secret, got %q ok=%t err=%v", secret, ok, err)
		}
	}
}

func TestService_SnapshotReturnsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	s := NewService(mockStorage, nil, time.Minute, mockTracer, mockMonitor, mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), "credentials.Service.Snapshot").Return(context.Background(), trace.SpanFromContext(context.Background())).Times(2)
	mockStorage.EXPECT().ListCredentials(gomock.Any()).Return(map[string]string{"sculpture": "s3cret"}, nil).Times(1)

	first, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first["sculpture"] = "tampered"

	second, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second["sculpture"] != "s3cret" {
		t.Errorf("snapshot mutation leaked into resolver: %q", second["sculpture"])
	}
}
