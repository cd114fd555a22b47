// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapWriteError(t *testing.T) {
	plainErr := errors.New("connection reset")

	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "nickname conflict within a cohort",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "users_nickname_cohort_key"},
			expected: ErrNicknameConflict,
		},
		{
			name:     "nickname conflict without a cohort",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "users_nickname_no_cohort_key"},
			expected: ErrNicknameConflict,
		},
		{
			name:     "other unique violation",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			expected: ErrDuplicateKey,
		},
		{
			name:     "foreign key violation",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "users_cohort_id_fkey"},
			expected: ErrForeignKeyViolation,
		},
		{
			name:     "wrapped postgres error",
			err:      fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_nickname_no_cohort_key"}),
			expected: ErrNicknameConflict,
		},
		{
			name:     "unrelated error passes through",
			err:      plainErr,
			expected: plainErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapWriteError(tc.err); !errors.Is(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}
