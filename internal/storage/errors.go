// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrNicknameConflict is raised when a write would give two users in
	// the same cohort the same nickname. It is kept distinct from
	// ErrDuplicateKey so the profile boundary can surface it as a
	// validation message.
	ErrNicknameConflict = errors.New("nickname already taken in cohort")
)

// PostgreSQL error codes
const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// nicknameConstraints are the unique indexes guarding nickname
// uniqueness, one per cohort and one for users without a cohort.
var nicknameConstraints = map[string]bool{
	"users_nickname_cohort_key":    true,
	"users_nickname_no_cohort_key": true,
}

// isNoRows reports whether err means "no matching row", whichever runner
// produced it.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeUniqueViolation
	}
	return false
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeForeignKeyViolation
	}
	return false
}

// mapWriteError normalizes a postgres error into the package's sentinel
// errors, distinguishing nickname conflicts from other unique violations.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrCodeUniqueViolation:
		if nicknameConstraints[pgErr.ConstraintName] {
			return ErrNicknameConflict
		}
		return ErrDuplicateKey
	case pgErrCodeForeignKeyViolation:
		return ErrForeignKeyViolation
	}

	return err
}
