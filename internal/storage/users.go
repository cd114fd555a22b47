// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/lti-service/internal/types"
)

const userColumns = "id, username, nickname, last_name, email, is_staff, is_active, time_zone, cohort_id, created_at"

func scanUser(row sq.RowScanner) (*types.User, error) {
	var u types.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Nickname, &u.LastName, &u.Email,
		&u.IsStaff, &u.IsActive, &u.TimeZone, &u.CohortID, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOrCreateUser inserts a user row for username if none exists and returns
// it, together with whether it was created. The insert uses ON CONFLICT DO
// NOTHING on the username unique constraint, so two concurrent calls for the
// same new username converge on a single row.
func (s *Storage) GetOrCreateUser(ctx context.Context, username string) (*types.User, bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrCreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate user ID: %w", err)
	}

	u, err := scanUser(
		s.db.Statement(ctx).
			Insert("users").
			Columns("id", "username").
			Values(id.String(), username).
			Suffix("ON CONFLICT (username) DO NOTHING RETURNING " + userColumns).
			QueryRowContext(ctx),
	)

	if err == nil {
		return u, true, nil
	}

	if !isNoRows(err) {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	// The row already existed, the insert was a no-op. Fetch it.
	u, err = s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}

	return u, false, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByUsername")
	defer span.End()

	u, err := scanUser(
		s.db.Statement(ctx).
			Select(userColumns).
			From("users").
			Where(sq.Eq{"username": username}).
			QueryRowContext(ctx),
	)

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	u, err := scanUser(
		s.db.Statement(ctx).
			Select(userColumns).
			From("users").
			Where(sq.Eq{"id": id}).
			QueryRowContext(ctx),
	)

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// UpdateUser updates the fields named in paths, PATCH style. A write that
// collides with the per-cohort nickname constraint returns
// ErrNicknameConflict.
func (s *Storage) UpdateUser(ctx context.Context, u *types.User, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateUser")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "nickname":
			updateMap["nickname"] = u.Nickname
		case "last_name":
			updateMap["last_name"] = u.LastName
		case "email":
			updateMap["email"] = u.Email
		case "is_staff":
			updateMap["is_staff"] = u.IsStaff
		case "is_active":
			updateMap["is_active"] = u.IsActive
		case "time_zone":
			updateMap["time_zone"] = u.TimeZone
		case "cohort_id":
			updateMap["cohort_id"] = u.CohortID
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	res, err := s.db.Statement(ctx).
		Update("users").
		SetMap(updateMap).
		Where(sq.Eq{"id": u.ID}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
