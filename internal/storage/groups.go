// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// AddUserToGroup records the user's membership in the named group. Adding
// an existing membership returns ErrDuplicateKey.
func (s *Storage) AddUserToGroup(ctx context.Context, userID, group string) error {
	ctx, span := s.tracer.Start(ctx, "storage.AddUserToGroup")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("user_groups").
		Columns("user_id", "group_name").
		Values(userID, group).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err)
	}

	return nil
}

// RemoveUserFromGroup drops the membership if present. Removing a
// membership that does not exist is a no-op.
func (s *Storage) RemoveUserFromGroup(ctx context.Context, userID, group string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveUserFromGroup")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("user_groups").
		Where(sq.Eq{"user_id": userID, "group_name": group}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to remove user from group: %w", err)
	}

	return nil
}

// ListUserGroups returns the names of the groups the user belongs to.
func (s *Storage) ListUserGroups(ctx context.Context, userID string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUserGroups")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("group_name").
		From("user_groups").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("group_name ASC").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list user groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}
