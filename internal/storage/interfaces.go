// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/lti-service/internal/types"
)

type StorageInterface interface {
	CreateCohort(ctx context.Context, c *types.Cohort) (*types.Cohort, error)
	UpdateCohort(ctx context.Context, c *types.Cohort, paths []string) error
	GetCohortByID(ctx context.Context, id string) (*types.Cohort, error)
	FindCohortByKey(ctx context.Context, key string) (*types.Cohort, error)
	GetDefaultCohort(ctx context.Context) (*types.Cohort, error)
	ListCohorts(ctx context.Context) ([]*types.Cohort, error)
	SetDefaultCohort(ctx context.Context, id string) error
	ListCredentials(ctx context.Context) (map[string]string, error)

	GetOrCreateUser(ctx context.Context, username string) (*types.User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) error

	AddUserToGroup(ctx context.Context, userID, group string) error
	RemoveUserFromGroup(ctx context.Context, userID, group string) error
	ListUserGroups(ctx context.Context, userID string) ([]string, error)
}
