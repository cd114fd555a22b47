// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cohort

import (
	"context"

	"github.com/canonical/lti-service/internal/types"
)

type ServiceInterface interface {
	ResolveCurrent(ctx context.Context, user *types.User) (*types.Cohort, error)
	FindByKey(ctx context.Context, key string) (*types.Cohort, error)
	SetDefault(ctx context.Context, id string) error
	CreateCohort(ctx context.Context, c *types.Cohort) (*types.Cohort, error)
	UpdateCohort(ctx context.Context, c *types.Cohort, paths []string) (*types.Cohort, error)
	GetCohort(ctx context.Context, id string) (*types.Cohort, error)
	ListCohorts(ctx context.Context) ([]*types.Cohort, error)
}

type StorageInterface interface {
	CreateCohort(ctx context.Context, c *types.Cohort) (*types.Cohort, error)
	UpdateCohort(ctx context.Context, c *types.Cohort, paths []string) error
	GetCohortByID(ctx context.Context, id string) (*types.Cohort, error)
	FindCohortByKey(ctx context.Context, key string) (*types.Cohort, error)
	GetDefaultCohort(ctx context.Context) (*types.Cohort, error)
	ListCohorts(ctx context.Context) ([]*types.Cohort, error)
	SetDefaultCohort(ctx context.Context, id string) error
}
