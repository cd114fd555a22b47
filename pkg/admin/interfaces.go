// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

import (
	"context"

	"github.com/canonical/lti-service/internal/types"
)

// ServiceInterface is the cohort registry surface the admin API manages.
type ServiceInterface interface {
	ListCohorts(ctx context.Context) ([]*types.Cohort, error)
	GetCohort(ctx context.Context, id string) (*types.Cohort, error)
	CreateCohort(ctx context.Context, c *types.Cohort) (*types.Cohort, error)
	UpdateCohort(ctx context.Context, c *types.Cohort, paths []string) (*types.Cohort, error)
	SetDefault(ctx context.Context, id string) error
}
