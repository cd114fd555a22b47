// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/lti-service/internal/db"
	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

const cohortColumns = "id, title, login_url, enrol_url, oauth_key, oauth_secret, persist_params, is_default, created_at, modified_at"

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func scanCohort(row sq.RowScanner) (*types.Cohort, error) {
	var c types.Cohort
	err := row.Scan(
		&c.ID, &c.Title, &c.LoginURL, &c.EnrolURL,
		&c.OAuthKey, &c.OAuthSecret, &c.PersistParams,
		&c.IsDefault, &c.CreatedAt, &c.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) CreateCohort(ctx context.Context, c *types.Cohort) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCohort")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cohort ID: %w", err)
	}

	created, err := scanCohort(
		s.db.Statement(ctx).
			Insert("cohorts").
			Columns("id", "title", "login_url", "enrol_url", "oauth_key", "oauth_secret", "persist_params").
			Values(id.String(), c.Title, c.LoginURL, c.EnrolURL, c.OAuthKey, c.OAuthSecret, c.PersistParams).
			Suffix("RETURNING " + cohortColumns).
			QueryRowContext(ctx),
	)

	if err != nil {
		return nil, mapWriteError(err)
	}

	return created, nil
}

// UpdateCohort updates the fields named in paths, PATCH style. Unknown
// paths are ignored.
func (s *Storage) UpdateCohort(ctx context.Context, c *types.Cohort, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCohort")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "title":
			updateMap["title"] = c.Title
		case "login_url":
			updateMap["login_url"] = c.LoginURL
		case "enrol_url":
			updateMap["enrol_url"] = c.EnrolURL
		case "oauth_key":
			updateMap["oauth_key"] = c.OAuthKey
		case "oauth_secret":
			updateMap["oauth_secret"] = c.OAuthSecret
		case "persist_params":
			updateMap["persist_params"] = c.PersistParams
		}
	}

	if len(updateMap) == 0 {
		return nil
	}
	updateMap["modified_at"] = sq.Expr("now()")

	res, err := s.db.Statement(ctx).
		Update("cohorts").
		SetMap(updateMap).
		Where(sq.Eq{"id": c.ID}).
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

func (s *Storage) GetCohortByID(ctx context.Context, id string) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCohortByID")
	defer span.End()

	c, err := scanCohort(
		s.db.Statement(ctx).
			Select(cohortColumns).
			From("cohorts").
			Where(sq.Eq{"id": id}).
			QueryRowContext(ctx),
	)

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cohort: %w", err)
	}

	return c, nil
}

// FindCohortByKey returns the first cohort matching the OAuth consumer key,
// or nil when none matches. Duplicate keys are a data error the schema
// prevents, but if one slips in the oldest row wins rather than failing.
func (s *Storage) FindCohortByKey(ctx context.Context, key string) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "storage.FindCohortByKey")
	defer span.End()

	c, err := scanCohort(
		s.db.Statement(ctx).
			Select(cohortColumns).
			From("cohorts").
			Where(sq.Eq{"oauth_key": key}).
			OrderBy("created_at ASC").
			Limit(1).
			QueryRowContext(ctx),
	)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cohort by key: %w", err)
	}

	return c, nil
}

// GetDefaultCohort returns the cohort flagged is_default, or nil when the
// registry has none.
func (s *Storage) GetDefaultCohort(ctx context.Context) (*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetDefaultCohort")
	defer span.End()

	c, err := scanCohort(
		s.db.Statement(ctx).
			Select(cohortColumns).
			From("cohorts").
			Where(sq.Eq{"is_default": true}).
			Limit(1).
			QueryRowContext(ctx),
	)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default cohort: %w", err)
	}

	return c, nil
}

func (s *Storage) ListCohorts(ctx context.Context) ([]*types.Cohort, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCohorts")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(cohortColumns).
		From("cohorts").
		OrderBy("created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cohorts: %w", err)
	}
	defer rows.Close()

	var cohorts []*types.Cohort
	for rows.Next() {
		var c types.Cohort
		if err := rows.Scan(
			&c.ID, &c.Title, &c.LoginURL, &c.EnrolURL,
			&c.OAuthKey, &c.OAuthSecret, &c.PersistParams,
			&c.IsDefault, &c.CreatedAt, &c.ModifiedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cohort: %w", err)
		}
		cohorts = append(cohorts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cohort rows: %w", err)
	}

	return cohorts, nil
}

// SetDefaultCohort flags one cohort as the default, clearing the flag from
// every other row in the same transaction so at most one default exists.
func (s *Storage) SetDefaultCohort(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetDefaultCohort")
	defer span.End()

	return s.db.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.db.Statement(txCtx).
			Update("cohorts").
			Set("is_default", false).
			Where(sq.NotEq{"id": id}).
			Where(sq.Eq{"is_default": true}).
			ExecContext(txCtx); err != nil {
			return fmt.Errorf("failed to clear default flag: %w", err)
		}

		res, err := s.db.Statement(txCtx).
			Update("cohorts").
			Set("is_default", true).
			Set("modified_at", sq.Expr("now()")).
			Where(sq.Eq{"id": id}).
			ExecContext(txCtx)
		if err != nil {
			return fmt.Errorf("failed to set default flag: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		return nil
	})
}

// ListCredentials returns every (oauth_key, oauth_secret) pair in the
// registry for the credential resolver to merge under static configuration.
func (s *Storage) ListCredentials(ctx context.Context) (map[string]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCredentials")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("oauth_key", "oauth_secret").
		From("cohorts").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	creds := make(map[string]string)
	for rows.Next() {
		var key, secret string
		if err := rows.Scan(&key, &secret); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds[key] = secret
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credential rows: %w", err)
	}

	return creds, nil
}
