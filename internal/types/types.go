// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

// Cohort is one LTI producer integration, carrying its own OAuth 1.0a
// credentials and launch URLs.
type Cohort struct {
	ID            string    `db:"id" validate:"omitempty,uuid"`
	Title         string    `db:"title" validate:"required,max=500"`
	LoginURL      string    `db:"login_url" validate:"required,url,max=500"`
	EnrolURL      *string   `db:"enrol_url" validate:"omitempty,url,max=500"`
	OAuthKey      string    `db:"oauth_key" validate:"required,max=255,oauthkey"`
	OAuthSecret   string    `db:"oauth_secret" validate:"required,max=255,oauthsecret"`
	PersistParams *string   `db:"persist_params"`
	IsDefault     bool      `db:"is_default"`
	CreatedAt     time.Time `db:"created_at"`
	ModifiedAt    time.Time `db:"modified_at"`
}

// PersistParamNames parses the newline-delimited persist_params field into
// an ordered list of parameter names, skipping blank lines.
func (c *Cohort) PersistParamNames() []string {
	if c.PersistParams == nil {
		return nil
	}

	var names []string
	for _, line := range strings.Split(*c.PersistParams, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// User is a local account provisioned from LTI launch claims.
// Nickname is user-managed and unique within its cohort; it is never
// overwritten from launch claims.
type User struct {
	ID        string    `db:"id"`
	Username  string    `db:"username" validate:"required,max=255,username"`
	Nickname  *string   `db:"nickname" validate:"omitempty,max=255,nickname"`
	LastName  string    `db:"last_name" validate:"max=255"`
	Email     string    `db:"email" validate:"omitempty,email"`
	IsStaff   bool      `db:"is_staff"`
	IsActive  bool      `db:"is_active"`
	TimeZone  *string   `db:"time_zone"`
	CohortID  *string   `db:"cohort_id"`
	CreatedAt time.Time `db:"created_at"`
}

// LaunchClaims is the identity extracted from a verified LTI launch request.
type LaunchClaims struct {
	PersonID   string
	Email      string
	GivenName  string
	FamilyName string
	Roles      []string
	Cohort     *Cohort
}

// HasRole reports whether the launch carried the given LTI role.
func (c *LaunchClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
