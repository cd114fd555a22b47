// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package validation builds the validator instance shared by the admin API
// and the profile form, with the LTI character-set tags registered.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	oauthKeyPattern    = regexp.MustCompile(`^[\w.@+:-]+$`)
	oauthSecretPattern = regexp.MustCompile(`^[\w\s.@+:-]+$`)
	usernamePattern    = regexp.MustCompile(`^[\w.@+:-]+$`)
	nicknamePattern    = regexp.MustCompile(`^[\w.@+-]+$`)
)

// NewValidator returns a validator with the oauthkey, oauthsecret,
// username and nickname tags registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("oauthkey", func(fl validator.FieldLevel) bool {
		return oauthKeyPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("oauthsecret", func(fl validator.FieldLevel) bool {
		return oauthSecretPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
		return nicknamePattern.MatchString(fl.Field().String())
	})

	return v
}
