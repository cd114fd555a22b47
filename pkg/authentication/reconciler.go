// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/storage"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/internal/types"
)

// RoleInstructor is the LTI role that grants staff status.
const RoleInstructor = "Instructor"

var usernamePattern = regexp.MustCompile(`^[\w.@+:-]+$`)

// Reconciler provisions and updates local users from verified launch
// claims. Nickname is never written here; it belongs to the profile form.
type Reconciler struct {
	storage StorageInterface

	// unknownUserPrefix prefixes the synthesized username when the launch
	// carries no usable person identifier.
	unknownUserPrefix string
	staffGroup        string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewReconciler(
	storage StorageInterface,
	unknownUserPrefix string,
	staffGroup string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Reconciler {
	return &Reconciler{
		storage:           storage,
		unknownUserPrefix: unknownUserPrefix,
		staffGroup:        staffGroup,
		tracer:            tracer,
		monitor:           monitor,
		logger:            logger,
	}
}

// Reconcile gets or creates the user for the claims and applies the
// launch's updates: cohort assignment, email and family name overwrite
// unconditionally, staff flag follows the Instructor role. A cohort
// reassignment that would collide on nickname surfaces
// storage.ErrNicknameConflict.
func (rc *Reconciler) Reconcile(ctx context.Context, claims *types.LaunchClaims) (*types.User, error) {
	ctx, span := rc.tracer.Start(ctx, "authentication.Reconciler.Reconcile")
	defer span.End()

	username := rc.username(claims)

	user, created, err := rc.storage.GetOrCreateUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}
	if created {
		rc.logger.Infof("provisioned user %s from launch", username)
	}

	var paths []string

	if claims.Cohort != nil && claims.Cohort.ID != "" {
		if user.CohortID == nil || *user.CohortID != claims.Cohort.ID {
			user.CohortID = &claims.Cohort.ID
			paths = append(paths, "cohort_id")
		}
	}
	if claims.Email != "" && user.Email != claims.Email {
		user.Email = claims.Email
		paths = append(paths, "email")
	}
	if claims.FamilyName != "" && user.LastName != claims.FamilyName {
		user.LastName = claims.FamilyName
		paths = append(paths, "last_name")
	}

	staff := claims.HasRole(RoleInstructor)
	if user.IsStaff != staff {
		user.IsStaff = staff
		paths = append(paths, "is_staff")
	}

	if len(paths) > 0 {
		if err := rc.storage.UpdateUser(ctx, user, paths); err != nil {
			if errors.Is(err, storage.ErrNicknameConflict) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	rc.syncStaffGroup(ctx, user, staff)

	return user, nil
}

// username prefers the launch's person identifier; an absent or invalid
// one is replaced by a synthesized prefix+uuid username.
func (rc *Reconciler) username(claims *types.LaunchClaims) string {
	if claims.PersonID != "" && usernamePattern.MatchString(claims.PersonID) {
		return claims.PersonID
	}
	return rc.unknownUserPrefix + uuid.NewString()
}

// syncStaffGroup keeps the configured staff group's membership aligned
// with the staff flag. The sync is best effort: a duplicate membership
// means the data was already consistent, anything else is logged and
// swallowed rather than failing the launch.
func (rc *Reconciler) syncStaffGroup(ctx context.Context, user *types.User, staff bool) {
	if rc.staffGroup == "" {
		return
	}

	if staff {
		err := rc.storage.AddUserToGroup(ctx, user.ID, rc.staffGroup)
		switch {
		case err == nil:
		case errors.Is(err, storage.ErrDuplicateKey):
			rc.logger.Debugf("user %s already in group %s", user.Username, rc.staffGroup)
		default:
			rc.logger.Warnf("failed to add user %s to group %s: %v", user.Username, rc.staffGroup, err)
		}
		return
	}

	if err := rc.storage.RemoveUserFromGroup(ctx, user.ID, rc.staffGroup); err != nil {
		rc.logger.Warnf("failed to remove user %s from group %s: %v", user.Username, rc.staffGroup, err)
	}
}
