// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "errors"

// ErrPermissionDenied is the single condition every launch rejection
// collapses into. Handlers translate it to a 403; the reason only ever
// reaches the security log.
var ErrPermissionDenied = errors.New("authentication denied")
