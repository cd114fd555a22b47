// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import "context"

type ResolverInterface interface {
	LookupSecret(ctx context.Context, consumerKey string) (string, bool, error)
	Snapshot(ctx context.Context) (map[string]string, error)
}

type StorageInterface interface {
	ListCredentials(ctx context.Context) (map[string]string, error)
}
