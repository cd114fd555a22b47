// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"github.com/joho/godotenv"

	"github.com/canonical/lti-service/cmd"
)

func main() {
	// Ignore the error, the file may simply not be there.
	_ = godotenv.Load()

	cmd.Execute()
}
