// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	cohortTitle         string
	cohortLoginURL      string
	cohortEnrolURL      string
	cohortOAuthKey      string
	cohortOAuthSecret   string
	cohortPersistParams string
)

// cohortJSON mirrors the admin API's cohort payloads.
type cohortJSON struct {
	ID            string  `json:"id,omitempty"`
	Title         string  `json:"title"`
	LoginURL      string  `json:"login_url"`
	EnrolURL      *string `json:"enrol_url,omitempty"`
	OAuthKey      string  `json:"oauth_key"`
	OAuthSecret   string  `json:"oauth_secret,omitempty"`
	PersistParams *string `json:"persist_params,omitempty"`
	IsDefault     bool    `json:"is_default,omitempty"`
}

var cohortCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Manage cohorts",
}

var listCohortsCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered cohorts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cohorts []cohortJSON
		if err := newAdminClient().do(context.Background(), http.MethodGet, "/api/v0/cohorts", nil, &cohorts); err != nil {
			return fmt.Errorf("failed to list cohorts: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tOAUTH KEY\tDEFAULT")
		for _, c := range cohorts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", c.ID, c.Title, c.OAuthKey, c.IsDefault)
		}
		return w.Flush()
	},
}

var getCohortCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a cohort",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var c cohortJSON
		if err := newAdminClient().do(context.Background(), http.MethodGet, "/api/v0/cohorts/"+args[0], nil, &c); err != nil {
			return fmt.Errorf("failed to get cohort: %w", err)
		}

		fmt.Printf("ID:\t%s\nTitle:\t%s\nLogin URL:\t%s\nOAuth key:\t%s\nDefault:\t%v\n", c.ID, c.Title, c.LoginURL, c.OAuthKey, c.IsDefault)
		if c.EnrolURL != nil {
			fmt.Printf("Enrol URL:\t%s\n", *c.EnrolURL)
		}
		if c.PersistParams != nil {
			fmt.Printf("Persist params:\t%s\n", *c.PersistParams)
		}
		return nil
	},
}

var createCohortCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new cohort",
	RunE: func(cmd *cobra.Command, args []string) error {
		var created cohortJSON
		if err := newAdminClient().do(context.Background(), http.MethodPost, "/api/v0/cohorts", cohortPayload(), &created); err != nil {
			return fmt.Errorf("failed to create cohort: %w", err)
		}

		fmt.Printf("Cohort created: %s (ID: %s)\n", created.Title, created.ID)
		return nil
	},
}

var updateCohortCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a cohort",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var updated cohortJSON
		if err := newAdminClient().do(context.Background(), http.MethodPatch, "/api/v0/cohorts/"+args[0], cohortPayload(), &updated); err != nil {
			return fmt.Errorf("failed to update cohort: %w", err)
		}

		fmt.Printf("Cohort updated: %s (ID: %s)\n", updated.Title, updated.ID)
		return nil
	},
}

var setDefaultCohortCmd = &cobra.Command{
	Use:   "set-default [id]",
	Short: "Make a cohort the fallback for unassigned users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newAdminClient().do(context.Background(), http.MethodPost, "/api/v0/cohorts/"+args[0]+"/default", nil, nil); err != nil {
			return fmt.Errorf("failed to set default cohort: %w", err)
		}

		fmt.Printf("Default cohort set: %s\n", args[0])
		return nil
	},
}

func cohortPayload() *cohortJSON {
	c := &cohortJSON{
		Title:       cohortTitle,
		LoginURL:    cohortLoginURL,
		OAuthKey:    cohortOAuthKey,
		OAuthSecret: cohortOAuthSecret,
	}
	if cohortEnrolURL != "" {
		c.EnrolURL = &cohortEnrolURL
	}
	if cohortPersistParams != "" {
		c.PersistParams = &cohortPersistParams
	}
	return c
}

func init() {
	for _, c := range []*cobra.Command{createCohortCmd, updateCohortCmd} {
		c.Flags().StringVar(&cohortTitle, "title", "", "Cohort title")
		c.Flags().StringVar(&cohortLoginURL, "login-url", "", "External login URL")
		c.Flags().StringVar(&cohortEnrolURL, "enrol-url", "", "External enrolment URL")
		c.Flags().StringVar(&cohortOAuthKey, "oauth-key", "", "OAuth consumer key")
		c.Flags().StringVar(&cohortOAuthSecret, "oauth-secret", "", "OAuth shared secret")
		c.Flags().StringVar(&cohortPersistParams, "persist-params", "", "Newline-delimited launch parameters to carry across redirects")
	}

	cohortCmd.AddCommand(listCohortsCmd)
	cohortCmd.AddCommand(getCohortCmd)
	cohortCmd.AddCommand(createCohortCmd)
	cohortCmd.AddCommand(updateCohortCmd)
	cohortCmd.AddCommand(setDefaultCohortCmd)
	rootCmd.AddCommand(cohortCmd)
}
