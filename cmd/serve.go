// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/lti-service/internal/config"
	"github.com/canonical/lti-service/internal/db"
	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring/prometheus"
	"github.com/canonical/lti-service/internal/secretbox"
	"github.com/canonical/lti-service/internal/storage"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/pkg/authentication"
	"github.com/canonical/lti-service/pkg/cohort"
	"github.com/canonical/lti-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("lti-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	stateBox, err := secretbox.New(specs.StateCookieKey)
	if err != nil {
		return fmt.Errorf("invalid state cookie key: %v", err)
	}

	var adminVerifier authentication.TokenVerifierInterface
	if specs.AdminIssuer != "" {
		adminVerifier, err = authentication.NewJWTAuthenticator(
			context.Background(),
			specs.AdminIssuer,
			specs.AdminJWKSURL,
			specs.AdminAllowedSubjects,
			specs.AdminRequiredScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to set up admin authentication: %v", err)
		}
		logger.Info("Admin API authentication is enabled")
	} else {
		adminVerifier = authentication.NewNoopVerifier()
		logger.Info("Using noop admin authenticator")
	}

	router := web.NewRouter(
		web.Config{
			StaticCohort: &cohort.StaticConfig{
				Title:         specs.StaticCohortTitle,
				LoginURL:      specs.StaticCohortLoginURL,
				EnrolURL:      specs.StaticCohortEnrolURL,
				PersistParams: specs.StaticPersistParams,
				Credentials:   specs.OAuthCredentials,
			},
			StaticCredentials:     specs.OAuthCredentials,
			CredentialCacheMaxAge: specs.CredentialCacheMaxAge,

			UnknownUserPrefix: specs.UnknownUserPrefix,
			StaffGroup:        specs.StaffGroup,

			TimestampMaxAge:       specs.TimestampMaxAge,
			RejectStaleTimestamps: specs.RejectStaleTimestamps,

			StateBox:               stateBox,
			ScriptPrefix:           specs.ScriptPrefix,
			DefaultRedirectTarget:  specs.DefaultRedirectTarget,
			SecureCookies:          specs.SecureCookies,
			StateCookieMaxLifetime: specs.StateCookieMaxLifetime,

			AdminTokenVerifier: adminVerifier,
		},
		s,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
