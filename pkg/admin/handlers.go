// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package admin exposes the cohort management API. The routes are mounted
// behind the bearer-token middleware; producers never see them.
package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/lti-service/internal/logging"
	"github.com/canonical/lti-service/internal/monitoring"
	"github.com/canonical/lti-service/internal/storage"
	"github.com/canonical/lti-service/internal/tracing"
	"github.com/canonical/lti-service/internal/types"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	validate *validator.Validate,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service:  service,
		validate: validate,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/cohorts", a.listCohorts)
	mux.Post("/api/v0/cohorts", a.createCohort)
	mux.Get("/api/v0/cohorts/{id}", a.getCohort)
	mux.Patch("/api/v0/cohorts/{id}", a.updateCohort)
	mux.Post("/api/v0/cohorts/{id}/default", a.setDefault)
}

// cohortRequest is the write payload. The OAuth secret is accepted on
// writes but never echoed back in responses.
type cohortRequest struct {
	Title         string  `json:"title" validate:"required,max=500"`
	LoginURL      string  `json:"login_url" validate:"required,url,max=500"`
	EnrolURL      *string `json:"enrol_url" validate:"omitempty,url,max=500"`
	OAuthKey      string  `json:"oauth_key" validate:"required,max=255,oauthkey"`
	OAuthSecret   string  `json:"oauth_secret" validate:"required,max=255,oauthsecret"`
	PersistParams *string `json:"persist_params"`
}

type cohortResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	LoginURL      string    `json:"login_url"`
	EnrolURL      *string   `json:"enrol_url,omitempty"`
	OAuthKey      string    `json:"oauth_key"`
	PersistParams *string   `json:"persist_params,omitempty"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	ModifiedAt    time.Time `json:"modified_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(c *types.Cohort) *cohortResponse {
	return &cohortResponse{
		ID:            c.ID,
		Title:         c.Title,
		LoginURL:      c.LoginURL,
		EnrolURL:      c.EnrolURL,
		OAuthKey:      c.OAuthKey,
		PersistParams: c.PersistParams,
		IsDefault:     c.IsDefault,
		CreatedAt:     c.CreatedAt,
		ModifiedAt:    c.ModifiedAt,
	}
}

func (a *API) listCohorts(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "admin.API.listCohorts")
	defer span.End()

	cohorts, err := a.service.ListCohorts(ctx)
	if err != nil {
		a.logger.Errorf("failed to list cohorts: %v", err)
		a.writeError(w, http.StatusInternalServerError, "failed to list cohorts")
		return
	}

	resp := make([]*cohortResponse, len(cohorts))
	for i, c := range cohorts {
		resp[i] = toResponse(c)
	}

	a.writeJSON(w, http.StatusOK, resp)
}

func (a *API) getCohort(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "admin.API.getCohort")
	defer span.End()

	c, err := a.service.GetCohort(ctx, chi.URLParam(r, "id"))
	if err != nil {
		a.writeServiceError(w, err, "failed to get cohort")
		return
	}

	a.writeJSON(w, http.StatusOK, toResponse(c))
}

func (a *API) createCohort(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "admin.API.createCohort")
	defer span.End()

	req, ok := a.decodeCohort(w, r)
	if !ok {
		return
	}

	c, err := a.service.CreateCohort(ctx, &types.Cohort{
		Title:         req.Title,
		LoginURL:      req.LoginURL,
		EnrolURL:      req.EnrolURL,
		OAuthKey:      req.OAuthKey,
		OAuthSecret:   req.OAuthSecret,
		PersistParams: req.PersistParams,
	})
	if err != nil {
		a.writeServiceError(w, err, "failed to create cohort")
		return
	}

	a.writeJSON(w, http.StatusCreated, toResponse(c))
}

func (a *API) updateCohort(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "admin.API.updateCohort")
	defer span.End()

	req, ok := a.decodeCohort(w, r)
	if !ok {
		return
	}

	update := &types.Cohort{
		ID:            chi.URLParam(r, "id"),
		Title:         req.Title,
		LoginURL:      req.LoginURL,
		EnrolURL:      req.EnrolURL,
		OAuthKey:      req.OAuthKey,
		OAuthSecret:   req.OAuthSecret,
		PersistParams: req.PersistParams,
	}

	paths := []string{"title", "login_url", "enrol_url", "oauth_key", "oauth_secret", "persist_params"}
	c, err := a.service.UpdateCohort(ctx, update, paths)
	if err != nil {
		a.writeServiceError(w, err, "failed to update cohort")
		return
	}

	a.writeJSON(w, http.StatusOK, toResponse(c))
}

func (a *API) setDefault(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "admin.API.setDefault")
	defer span.End()

	if err := a.service.SetDefault(ctx, chi.URLParam(r, "id")); err != nil {
		a.writeServiceError(w, err, "failed to set default cohort")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) decodeCohort(w http.ResponseWriter, r *http.Request) (*cohortRequest, bool) {
	var req cohortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	if err := a.validate.Struct(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	return &req, true
}

func (a *API) writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		a.writeError(w, http.StatusNotFound, "cohort not found")
	case errors.Is(err, storage.ErrDuplicateKey):
		a.writeError(w, http.StatusConflict, "oauth key already registered")
	default:
		a.logger.Errorf("%s: %v", msg, err)
		a.writeError(w, http.StatusInternalServerError, msg)
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, errorResponse{Error: msg})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
