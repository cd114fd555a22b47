// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package launch exposes the LTI-facing endpoints: the signed launch post,
// the login/enrol redirects towards the producer, and the first-launch
// profile form.
package launch

import (
	"context"
	"errors"
	"net/http"
	"strings"
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
	auth     AuthenticatorInterface
	cohorts  CohortServiceInterface
	storage  StorageInterface
	carrier  StateCarrierInterface
	sessions SessionInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	auth AuthenticatorInterface,
	cohorts CohortServiceInterface,
	storage StorageInterface,
	carrier StateCarrierInterface,
	sessions SessionInterface,
	validate *validator.Validate,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		auth:     auth,
		cohorts:  cohorts,
		storage:  storage,
		carrier:  carrier,
		sessions: sessions,
		validate: validate,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/lti/launch", a.launch)
	mux.Get("/lti/login", a.redirectHandler(FlowLogin))
	mux.Get("/lti/enrol", a.redirectHandler(FlowEnrol))
	mux.Get("/lti/profile", a.profileForm)
	mux.Post("/lti/profile", a.profileSubmit)
}

// launch is the endpoint producers post signed launches to. A verified
// launch either resumes the carried redirect or, for users without a
// nickname, lands on the profile form.
func (a *API) launch(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "launch.API.launch")
	defer span.End()

	user, err := a.auth.Authenticate(ctx, r)
	if err != nil {
		if errors.Is(err, storage.ErrNicknameConflict) {
			http.Error(w, "nickname already taken in the target cohort", http.StatusConflict)
			return
		}
		http.Error(w, "authentication denied", http.StatusForbidden)
		return
	}
	if user == nil {
		http.Error(w, "authentication denied", http.StatusForbidden)
		return
	}
	if !user.IsActive {
		http.Error(w, "account inactive", http.StatusForbidden)
		return
	}

	if err := a.sessions.Issue(w, user.ID); err != nil {
		a.logger.Errorf("failed to issue session for user %s: %v", user.Username, err)
		// The profile form cannot be submitted without a session, so do
		// not strand a nickname-less user on it.
		if user.Nickname == nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	c, err := a.cohorts.ResolveCurrent(ctx, user)
	if err != nil {
		a.logger.Errorf("failed to resolve cohort for user %s: %v", user.Username, err)
	}

	if user.Nickname == nil {
		a.renderProfileForm(w, http.StatusOK, profileFormData{
			CustomNext: r.PostFormValue("custom_next"),
		})
		return
	}

	next, _ := a.carrier.Resume(ctx, w, r, c)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// redirectHandler begins the named flow by sending the browser out to the
// current cohort's external URL, carrying persist parameters in the state
// cookie.
func (a *API) redirectHandler(flow Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := a.tracer.Start(r.Context(), "launch.API.redirect")
		defer span.End()

		c, err := a.cohorts.ResolveCurrent(ctx, nil)
		if err != nil {
			a.logger.Errorf("failed to resolve cohort: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if c == nil {
			http.Error(w, "no cohort configured", http.StatusNotFound)
			return
		}

		target, err := a.carrier.BeginRedirect(ctx, w, r, c, flow)
		if err != nil {
			a.logger.Errorf("failed to begin %s redirect: %v", flow, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, target, http.StatusFound)
	}
}

func (a *API) profileForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "launch.API.profileForm")
	defer span.End()

	user, ok := a.sessionUser(ctx, w, r)
	if !ok {
		return
	}

	data := profileFormData{}
	if user.Nickname != nil {
		data.Nickname = *user.Nickname
	}
	if user.TimeZone != nil {
		data.TimeZone = *user.TimeZone
	}

	a.renderProfileForm(w, http.StatusOK, data)
}

func (a *API) profileSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "launch.API.profileSubmit")
	defer span.End()

	user, ok := a.sessionUser(ctx, w, r)
	if !ok {
		return
	}

	nickname := strings.TrimSpace(r.PostFormValue("nickname"))
	timeZone := strings.TrimSpace(r.PostFormValue("time_zone"))
	data := profileFormData{
		Nickname:   nickname,
		TimeZone:   timeZone,
		CustomNext: r.PostFormValue("custom_next"),
	}

	if err := a.validate.Var(nickname, "required,max=255,nickname"); err != nil {
		data.Error = "nickname may only contain letters, digits and .@+-_"
		a.renderProfileForm(w, http.StatusOK, data)
		return
	}

	paths := []string{"nickname"}
	user.Nickname = &nickname

	if timeZone != "" {
		if _, err := time.LoadLocation(timeZone); err != nil {
			data.Error = "unknown time zone"
			a.renderProfileForm(w, http.StatusOK, data)
			return
		}
		user.TimeZone = &timeZone
		paths = append(paths, "time_zone")
	}

	if err := a.storage.UpdateUser(ctx, user, paths); err != nil {
		if errors.Is(err, storage.ErrNicknameConflict) {
			data.Error = "that nickname is already taken"
			a.renderProfileForm(w, http.StatusOK, data)
			return
		}
		a.logger.Errorf("failed to update profile for user %s: %v", user.Username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	c, err := a.cohorts.ResolveCurrent(ctx, user)
	if err != nil {
		a.logger.Errorf("failed to resolve cohort for user %s: %v", user.Username, err)
	}

	next, _ := a.carrier.Resume(ctx, w, r, c)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// sessionUser loads the launched user from the session cookie, writing the
// error response itself when there is none.
func (a *API) sessionUser(ctx context.Context, w http.ResponseWriter, r *http.Request) (*types.User, bool) {
	userID, ok := a.sessions.Read(r)
	if !ok {
		http.Error(w, "no active launch session", http.StatusForbidden)
		return nil, false
	}

	user, err := a.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.sessions.Clear(w)
			http.Error(w, "no active launch session", http.StatusForbidden)
			return nil, false
		}
		a.logger.Errorf("failed to load session user: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	if !user.IsActive {
		http.Error(w, "account inactive", http.StatusForbidden)
		return nil, false
	}

	return user, true
}

func (a *API) renderProfileForm(w http.ResponseWriter, status int, data profileFormData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := profileTemplate.Execute(w, data); err != nil {
		a.logger.Errorf("failed to render profile form: %v", err)
	}
}
