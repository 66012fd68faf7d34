package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sociallogin/pkg/clientip"
	"github.com/dmitrymomot/sociallogin/pkg/environment"
	"github.com/dmitrymomot/sociallogin/pkg/logger"
	"github.com/dmitrymomot/sociallogin/pkg/oauth"
	"github.com/dmitrymomot/sociallogin/pkg/oauth/google"
	"github.com/dmitrymomot/sociallogin/pkg/requestid"
	"github.com/dmitrymomot/sociallogin/pkg/statestore"
)

const stateParam = "state"

type handler struct {
	provider  *google.Provider
	sender    oauth.Sender
	states    statestore.Store
	stateTTL  time.Duration
	directory *directory
	logger    *slog.Logger
}

func (h *handler) routes(env environment.Environment, metrics, live, ready http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(environment.Middleware(env))

	r.Get("/auth/"+h.provider.ID(), h.login)
	r.Get("/auth/"+h.provider.ID()+"/callback", h.callback)
	r.Get("/users/{userID}", h.user)

	r.Method(http.MethodGet, "/metrics", metrics)
	r.Method(http.MethodGet, "/healthz", live)
	r.Method(http.MethodGet, "/readyz", ready)
	return r
}

// login redirects to the consent screen with a fresh single-use state.
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authURL, err := h.provider.AuthorizationURL()
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "cannot build authorization url", err)
		return
	}
	state, err := statestore.Generate()
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "cannot generate state", err)
		return
	}
	if err := h.states.Save(ctx, state, h.stateTTL); err != nil {
		h.fail(w, r, http.StatusServiceUnavailable, "cannot save state", err)
		return
	}

	http.Redirect(w, r, authURL+"&"+stateParam+"="+oauth.Encode(state), http.StatusFound)
}

// callback redeems the code, fetches the profile and syncs the identity.
func (h *handler) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if reason := q.Get("error"); reason != "" {
		h.logger.InfoContext(ctx, "login declined by provider",
			logger.Event("login_declined"),
			slog.String("reason", reason),
		)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": reason})
		return
	}
	if err := h.states.Consume(ctx, q.Get(stateParam)); err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, statestore.ErrStateNotFound) && !errors.Is(err, statestore.ErrEmptyState) {
			status = http.StatusServiceUnavailable
		}
		h.fail(w, r, status, "invalid state", err)
		return
	}

	resp, err := h.provider.ExchangeCode(ctx, q.Get("code"))
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, oauth.ErrConfiguration) {
			status = http.StatusBadRequest
		}
		h.fail(w, r, status, "token exchange failed", err)
		return
	}
	token, err := h.provider.ExtractAccessToken(resp)
	if err != nil {
		h.fail(w, r, http.StatusBadGateway, "invalid token response", err)
		return
	}

	req := h.provider.ProtectedDataRequest(h.provider.DetailsURL())
	token.SetAuthHeader(&http.Request{Header: req.Header})
	profile, err := h.sender.Send(ctx, req)
	if err != nil {
		h.fail(w, r, http.StatusBadGateway, "profile request failed", err)
		return
	}
	if !profile.IsSuccess() {
		h.logger.WarnContext(ctx, "profile request rejected", logger.StatusCode(profile.StatusCode))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "profile request rejected"})
		return
	}

	incoming, err := h.provider.ParseProfile(profile.Body)
	if err != nil {
		h.fail(w, r, http.StatusBadGateway, "invalid profile response", err)
		return
	}
	userID, err := google.DeriveUserID(incoming)
	if err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, "profile has no email", err)
		return
	}

	identity, err := h.provider.Identity(h.directory.properties(userID), incoming)
	if err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, "cannot map identity", err)
		return
	}
	acc := h.directory.sync(h.provider.UserFolderPath(identity.UserID), identity, map[string]any{
		h.provider.OAuthIDPropertyPath(): userID,
	})

	h.logger.InfoContext(ctx, "identity synced",
		logger.Event("identity_synced"),
		logger.UserID(acc.UserID),
		logger.Provider(h.provider.ID()),
	)
	writeJSON(w, http.StatusOK, acc)
}

func (h *handler) user(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	v, ok := h.directory.users.Get(userID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg, logger.StatusCode(status), logger.Error(err))
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
