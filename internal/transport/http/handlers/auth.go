package http_handlers

import (
	"net/http"
	"time"

	"github.com/baechuer/skillmarket/internal/application/auth"
	"github.com/baechuer/skillmarket/internal/domain"
	"github.com/baechuer/skillmarket/internal/infrastructure/security"
	"github.com/baechuer/skillmarket/internal/transport/http/dto"
	"github.com/baechuer/skillmarket/internal/transport/http/middleware"
	"github.com/baechuer/skillmarket/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *auth.Service
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(svc *auth.Service, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Fields())
	middleware.AuthAttemptsTotal.WithLabelValues("register", middleware.Outcome(err)).Inc()
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.SetRefreshToken(w, res.Tokens.RefreshToken, h.refreshTTL, h.secureCookies)
	response.Created(w, dto.NewAuthData(res))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	middleware.AuthAttemptsTotal.WithLabelValues("login", middleware.Outcome(err)).Inc()
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.SetRefreshToken(w, res.Tokens.RefreshToken, h.refreshTTL, h.secureCookies)
	response.OK(w, dto.NewAuthData(res))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshTok, err := security.ReadRefreshToken(r)
	if err != nil || refreshTok == "" {
		response.WriteError(w, r, domain.ErrRefreshTokenInvalid())
		return
	}

	res, err := h.svc.Refresh(r.Context(), refreshTok)
	middleware.AuthAttemptsTotal.WithLabelValues("refresh", middleware.Outcome(err)).Inc()
	if err != nil {
		if domain.KindOf(err) == domain.KindAuth {
			security.ClearRefreshToken(w, h.secureCookies)
		}
		response.WriteError(w, r, err)
		return
	}

	security.SetRefreshToken(w, res.Tokens.RefreshToken, h.refreshTTL, h.secureCookies)
	response.OK(w, dto.NewAuthData(res))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	refreshTok, err := security.ReadRefreshToken(r)
	if err == nil && refreshTok != "" {
		_ = h.svc.Logout(r.Context(), refreshTok) // keep idempotent
	}

	security.ClearRefreshToken(w, h.secureCookies)
	response.NoContent(w)
}
