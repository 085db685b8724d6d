package http_handlers

import (
	"net/http"

	"github.com/baechuer/skillmarket/internal/application/profile"
	"github.com/baechuer/skillmarket/internal/domain"
	"github.com/baechuer/skillmarket/internal/transport/http/dto"
	"github.com/baechuer/skillmarket/internal/transport/http/middleware"
	"github.com/baechuer/skillmarket/internal/transport/http/response"
)

// ProfileHandler serves the caller's own profile. The user id always comes
// from the auth middleware, never from the request.
type ProfileHandler struct {
	svc *profile.Service
}

func NewProfileHandler(svc *profile.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	u, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUserView(u))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.ProfilePatchRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), userID, req.Patch())
	middleware.ProfileUpdatesTotal.WithLabelValues(middleware.Outcome(err)).Inc()
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUserView(u))
}

func (h *ProfileHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.AvatarRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	up, err := h.svc.RequestAvatarUpload(r.Context(), userID, req.ContentType)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewAvatarView(up))
}
