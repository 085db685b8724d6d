package http_handlers

import (
	"net/http"

	"github.com/baechuer/skillmarket/internal/application/catalog"
	"github.com/baechuer/skillmarket/internal/transport/http/dto"
	"github.com/baechuer/skillmarket/internal/transport/http/middleware"
	"github.com/baechuer/skillmarket/internal/transport/http/response"
)

type CatalogHandler struct {
	svc *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GET /api/work?q=&location=
func (h *CatalogHandler) ListWork(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListWork(r.Context(), queryFrom(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewListView(items, dto.NewWorkView))
}

func (h *CatalogHandler) PostWork(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req dto.WorkRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	item, err := h.svc.PostWork(r.Context(), userID, req.Draft())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewWorkView(item))
}

// GET /api/services?q=&location=
func (h *CatalogHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListCandidates(r.Context(), queryFrom(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewListView(items, dto.NewCandidateView))
}

func (h *CatalogHandler) PostCandidate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req dto.CandidateRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	item, err := h.svc.PostCandidate(r.Context(), userID, req.Draft())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewCandidateView(item))
}

func queryFrom(r *http.Request) catalog.Query {
	v := r.URL.Query()
	return catalog.Query{Text: v.Get("q"), Location: v.Get("location")}
}
