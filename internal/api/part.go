package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	listingv1 "github.com/chanspick/PiCom/internal/domain/listing/v1"
	partv1 "github.com/chanspick/PiCom/internal/domain/part/v1"
	"github.com/chanspick/PiCom/internal/usecase/listing"
	"github.com/chanspick/PiCom/internal/usecase/part"
)

// PartHandler handles the parts catalog.
type PartHandler struct {
	parts    *part.Usecase
	listings *listing.Usecase
}

// NewPartHandler creates a new PartHandler.
func NewPartHandler(parts *part.Usecase, listings *listing.Usecase) *PartHandler {
	return &PartHandler{parts: parts, listings: listings}
}

type partRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Specs    string `json:"specs"`
}

// Create handles POST /v1/parts.
func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req partRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteUsecaseError(w, err)
		return
	}

	created, err := h.parts.Create(r.Context(), req.Name, partv1.Category(req.Category), req.Brand, req.Model, req.Specs)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// Get handles GET /v1/parts/{partID}.
func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.parts.GetByID(r.Context(), chi.URLParam(r, "partID"))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, found)
}

// List handles GET /v1/parts.
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	parts, err := h.parts.List(r.Context(), partv1.Category(r.URL.Query().Get("category")), limit)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, parts)
}

// Update handles PUT /v1/parts/{partID}. Name, category and brand
// changes fan out to the listings that denormalize them.
func (h *PartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req partRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteUsecaseError(w, err)
		return
	}

	updated, err := h.parts.Update(r.Context(), &partv1.Part{
		ID:       chi.URLParam(r, "partID"),
		Name:     req.Name,
		Category: partv1.Category(req.Category),
		Brand:    req.Brand,
		Model:    req.Model,
		Specs:    req.Specs,
	})
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// Listings handles GET /v1/parts/{partID}/listings.
func (h *PartHandler) Listings(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	listings, err := h.listings.ListByPart(
		r.Context(),
		chi.URLParam(r, "partID"),
		listingv1.Status(r.URL.Query().Get("status")),
		limit,
	)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, listings)
}
