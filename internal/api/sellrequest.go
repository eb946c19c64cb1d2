package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	sellrequestv1 "github.com/chanspick/PiCom/internal/domain/sellrequest/v1"
	"github.com/chanspick/PiCom/internal/usecase/sellrequest"
	"github.com/chanspick/PiCom/pkg/util"
)

// SellRequestHandler handles the sell-request pipeline.
type SellRequestHandler struct {
	requests *sellrequest.Usecase
}

// NewSellRequestHandler creates a new SellRequestHandler.
func NewSellRequestHandler(requests *sellrequest.Usecase) *SellRequestHandler {
	return &SellRequestHandler{requests: requests}
}

type submitSellRequest struct {
	PartID    string  `json:"partId"`
	Price     float64 `json:"price"`
	Condition string  `json:"condition"`
}

// Submit handles POST /v1/sell-requests.
func (h *SellRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitSellRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteUsecaseError(w, err)
		return
	}

	created, err := h.requests.Submit(r.Context(), req.PartID, util.GetActorID(r.Context()), req.Price, req.Condition)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// Get handles GET /v1/sell-requests/{requestID}.
func (h *SellRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.requests.GetByID(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, found)
}

// List handles GET /v1/sell-requests. Defaults to the review queue.
func (h *SellRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	status := sellrequestv1.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = sellrequestv1.StatusSubmitted
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	requests, err := h.requests.ListByStatus(r.Context(), status, limit)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, requests)
}

// Approve handles POST /v1/sell-requests/{requestID}/approve and
// returns the listing created from the request.
func (h *SellRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	created, err := h.requests.Approve(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

type rejectSellRequest struct {
	Reason string `json:"reason"`
}

// Reject handles POST /v1/sell-requests/{requestID}/reject.
func (h *SellRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectSellRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteUsecaseError(w, err)
		return
	}

	if err := h.requests.Reject(r.Context(), chi.URLParam(r, "requestID"), req.Reason); err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}
