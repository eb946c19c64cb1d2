package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chanspick/PiCom/internal/usecase/offer"
	"github.com/chanspick/PiCom/pkg/util"
)

// OfferHandler handles ask and bid submission.
type OfferHandler struct {
	offers *offer.Usecase
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(offers *offer.Usecase) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// submitOfferRequest is the JSON request body for ask and bid submission.
type submitOfferRequest struct {
	Price float64 `json:"price"`
}

// submitOfferResponse acknowledges an accepted offer. The offer is
// processed asynchronously by the engine, hence 202.
type submitOfferResponse struct {
	OfferID string `json:"offerId"`
	Status  string `json:"status"`
}

// SubmitAsk handles POST /v1/products/{productID}/asks.
func (h *OfferHandler) SubmitAsk(w http.ResponseWriter, r *http.Request) {
	var req submitOfferRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteUsecaseError(w, err)
		return
	}

	ask, err := h.offers.SubmitAsk(r.Context(), chi.URLParam(r, "productID"), util.GetActorID(r.Context()), req.Price)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, submitOfferResponse{
		OfferID: ask.ID,
		Status:  string(ask.Status),
	})
}

// SubmitBid handles POST /v1/products/{productID}/bids.
func (h *OfferHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	var req submitOfferRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteUsecaseError(w, err)
		return
	}

	bid, err := h.offers.SubmitBid(r.Context(), chi.URLParam(r, "productID"), util.GetActorID(r.Context()), req.Price)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, submitOfferResponse{
		OfferID: bid.ID,
		Status:  string(bid.Status),
	})
}

// GetOffer handles GET /v1/offers/{offerID}.
func (h *OfferHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	found, err := h.offers.GetByID(r.Context(), chi.URLParam(r, "offerID"))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, found)
}
