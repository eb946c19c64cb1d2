package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chanspick/PiCom/internal/usecase/listing"
	"github.com/chanspick/PiCom/pkg/util"
)

// ListingHandler handles the fixed-price path.
type ListingHandler struct {
	listings *listing.Usecase
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *listing.Usecase) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// buyListingResponse confirms a completed purchase.
type buyListingResponse struct {
	TradeID   string  `json:"tradeId"`
	ListingID string  `json:"listingId"`
	Price     float64 `json:"price"`
}

// Buy handles POST /v1/listings/{listingID}/buy.
func (h *ListingHandler) Buy(w http.ResponseWriter, r *http.Request) {
	trade, err := h.listings.Buy(r.Context(), chi.URLParam(r, "listingID"), util.GetActorID(r.Context()))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buyListingResponse{
		TradeID:   trade.ID,
		ListingID: *trade.ListingID,
		Price:     trade.Price,
	})
}

// Get handles GET /v1/listings/{listingID}.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.listings.GetByID(r.Context(), chi.URLParam(r, "listingID"))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, found)
}

// Cancel handles DELETE /v1/listings/{listingID}.
func (h *ListingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	err := h.listings.Cancel(r.Context(), chi.URLParam(r, "listingID"), util.GetActorID(r.Context()))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
