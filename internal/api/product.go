package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chanspick/PiCom/internal/usecase/product"
	"github.com/chanspick/PiCom/internal/usecase/quote"
	"github.com/chanspick/PiCom/pkg/errors"
)

// ProductHandler handles the auction catalog and quote reads.
type ProductHandler struct {
	products *product.Usecase
	quotes   *quote.Usecase
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products *product.Usecase, quotes *quote.Usecase) *ProductHandler {
	return &ProductHandler{products: products, quotes: quotes}
}

type createProductRequest struct {
	Name string `json:"name"`
}

// Create handles POST /v1/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteUsecaseError(w, err)
		return
	}

	created, err := h.products.Create(r.Context(), req.Name)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// Get handles GET /v1/products/{productID}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.products.GetByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, found)
}

// Deactivate handles DELETE /v1/products/{productID}.
func (h *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Deactivate(r.Context(), chi.URLParam(r, "productID")); err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "inactive"})
}

// GetQuote handles GET /v1/products/{productID}/quote.
func (h *ProductHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	found, err := h.quotes.Get(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	if found == nil {
		WriteError(w, http.StatusNotFound, string(errors.GeneralNotFoundError), "product not found")
		return
	}
	WriteJSON(w, http.StatusOK, found)
}

// PriceHistory handles GET /v1/products/{productID}/history.
func (h *ProductHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	points, err := h.products.PriceHistory(r.Context(), chi.URLParam(r, "productID"), limit)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, points)
}

// Trades handles GET /v1/products/{productID}/trades.
func (h *ProductHandler) Trades(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	trades, err := h.products.Trades(r.Context(), chi.URLParam(r, "productID"), limit)
	if err != nil {
		WriteUsecaseError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, trades)
}
