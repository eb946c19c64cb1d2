package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chanspick/PiCom/pkg/logger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Offers       *OfferHandler
	Products     *ProductHandler
	Listings     *ListingHandler
	Parts        *PartHandler
	SellRequests *SellRequestHandler
	Users        *UserHandler
}

// NewRouter creates a chi router with all routes registered. Reads are
// open; anything that writes requires a caller identity from the
// gateway.
func NewRouter(h Handlers, log logger.Interface) chi.Router {
	r := chi.NewRouter()

	r.Use(requestContext)
	r.Use(requestLogging(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		// Auction catalog and book reads.
		r.Get("/products/{productID}", h.Products.Get)
		r.Get("/products/{productID}/quote", h.Products.GetQuote)
		r.Get("/products/{productID}/history", h.Products.PriceHistory)
		r.Get("/products/{productID}/trades", h.Products.Trades)
		r.Get("/offers/{offerID}", h.Offers.GetOffer)

		// Fixed-price reads.
		r.Get("/listings/{listingID}", h.Listings.Get)

		// Parts catalog reads.
		r.Get("/parts", h.Parts.List)
		r.Get("/parts/{partID}", h.Parts.Get)
		r.Get("/parts/{partID}/listings", h.Parts.Listings)

		// Sell request reads.
		r.Get("/sell-requests", h.SellRequests.List)
		r.Get("/sell-requests/{requestID}", h.SellRequests.Get)

		// User stats reads.
		r.Get("/users/{userID}/stats", h.Users.Stats)

		// Everything below needs a caller identity.
		r.Group(func(r chi.Router) {
			r.Use(requireActor)

			r.Post("/products", h.Products.Create)
			r.Delete("/products/{productID}", h.Products.Deactivate)
			r.Post("/products/{productID}/asks", h.Offers.SubmitAsk)
			r.Post("/products/{productID}/bids", h.Offers.SubmitBid)

			r.Post("/listings/{listingID}/buy", h.Listings.Buy)
			r.Delete("/listings/{listingID}", h.Listings.Cancel)

			r.Post("/parts", h.Parts.Create)
			r.Put("/parts/{partID}", h.Parts.Update)

			r.Post("/sell-requests", h.SellRequests.Submit)
			r.Post("/sell-requests/{requestID}/approve", h.SellRequests.Approve)
			r.Post("/sell-requests/{requestID}/reject", h.SellRequests.Reject)
		})
	})

	return r
}
