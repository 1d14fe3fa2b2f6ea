package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/rogerio-castellano/promo-quoter/internal/http/middleware"
	"github.com/rogerio-castellano/promo-quoter/internal/quoting"
)

// GenerateQuoteHandler godoc
// @Summary Generate a quote
// @Description Picks the caller's products in the category, splits them into basic,
// @Description medium and premium tiers by price and adds the technique costs to each tier.
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quote body QuoteRequest true "Client, category and techniques"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} ErrorResponse "Missing client or category, unknown technique"
// @Failure 404 {object} ErrorResponse "No products in the category"
// @Router /quotes/generate [post]
func GenerateQuoteHandler(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	quote, err := quoteEngine.Generate(r.Context(), mw.UserID(r.Context()), quoting.Request{
		ClientName:        req.ClientName,
		Category:          req.SearchCriteria.Category,
		MarkingTechniques: req.MarkingTechniques,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteResponse(quote))
}

// GetQuotesHandler godoc
// @Summary List quotes, newest first
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} QuoteResponse
// @Router /quotes [get]
func GetQuotesHandler(w http.ResponseWriter, r *http.Request) {
	quotes, err := quoteEngine.List(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteResponses(quotes))
}

// GetQuoteHandler godoc
// @Summary Get a quote
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} ErrorResponse
// @Router /quotes/{id} [get]
func GetQuoteHandler(w http.ResponseWriter, r *http.Request) {
	quote, err := quoteEngine.Get(r.Context(), mw.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteResponse(quote))
}
