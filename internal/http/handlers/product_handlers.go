package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	mw "github.com/rogerio-castellano/promo-quoter/internal/http/middleware"
	models "github.com/rogerio-castellano/promo-quoter/internal/models"
	repo "github.com/rogerio-castellano/promo-quoter/internal/repo"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the caller's catalog
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	product := models.Product{
		UserID:          mw.UserID(r.Context()),
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		BasePrice:       priceFromFloat(*req.BasePrice),
		Category:        strings.TrimSpace(req.Category),
		Characteristics: models.Characteristics(req.Characteristics),
		ImageURL:        req.ImageURL,
	}
	if product.Characteristics == nil {
		product.Characteristics = models.Characteristics{}
	}

	created, err := productRepo.Create(r.Context(), product)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List products
// @Description Lists the caller's products, optionally filtered
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param category query string false "Exact category, case-insensitive"
// @Param name query string false "Name substring, case-insensitive"
// @Param min_price query number false "Minimum base price"
// @Param max_price query number false "Maximum base price"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := productRepo.Filter(r.Context(), mw.UserID(r.Context()), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func productFilterFromQuery(r *http.Request) (repo.ProductFilter, error) {
	q := r.URL.Query()
	filter := repo.ProductFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Name:     strings.TrimSpace(q.Get("name")),
	}

	var fields []apperr.FieldError
	parse := func(key string) *decimal.Decimal {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fields = append(fields, apperr.FieldError{Field: key, Description: key + " must be a number"})
			return nil
		}
		return &d
	}
	filter.MinPrice = parse("min_price")
	filter.MaxPrice = parse("max_price")

	if len(fields) > 0 {
		return repo.ProductFilter{}, apperr.Validation("invalid query parameters", fields...)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return repo.ProductFilter{}, apperr.Validation("invalid query parameters",
			apperr.FieldError{Field: "min_price", Description: "min_price must not exceed max_price"})
	}
	return filter, nil
}

// GetProductHandler godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func GetProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetByID(r.Context(), mw.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, productNotFound(err))
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := productRepo.Delete(r.Context(), mw.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, productNotFound(err))
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}

// DeleteAllProductsHandler godoc
// @Summary Delete every product of the caller
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DeleteAllResult
// @Router /products [delete]
func DeleteAllProductsHandler(w http.ResponseWriter, r *http.Request) {
	n, err := productRepo.DeleteAll(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteAllResult{Message: "Deleted all products", Count: n})
}

func productNotFound(err error) error {
	if errors.Is(err, repo.ErrProductNotFound) {
		return apperr.NotFound("Product not found")
	}
	return err
}
