package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	mw "github.com/rogerio-castellano/promo-quoter/internal/http/middleware"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/quoting"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

// CreateTechniqueHandler godoc
// @Summary Create a marking technique
// @Tags marking-techniques
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param technique body TechniqueRequest true "Technique to add"
// @Success 200 {object} TechniqueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /marking-techniques [post]
func CreateTechniqueHandler(w http.ResponseWriter, r *http.Request) {
	var req TechniqueRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := techniqueRepo.Create(r.Context(), models.MarkingTechnique{
		UserID:      mw.UserID(r.Context()),
		Name:        strings.TrimSpace(req.Name),
		CostPerUnit: priceFromFloat(*req.CostPerUnit),
		Description: req.Description,
	})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		writeError(w, r, apperr.Conflict("Marking technique already exists"))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTechniqueResponse(created))
}

// GetTechniquesHandler godoc
// @Summary List marking techniques
// @Tags marking-techniques
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TechniqueResponse
// @Router /marking-techniques [get]
func GetTechniquesHandler(w http.ResponseWriter, r *http.Request) {
	techniques, err := techniqueRepo.GetAll(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTechniqueResponses(techniques))
}

// SeedTechniquesHandler godoc
// @Summary Add the predefined marking techniques
// @Description Creates each built-in technique the caller does not have yet
// @Tags marking-techniques
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SeedTechniquesResult
// @Router /marking-techniques/predefined [post]
func SeedTechniquesHandler(w http.ResponseWriter, r *http.Request) {
	created, err := quoting.SeedPredefined(r.Context(), techniqueRepo, mw.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SeedTechniquesResult{
		Message: fmt.Sprintf("Added %d predefined techniques", len(created)),
		Created: toTechniqueResponses(created),
	})
}
