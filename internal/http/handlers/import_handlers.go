package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	mw "github.com/rogerio-castellano/promo-quoter/internal/http/middleware"
	"github.com/rogerio-castellano/promo-quoter/internal/importer"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportProductsHandler godoc
// @Summary Import products from a spreadsheet
// @Description Accepts an .xlsx or .csv file in the multipart field "file". Column
// @Description headers are matched loosely; rows that fail are reported and skipped.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Spreadsheet"
// @Success 200 {object} importer.Result
// @Failure 400 {object} ErrorResponse "Unreadable or unrecognized spreadsheet"
// @Router /products/upload-excel [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, apperr.Validation(fmt.Sprintf("file exceeds %d bytes", maxUploadBytes)))
			return
		}
		writeError(w, r, apperr.Validation("invalid multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperr.Validation("missing file",
			apperr.FieldError{Field: "file", Description: "file is required"}))
		return
	}
	defer file.Close()

	res, err := catalogImporter.Import(r.Context(), mw.UserID(r.Context()), header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DownloadTemplateHandler godoc
// @Summary Download an import template
// @Tags products
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param name path string true "plantilla-proveedor, plantilla-vacia or plantilla-simple"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /download/{name} [get]
func DownloadTemplateHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := importer.Template(name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
