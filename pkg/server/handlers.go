package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/getzep/contactner/pkg/models"
	"github.com/getzep/contactner/pkg/server/handlertools"
)

const (
	uploadField     = "file"
	pdfMediaType    = "application/pdf"
	multipartMemory = 32 << 20
)

var (
	errNoFile    = models.NewValidationError("No file uploaded")
	errNotPDF    = models.NewValidationError("Only PDF files are allowed")
	errMultipart = models.NewValidationError("Malformed multipart upload")
)

// ProcessPDFHandler godoc
//
//	@Summary		Extract contact details from a PDF
//	@Description	Accepts a multipart upload in the "file" field and returns the contact record found in it.
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file					true	"PDF document"
//	@Success		200		{object}	models.ContactRecord
//	@Failure		400		{object}	handlertools.ErrorResponse	"Bad Request"
//	@Failure		413		{object}	handlertools.ErrorResponse	"Request Entity Too Large"
//	@Failure		500		{object}	handlertools.ErrorResponse	"Internal Server Error"
//	@Failure		503		{object}	handlertools.ErrorResponse	"Service Unavailable"
//	@Router			/process-pdf [post]
func ProcessPDFHandler(appState *models.AppState) http.HandlerFunc {
	maxUploadSize := appState.Config.Server.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		if maxUploadSize > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		}

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			switch {
			case handlertools.IsBodyTooLarge(err):
				err = fmt.Errorf(
					"file too large, uploads are limited to %s: %w",
					humanize.IBytes(uint64(maxUploadSize)), err,
				)
			case errors.Is(err, http.ErrNotMultipart):
				err = errNoFile
			default:
				log.Debugf("Failed to parse multipart upload: %v", err)
				err = errMultipart
			}
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				log.Warnf("Failed to remove multipart temp files: %v", err)
			}
		}()

		file, header, err := r.FormFile(uploadField)
		if err != nil {
			handlertools.RenderError(w, errNoFile, http.StatusBadRequest)
			return
		}
		defer file.Close()

		mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
		if err != nil || mediaType != pdfMediaType {
			handlertools.RenderError(w, errNotPDF, http.StatusBadRequest)
			return
		}

		log.Infof(
			"Processing upload %q (%s)",
			header.Filename,
			humanize.IBytes(uint64(header.Size)),
		)

		record, err := appState.Processor.Process(r.Context(), header.Filename, file)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := handlertools.EncodeJSON(w, record); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
