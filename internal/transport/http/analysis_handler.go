package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"memberpulse/internal/config"
	"memberpulse/internal/dataset"
	apierrors "memberpulse/internal/errors"
	"memberpulse/internal/services"
)

// Multipart form field names for the three dataset uploads.
const (
	FieldAccounts  = "accounts"
	FieldFinancial = "financial"
	FieldJotform   = "jotform"
)

// AnalysisHandler handles analysis-related HTTP requests
type AnalysisHandler struct {
	service      *services.AnalysisService
	reader       *dataset.Reader
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxUpload    int64
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *services.AnalysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		reader:       dataset.NewReader(logger, dataset.ReaderOptions{MaxRows: service.MaxRows()}),
		logger:       logger.With(slog.String("handler", "analysis")),
		errorHandler: apierrors.NewErrorHandler(logger, false),
		maxUpload:    config.DefaultMaxUploadBytes,
	}
}

// RegisterRoutes registers the analysis routes
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Post("/analysis", h.RunAnalysis)
}

// RunAnalysis handles POST /api/analysis. It expects a multipart form with
// three CSV files under the fields "accounts", "financial" and "jotform",
// runs one analysis over them and returns the full report as JSON.
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.logger.WarnContext(ctx, "failed to parse multipart form",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Request body must be multipart/form-data with accounts, financial and jotform files",
		))
		return
	}
	defer r.MultipartForm.RemoveAll()

	var bundle dataset.Bundle

	if !h.readPart(w, r, FieldAccounts, func(f multipart.File) (err error) {
		bundle.Accounts, err = h.reader.ReadAccounts(f)
		return err
	}) {
		return
	}
	if !h.readPart(w, r, FieldFinancial, func(f multipart.File) (err error) {
		bundle.Financial, err = h.reader.ReadFinancial(f)
		return err
	}) {
		return
	}
	if !h.readPart(w, r, FieldJotform, func(f multipart.File) (err error) {
		bundle.Jotform, err = h.reader.ReadJotform(f)
		return err
	}) {
		return
	}

	h.logger.InfoContext(ctx, "received analysis request",
		slog.Int("account_rows", len(bundle.Accounts)),
		slog.Int("financial_rows", len(bundle.Financial)),
		slog.Int("jotform_rows", len(bundle.Jotform)))

	report, err := h.service.Run(ctx, bundle)
	if err != nil {
		if errors.Is(err, services.ErrRowCeilingExceeded) {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusRequestEntityTooLarge,
				"DATASET_TOO_LARGE",
				err.Error(),
			))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrAnalysisExecution(err))
		return
	}

	render.JSON(w, r, report)
}

// readPart opens one uploaded dataset and feeds it to parse. It writes the
// error response itself and returns false when the part is missing or the
// CSV cannot be parsed.
func (h *AnalysisHandler) readPart(w http.ResponseWriter, r *http.Request, field string, parse func(multipart.File) error) bool {
	file, _, err := r.FormFile(field)
	if err != nil {
		h.logger.WarnContext(r.Context(), "missing dataset upload",
			slog.String("field", field))
		h.errorHandler.HandleError(w, r, apierrors.MissingDatasetError(field))
		return false
	}
	defer file.Close()

	if err := parse(file); err != nil {
		var appErr *apierrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apierrors.ErrTypeValidation {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusRequestEntityTooLarge,
				"DATASET_TOO_LARGE",
				appErr.Message,
			))
			return false
		}

		h.logger.WarnContext(r.Context(), "malformed dataset upload",
			slog.String("field", field),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.MalformedDatasetError(field, err))
		return false
	}

	return true
}
