package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"docvault/internal/service"
)

// IngestionHandler exposes the mock ingestion endpoints.
type IngestionHandler struct {
	svc service.IngestionService
}

// NewIngestionHandler creates a new ingestion handler.
func NewIngestionHandler(svc service.IngestionService) *IngestionHandler {
	return &IngestionHandler{svc: svc}
}

// StartIngestionRequest identifies the document to process.
type StartIngestionRequest struct {
	DocumentID string `json:"documentId" validate:"required,uuid"`
}

// Start godoc
// @Summary Start processing a document
// @Tags ingestion
// @Accept json
// @Produce json
// @Param request body StartIngestionRequest true "Document to process"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /ingestion [post]
func (h *IngestionHandler) Start(c echo.Context) error {
	var req StartIngestionRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	id, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}

	status, err := h.svc.Trigger(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Ingestion started", echo.Map{
		"documentId": id,
		"status":     status,
	})
}

// Reprocess godoc
// @Summary Re-run processing for a document
// @Tags ingestion
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response
// @Router /ingestion/{id}/reprocess [get]
func (h *IngestionHandler) Reprocess(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}

	status, err := h.svc.Trigger(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Ingestion started", echo.Map{
		"documentId": id,
		"status":     status,
	})
}

// Status godoc
// @Summary Get the tracked job status for a document
// @Tags ingestion
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response
// @Router /ingestion/{id}/status [get]
func (h *IngestionHandler) Status(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}

	status, found, err := h.svc.Status(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	statusText := "Not Found"
	if found {
		statusText = string(status)
	}
	return respond(c, http.StatusOK, "Ingestion status retrieved", echo.Map{
		"documentId": id,
		"status":     statusText,
	})
}

// Embeddings godoc
// @Summary Get mock embeddings for a document
// @Tags ingestion
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response
// @Router /ingestion/{id}/embeddings [get]
func (h *IngestionHandler) Embeddings(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}

	return respond(c, http.StatusOK, "Embeddings retrieved", echo.Map{
		"documentId": id,
		"embeddings": h.svc.Embeddings(id),
	})
}
