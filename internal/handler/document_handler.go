package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"docvault/internal/auth"
	"docvault/internal/service"
)

// DocumentHandler handles document endpoints.
type DocumentHandler struct {
	svc service.DocumentService
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(svc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// UpdateStatusRequest carries an externally reported document status.
type UpdateStatusRequest struct {
	DocumentStatus string `json:"documentStatus" validate:"required"`
}

// Create godoc
// @Summary Upload a new document (Editor only)
// @Tags documents
// @Accept mpfd
// @Produce json
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /documents [post]
func (h *DocumentHandler) Create(c echo.Context) error {
	claims := auth.CurrentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}

	title := c.FormValue("title")
	if title == "" {
		return respondBadRequest(c, "title is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return respondBadRequest(c, "file is required")
	}

	doc, err := h.svc.Create(c.Request().Context(), claims, title, c.FormValue("description"), file)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Document uploaded successfully", doc)
}

// List godoc
// @Summary Get all documents visible to the caller
// @Tags documents
// @Produce json
// @Success 200 {object} Response
// @Router /documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	claims := auth.CurrentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}

	docs, err := h.svc.List(c.Request().Context(), claims)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "All the Document retrieved successfully", docs)
}

// Get godoc
// @Summary Get document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}
	claims := auth.CurrentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}

	doc, err := h.svc.Get(c.Request().Context(), id, claims)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Document retrieved successfully", doc)
}

// Update godoc
// @Summary Update a document (Editor only); replacing the file re-triggers ingestion
// @Tags documents
// @Accept mpfd
// @Produce json
// @Param id path string true "Document ID"
// @Param file formData file false "Replacement file"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /documents/{id} [patch]
func (h *DocumentHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}
	claims := auth.CurrentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}

	// FormValue parses the multipart body and fills Request().Form, so the
	// presence checks below can tell "absent" apart from "set to empty".
	title := c.FormValue("title")
	description := c.FormValue("description")

	var patch service.DocumentPatch
	if _, ok := c.Request().Form["title"]; ok {
		patch.Title = &title
	}
	if _, ok := c.Request().Form["description"]; ok {
		patch.Description = &description
	}

	// Absent file part means a metadata-only update.
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	doc, err := h.svc.Update(c.Request().Context(), id, claims, patch, file)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Document updated successfully", doc)
}

// UpdateStatus godoc
// @Summary Record an externally reported ingestion status
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /documents/updateStatus/{id} [patch]
func (h *DocumentHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	doc, err := h.svc.UpdateStatus(c.Request().Context(), id, req.DocumentStatus)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Document updated successfully", doc)
}

// GetStatus godoc
// @Summary Get the ingestion status of a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /documents/{id}/status [get]
func (h *DocumentHandler) GetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}
	claims := auth.CurrentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}

	status, errMsg, err := h.svc.GetStatus(c.Request().Context(), id, claims)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Document status retrieved successfully", echo.Map{
		"status":        status,
		"error_message": errMsg,
	})
}

// Delete godoc
// @Summary Delete a document (Editor only)
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondBadRequest(c, "invalid document id")
	}
	claims := auth.CurrentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}

	if err := h.svc.Remove(c.Request().Context(), id, claims); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Document Deleted successfully", nil)
}
