package handlers

import (
	"net/http"

	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps document uploads at 20 MiB.
const maxUploadBytes = 20 << 20

// documentHandler handles HTTP requests for uploaded attachments.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers document routes. Every staff member can
// read; uploads and deletes are managerial.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.GET("", h.listDocuments)
		documents.GET("/:id/url", h.downloadURL)

		managerial := documents.Group("", middleware.RequireManagerial())
		{
			managerial.POST("", h.upload)
			managerial.DELETE("/:id", h.deleteDocument)
		}
	}
}

// upload godoc
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A file form field is required"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File too large"})
		return
	}
	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	companyID, _ := middleware.GetCompanyIDFromContext(c)
	uploaderUserID, _ := middleware.GetUserIDFromContext(c)
	mime := header.Header.Get("Content-Type")

	doc, err := h.documentService.Upload(c.Request.Context(), companyID, header.Filename, mime, header.Size, src, uploaderUserID)
	if err != nil {
		respondError(c, err, "Failed to store document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List the company's documents
// @Tags documents
// @Produce json
// @Success 200 {object} dto.ListDocumentsResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	docs, err := h.documentService.ListDocuments(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	responses := make([]dto.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = dto.ToDocumentResponse(&docs[i])
	}
	c.JSON(http.StatusOK, dto.ListDocumentsResponse{Documents: responses})
}

// downloadURL godoc
// @Summary Get a download URL for a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DownloadURLResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id}/url [get]
func (h *documentHandler) downloadURL(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	url, err := h.documentService.DownloadURL(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build download URL")
		return
	}
	c.JSON(http.StatusOK, dto.DownloadURLResponse{URL: url})
}

// deleteDocument godoc
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	if err := h.documentService.Delete(c.Request.Context(), companyID, c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}
