package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobledger/internal/middleware"
	"jobledger/internal/service"
	"jobledger/pkg/response"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler sets up the routing dependencies for PDF endpoints
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	jobs := router.Group("/jobs", middleware.RequireAuth())
	{
		jobs.GET("/:id/quote.pdf", h.QuotePDF)
		jobs.GET("/:id/invoice.pdf", h.InvoicePDF)
	}
}

// QuotePDF handles GET /jobs/:id/quote.pdf
// @Summary      Download quote PDF
// @Description  Generates the quotation PDF for a job. First-time generation stamps the quote date and validity window and moves a draft job to quoted.
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/quote.pdf [get]
func (h *DocumentHandler) QuotePDF(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GenerateQuote(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	servePDF(c, doc)
}

// InvoicePDF handles GET /jobs/:id/invoice.pdf
// @Summary      Download invoice PDF
// @Description  Generates the invoice PDF for a job exactly as stored, with no side effects
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/invoice.pdf [get]
func (h *DocumentHandler) InvoicePDF(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GenerateInvoice(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	servePDF(c, doc)
}

func servePDF(c *gin.Context, doc *service.Document) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}
