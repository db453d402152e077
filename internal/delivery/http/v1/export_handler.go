package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportUC domain.ExportUsecase
}

func NewExportHandler(public *gin.RouterGroup, protected *gin.RouterGroup, exportUC domain.ExportUsecase) {
	handler := &ExportHandler{exportUC: exportUC}

	protected.POST("/generate-pdf", handler.GeneratePDF)
	public.GET("/documents/share/:token/download", handler.DownloadSharedDocument)
}

type GeneratePDFRequest struct {
	Markdown string `json:"markdown"`
}

// GeneratePDF godoc
// @Summary      Render Markdown to PDF
// @Description  Convert the supplied Markdown to a styled PDF
// @Tags         export
// @Accept       json
// @Produce      application/pdf
// @Param        body  body      GeneratePDFRequest  true  "Markdown content"
// @Success      200   {file}    binary
// @Failure      400   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /generate-pdf [post]
// @Security     BearerAuth
func (h *ExportHandler) GeneratePDF(c *gin.Context) {
	var req GeneratePDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	pdfBytes, err := h.exportUC.RenderMarkdown(c.Request.Context(), req.Markdown)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="document.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// DownloadSharedDocument godoc
// @Summary      Download a shared document as PDF
// @Description  Render the selected visible sections of a shared document to PDF
// @Tags         export
// @Produce      application/pdf
// @Param        token         path      string  true   "Share token"
// @Param        resume        query     bool    false  "Include the resume section"
// @Param        cover_letter  query     bool    false  "Include the cover letter section"
// @Success      200           {file}    binary
// @Failure      400           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Failure      410           {object}  response.Response
// @Router       /documents/share/{token}/download [get]
func (h *ExportHandler) DownloadSharedDocument(c *gin.Context) {
	includeResume, err := boolQuery(c, "resume", true)
	if err != nil {
		c.Error(err)
		return
	}
	includeCoverLetter, err := boolQuery(c, "cover_letter", true)
	if err != nil {
		c.Error(err)
		return
	}

	pdfBytes, filename, err := h.exportUC.RenderSharedDocument(c.Request.Context(), c.Param("token"), includeResume, includeCoverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func boolQuery(c *gin.Context, name string, fallback bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.BadRequest(fmt.Sprintf("Query parameter %q must be a boolean", name))
	}
	return value, nil
}
