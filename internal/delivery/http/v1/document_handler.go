package v1

import (
	"net/http"
	"strings"
	"time"

	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	docUC domain.DocumentUsecase
}

func NewDocumentHandler(protected *gin.RouterGroup, docUC domain.DocumentUsecase) {
	handler := &DocumentHandler{docUC: docUC}

	docs := protected.Group("/documents")
	{
		docs.GET("", handler.List)
		docs.POST("", handler.Create)
		docs.GET("/:id", handler.Get)
		docs.PUT("/:id", handler.Update)
		docs.PUT("/:id/status", handler.UpdateStatus)
		docs.DELETE("/:id", handler.Delete)
	}
}

type CreateDocumentRequest struct {
	CompanyName         string `json:"company_name" binding:"required"`
	Position            string `json:"position" binding:"required"`
	ResumeMarkdown      string `json:"resume_markdown"`
	CoverLetterMarkdown string `json:"cover_letter_markdown"`
	Status              string `json:"status"`
	Notes               string `json:"notes"`
}

// UpdateDocumentRequest carries the whitelisted fields of a partial update;
// absent fields are left unchanged
type UpdateDocumentRequest struct {
	CompanyName         *string `json:"company_name"`
	Position            *string `json:"position"`
	ResumeMarkdown      *string `json:"resume_markdown"`
	CoverLetterMarkdown *string `json:"cover_letter_markdown"`
	Status              *string `json:"status"`
	Notes               *string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// projectableFields are the document fields clients may select with ?fields=
var projectableFields = map[string]func(*domain.Document) interface{}{
	"company_name":          func(d *domain.Document) interface{} { return d.CompanyName },
	"position":              func(d *domain.Document) interface{} { return d.Position },
	"resume_markdown":       func(d *domain.Document) interface{} { return d.ResumeMarkdown },
	"cover_letter_markdown": func(d *domain.Document) interface{} { return d.CoverLetterMarkdown },
	"status":                func(d *domain.Document) interface{} { return d.Status },
	"notes":                 func(d *domain.Document) interface{} { return d.Notes },
	"created_at":            func(d *domain.Document) interface{} { return d.CreatedAt.Format(time.RFC3339) },
	"updated_at":            func(d *domain.Document) interface{} { return d.UpdatedAt.Format(time.RFC3339) },
}

// List godoc
// @Summary      List documents
// @Description  List the caller's documents, optionally filtered by status and projected to selected fields
// @Tags         documents
// @Produce      json
// @Param        status  query     string  false  "Status filter"
// @Param        fields  query     string  false  "Comma-separated field projection"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /documents [get]
// @Security     BearerAuth
func (h *DocumentHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	status := c.Query("status")

	documents, err := h.docUC.ListDocuments(c.Request.Context(), userID, status)
	if err != nil {
		c.Error(err)
		return
	}

	if fields := c.Query("fields"); fields != "" {
		projected, err := projectDocuments(documents, strings.Split(fields, ","))
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Documents retrieved", projected)
		return
	}

	response.Success(c, http.StatusOK, "Documents retrieved", documents)
}

func projectDocuments(documents []domain.Document, fields []string) ([]map[string]interface{}, error) {
	for _, f := range fields {
		if _, ok := projectableFields[strings.TrimSpace(f)]; !ok {
			return nil, apperror.BadRequest("Unknown field: " + f)
		}
	}

	projected := make([]map[string]interface{}, 0, len(documents))
	for i := range documents {
		row := map[string]interface{}{"id": documents[i].ID}
		for _, f := range fields {
			name := strings.TrimSpace(f)
			row[name] = projectableFields[name](&documents[i])
		}
		projected = append(projected, row)
	}
	return projected, nil
}

// Get godoc
// @Summary      Get a document
// @Description  Fetch one document, owner only
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /documents/{id} [get]
// @Security     BearerAuth
func (h *DocumentHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	doc, err := h.docUC.GetDocument(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Document retrieved", doc)
}

// Create godoc
// @Summary      Create a document
// @Description  Create a resume/cover-letter bundle owned by the caller
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        document  body      CreateDocumentRequest  true  "Document JSON"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Router       /documents [post]
// @Security     BearerAuth
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	doc := &domain.Document{
		CompanyName:         req.CompanyName,
		Position:            req.Position,
		ResumeMarkdown:      req.ResumeMarkdown,
		CoverLetterMarkdown: req.CoverLetterMarkdown,
		Status:              req.Status,
		Notes:               req.Notes,
	}

	if err := h.docUC.CreateDocument(c.Request.Context(), userID, doc); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Document created", doc)
}

// Update godoc
// @Summary      Update a document
// @Description  Apply a partial update over the whitelisted fields, owner only
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id        path      string                 true  "Document ID"
// @Param        document  body      UpdateDocumentRequest  true  "Fields to update"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /documents/{id} [put]
// @Security     BearerAuth
func (h *DocumentHandler) Update(c *gin.Context) {
	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	update := domain.DocumentUpdate{
		CompanyName:         req.CompanyName,
		Position:            req.Position,
		ResumeMarkdown:      req.ResumeMarkdown,
		CoverLetterMarkdown: req.CoverLetterMarkdown,
		Status:              req.Status,
		Notes:               req.Notes,
	}

	doc, err := h.docUC.UpdateDocument(c.Request.Context(), userID, c.Param("id"), update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Document updated", doc)
}

// UpdateStatus godoc
// @Summary      Update document status
// @Description  Update only the lifecycle status, owner only
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Document ID"
// @Param        status  body      UpdateStatusRequest  true  "New status"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /documents/{id}/status [put]
// @Security     BearerAuth
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.docUC.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Status updated", nil)
}

// Delete godoc
// @Summary      Delete a document
// @Description  Delete permanently, owner only
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /documents/{id} [delete]
// @Security     BearerAuth
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if err := h.docUC.DeleteDocument(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Document deleted", nil)
}
