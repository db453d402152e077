package v1

import (
	"net/http"

	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	shareUC domain.ShareUsecase
}

// NewShareHandler registers the owner-facing share management routes on the
// protected group and the token-resolving routes on the public group.
func NewShareHandler(public *gin.RouterGroup, protected *gin.RouterGroup, shareUC domain.ShareUsecase) {
	handler := &ShareHandler{shareUC: shareUC}

	docs := protected.Group("/documents")
	{
		docs.POST("/:id/share", handler.CreateShare)
		docs.GET("/:id/share", handler.GetLatestShare)
		docs.GET("/:id/shares", handler.ListShares)
		docs.DELETE("/:id/shares/:token", handler.DeleteShare)
	}

	shared := public.Group("/documents/share")
	{
		shared.GET("/:token", handler.ResolveShare)
		shared.PUT("/:token", handler.UpdateSharedDocument)
	}
}

type CreateShareRequest struct {
	ShowResume      bool `json:"show_resume"`
	ShowCoverLetter bool `json:"show_cover_letter"`
	ShowNotes       bool `json:"show_notes"`
	Editable        bool `json:"editable"`
}

// CreateShare godoc
// @Summary      Create or refresh a share link
// @Description  Create a share link for the document, or overwrite the caller's existing one keeping its token
// @Tags         shares
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Document ID"
// @Param        share  body      CreateShareRequest  true  "Share configuration"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /documents/{id}/share [post]
// @Security     BearerAuth
func (h *ShareHandler) CreateShare(c *gin.Context) {
	var req CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	cfg := domain.ShareConfig{
		ShowResume:      req.ShowResume,
		ShowCoverLetter: req.ShowCoverLetter,
		ShowNotes:       req.ShowNotes,
		Editable:        req.Editable,
	}

	result, err := h.shareUC.CreateOrUpdateShare(c.Request.Context(), userID, c.Param("id"), cfg)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Share link ready", result)
}

// GetLatestShare godoc
// @Summary      Get the caller's share link
// @Description  Fetch the caller's most recent share link for the document
// @Tags         shares
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /documents/{id}/share [get]
// @Security     BearerAuth
func (h *ShareHandler) GetLatestShare(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	share, err := h.shareUC.GetLatestShare(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Share retrieved", share)
}

// ListShares godoc
// @Summary      List share links
// @Description  List every share link on the document, owner only
// @Tags         shares
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /documents/{id}/shares [get]
// @Security     BearerAuth
func (h *ShareHandler) ListShares(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	shares, err := h.shareUC.ListShares(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Shares retrieved", shares)
}

// DeleteShare godoc
// @Summary      Revoke a share link
// @Description  Delete the share link, immediately invalidating its token
// @Tags         shares
// @Produce      json
// @Param        id     path      string  true  "Document ID"
// @Param        token  path      string  true  "Share token"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /documents/{id}/shares/{token} [delete]
// @Security     BearerAuth
func (h *ShareHandler) DeleteShare(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.shareUC.DeleteShare(c.Request.Context(), userID, c.Param("id"), c.Param("token")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Share revoked", nil)
}

// ResolveShare godoc
// @Summary      View a shared document
// @Description  Resolve a share token into the visible projection of its document
// @Tags         shares
// @Produce      json
// @Param        token  path      string  true  "Share token"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      410    {object}  response.Response
// @Router       /documents/share/{token} [get]
func (h *ShareHandler) ResolveShare(c *gin.Context) {
	view, err := h.shareUC.ResolveShare(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Shared document retrieved", view)
}

// UpdateSharedDocument godoc
// @Summary      Edit through a share link
// @Description  Update the visible content fields of the shared document, editable shares only
// @Tags         shares
// @Accept       json
// @Produce      json
// @Param        token   path      string                       true  "Share token"
// @Param        update  body      domain.SharedDocumentUpdate  true  "Fields to update"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      410     {object}  response.Response
// @Router       /documents/share/{token} [put]
func (h *ShareHandler) UpdateSharedDocument(c *gin.Context) {
	var req domain.SharedDocumentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.shareUC.UpdateSharedDocument(c.Request.Context(), c.Param("token"), req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Shared document updated", nil)
}
