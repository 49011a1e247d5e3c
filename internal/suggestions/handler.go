package suggestions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pantry-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

// RegisterRoutes: スタッフ用（要認証）
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/suggestions", h.ListSuggestions)
	r.PATCH("/suggestions/:id/status", h.UpdateStatus)
}

// RegisterPublicRoutes: 投稿フォーム（認証なし）
func RegisterPublicRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/public/suggestions", h.Submit)
}

func (h *Handler) ListSuggestions(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "status is required"))
		return
	}
	res, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}
