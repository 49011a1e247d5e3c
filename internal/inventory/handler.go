package inventory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantry-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/inventory/items", h.ListItems)
	r.POST("/inventory/items", h.CreateItem)
	r.GET("/inventory/items/:id", h.GetItem)
	r.PATCH("/inventory/items/:id", h.UpdateItem)
	// 確認なしでは消さない: DELETE /inventory/items/:id?confirm=true
	r.DELETE("/inventory/items/:id", h.DeleteItem)
}

// GET /inventory/items?q=
func (h *Handler) ListItems(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetItem(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.Header("Location", "/api/v1/inventory/items/"+res.Item.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"), confirmed)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
