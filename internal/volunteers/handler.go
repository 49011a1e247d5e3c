package volunteers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pantry-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/volunteers/tasks", h.ListTasks)
	r.POST("/volunteers/tasks", h.CreateTask)
	r.POST("/volunteers/tasks/:id/toggle", h.ToggleTask)
}

func (h *Handler) ListTasks(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ToggleTask(c *gin.Context) {
	res, err := h.svc.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
