package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, stream *Streamer) {
	h := &Handler{svc: svc}
	r.GET("/dashboard/stats", h.GetStats)
	r.GET("/dashboard/ws", stream.Serve)
}

// 件数の取得失敗は 0 として返すので常に 200
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats(c.Request.Context()))
}
