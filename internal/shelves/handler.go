package shelves

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantry-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/scan", h.Scan)
	r.GET("/scan/:qr_code", h.ScanByPath)

	r.GET("/shelves", h.ListShelves)
	r.POST("/shelves", h.CreateShelf)
	r.GET("/shelves/labels.csv", h.LabelsCSV)
	r.GET("/shelves/:id", h.GetShelf)
	r.GET("/shelves/:id/qr.png", h.QRCode)
}

func (h *Handler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid json"))
		return
	}
	h.scan(c, req.QRCode)
}

// GET /scan/:qr_code（QR を直接 URL にした場合）
func (h *Handler) ScanByPath(c *gin.Context) {
	h.scan(c, c.Param("qr_code"))
}

func (h *Handler) scan(c *gin.Context, code string) {
	res, err := h.svc.Scan(c.Request.Context(), code)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListShelves(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetShelf(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CreateShelf(c *gin.Context) {
	var req CreateShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.Header("Location", "/api/v1/shelves/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

// GET /shelves/:id/qr.png?size=256
func (h *Handler) QRCode(c *gin.Context) {
	size := 0
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "size must be a number"))
			return
		}
		size = n
	}

	png, err := h.svc.QRCodePNG(c.Request.Context(), c.Param("id"), size)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GET /shelves/labels.csv?encoding=utf8|cp932
func (h *Handler) LabelsCSV(c *gin.Context) {
	enc := c.DefaultQuery("encoding", EncodingUTF8)
	b, err := h.svc.LabelsCSV(c.Request.Context(), enc)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}

	contentType := "text/csv; charset=utf-8"
	if enc == EncodingCP932 {
		contentType = "text/csv; charset=Shift_JIS"
	}
	c.Header("Content-Disposition", `attachment; filename="shelf-labels.csv"`)
	c.Data(http.StatusOK, contentType, b)
}
