package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantry-backend/internal/platform/apierr"
)

type AuthHandler struct{ svc AuthService }

// RegisterRoutes: public は認証不要、guarded は RequireAuth 済みのグループ
func RegisterRoutes(public gin.IRoutes, guarded *gin.RouterGroup, svc AuthService) {
	h := &AuthHandler{svc: svc}
	public.POST("/auth/login", h.Login)

	guarded.GET("/auth/session", h.Session)
	guarded.POST("/auth/logout", h.Logout)

	admin := guarded.Group("", RequireRole(RoleAdmin))
	admin.POST("/auth/register", h.Register)
	admin.DELETE("/auth/accounts/:id", h.DeleteAccount)
	admin.PATCH("/auth/accounts/:id", h.ChangeUsername)
}

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid request"))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       res.User,
		"message":    "Login successful",
	})
}

// getCurrentSession 相当
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierr.BodyOf(apierr.CodeUnauthenticated, "no session"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess, _ := SessionFrom(c)
	if err := h.svc.Logout(c.Request.Context(), sess); err != nil {
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out", "redirect_to": "/"})
}

type RegisterRequest struct {
	ID       string  `json:"id" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Role     *string `json:"role,omitempty"` // 未指定なら staff
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid request"))
		return
	}

	role := ""
	if req.Role != nil {
		role = *req.Role
	}

	if err := h.svc.Register(c.Request.Context(), req.ID, req.Password, role); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.JSON(http.StatusConflict, apierr.BodyOf(apierr.CodeConflict, "id already exists"))
			return
		}
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	id := c.Param("id")
	if sess, ok := SessionFrom(c); ok && sess.UserID == id {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "cannot delete the signed-in account"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, apierr.BodyOf(apierr.CodeNotFound, "not found"))
			return
		}
		c.JSON(apierr.Status(err), apierr.Body(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type ChangeUsernameRequest struct {
	NewID string `json:"new_id" binding:"required"`
}

func (h *AuthHandler) ChangeUsername(c *gin.Context) {
	oldID := c.Param("id")

	var req ChangeUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.BodyOf(apierr.CodeInvalidArgument, "invalid request"))
		return
	}

	if err := h.svc.ChangeID(c.Request.Context(), oldID, req.NewID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, apierr.BodyOf(apierr.CodeNotFound, "not found"))
		case errors.Is(err, ErrAlreadyExists):
			c.JSON(http.StatusConflict, apierr.BodyOf(apierr.CodeConflict, "new id already exists"))
		default:
			c.JSON(apierr.Status(err), apierr.Body(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "username changed"})
}
