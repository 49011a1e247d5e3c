package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pantry-backend/internal/platform/apierr"
)

const (
	CtxUserIDKey  = "user_id"
	CtxRoleKey    = "role"
	CtxSessionKey = "session"
)

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Session, error)
}

// bearerToken: Authorization: Bearer <token>。
// ブラウザの WebSocket はヘッダを付けられないので upgrade 時のみ ?token= も見る。
func bearerToken(c *gin.Context) (string, string) {
	h := c.GetHeader("Authorization")
	if h == "" {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			if t := strings.TrimSpace(c.Query("token")); t != "" {
				return t, ""
			}
		}
		return "", "missing Authorization header"
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "invalid Authorization header"
	}

	tokenStr := strings.TrimSpace(parts[1])
	if tokenStr == "" {
		return "", "empty token"
	}
	return tokenStr, ""
}

// RequireAuth: トークンを検証して context に session/sub/role を詰める
func RequireAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, problem := bearerToken(c)
		if problem != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.BodyOf(apierr.CodeUnauthenticated, problem))
			return
		}

		sess, err := v.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(apierr.Status(err), apierr.Body(err))
			return
		}

		c.Set(CtxSessionKey, sess)
		c.Set(CtxUserIDKey, sess.UserID)
		c.Set(CtxRoleKey, sess.Role)
		c.Next()
	}
}

// RequireRole: 例) admin のみ許可したい時に追加
func RequireRole(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{})
	for _, r := range roles {
		if r == "" {
			continue
		}
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(CtxRoleKey)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, apierr.BodyOf(apierr.CodeForbidden, "missing role"))
			return
		}
		if _, allowed := roleSet[role]; !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, apierr.BodyOf(apierr.CodeForbidden, "forbidden"))
			return
		}
		c.Next()
	}
}

func SessionFrom(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok && sess != nil
}

// TokenFrom は RequireAuth と同じ規則で生トークンを取り出す（WebSocket の再検証用）
func TokenFrom(c *gin.Context) string {
	t, _ := bearerToken(c)
	return t
}
