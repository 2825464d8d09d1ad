package token

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"expense_backend/internal/shared/respond"
)

// ginコンテキストに設定される認証済みユーザー情報のキーです。
const (
	ContextUserID   = "userID"
	ContextUserName = "userName"
)

// AuthRequired はベアラートークンを検証するGinミドルウェアを返します。
// - Authorizationヘッダーがない場合は401
// - トークンの検証・復号に失敗した場合は400
// - 成功時は復号したユーザーIDと表示名をコンテキストへ設定
func AuthRequired(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				respond.Failure(http.StatusUnauthorized, "Unauthorized", nil))
			return
		}

		var tokenStr string
		if parts := strings.SplitN(auth, " ", 2); len(parts) == 2 {
			tokenStr = parts[1]
		}

		payload, err := issuer.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				respond.Failure(http.StatusBadRequest, "Invalid token", nil))
			return
		}

		c.Set(ContextUserID, payload.ID)
		c.Set(ContextUserName, payload.Name)
		c.Next()
	}
}
