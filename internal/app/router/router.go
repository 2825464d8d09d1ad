// Package router はアプリケーションの全ルートを定義します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "expense_backend/internal/feature/auth/transport/handler"
	expenseshandler "expense_backend/internal/feature/expenses/transport/handler"
	usershandler "expense_backend/internal/feature/users/transport/handler"
	"expense_backend/internal/platform/http/handler"
	"expense_backend/internal/platform/token"
	"expense_backend/internal/shared/ratelimiter"
)

// NewRouter は全エンドポイントを登録したGinエンジンを生成します。
func NewRouter(
	auth *authhandler.AuthHandler,
	users *usershandler.UsersHandler,
	expenses *expenseshandler.ExpensesHandler,
	issuer *token.Issuer,
	loginLimiter *ratelimiter.IPRateLimiter,
) *gin.Engine {
	r := gin.Default()

	// ブラウザフロントエンド向けCORS
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// ログイン（トークン発行）。ブルートフォース対策のレート制限付き
	r.POST("/api/auth/login", loginLimiter.Middleware(), auth.Login)
	// 新規ユーザー登録と一覧取得
	r.POST("/api/users", users.CreateUser)
	r.GET("/api/users", users.GetUsers)
	// パスワードリセット
	r.POST("/api/users/request-password-reset", users.RequestPasswordReset)
	r.POST("/api/users/reset-password", users.ResetPassword)

	// 認証必須のルート
	protected := r.Group("/api")
	// リクエストヘッダーに署名済みトークンが必要になる
	protected.Use(token.AuthRequired(issuer))
	{
		protected.PATCH("/users/me", users.UpdateMyAccount)

		protected.POST("/expenses", expenses.AddExpense)
		protected.PATCH("/expenses", expenses.EditExpense)
		protected.GET("/expenses", expenses.GetExpenses)
		protected.DELETE("/expenses", expenses.DeleteExpense)
	}

	return r
}
