// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"expense_backend/internal/feature/users/domain/entity"
	"expense_backend/internal/feature/users/transport/http/dto"
	"expense_backend/internal/feature/users/usecase"
	"expense_backend/internal/platform/token"
	"expense_backend/internal/shared/apperr"
	"expense_backend/internal/shared/respond"
	"expense_backend/internal/shared/validate"
)

// UsersUsecase はユーザー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UsersUsecase interface {
	// ListUsers はユーザー一覧を取得します。
	ListUsers(ctx context.Context, page, limit int) (*usecase.UserPage, error)
	// CreateUser は新規ユーザーを登録します。
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	// UpdateMyAccount は本人のアカウント情報を部分更新します。
	UpdateMyAccount(ctx context.Context, id uint, in usecase.UpdateAccountInput) (bool, error)
	// RequestPasswordReset はリセットリンクをメールで送信します。
	RequestPasswordReset(ctx context.Context, email, userUUID string) error
	// ResetPassword はパスワードを再設定します。
	ResetPassword(ctx context.Context, email, userUUID, password string) error
}

// UsersHandler はユーザー管理操作のHTTPリクエストを処理します。
type UsersHandler struct {
	users UsersUsecase
}

// NewUsersHandler はUsersHandlerの新しいインスタンスを生成します。
func NewUsersHandler(users UsersUsecase) *UsersHandler {
	return &UsersHandler{users: users}
}

// pageOrAll は省略されたページングパラメータを番兵値へ変換します。
func pageOrAll(v *int) int {
	if v == nil {
		return usecase.NoPagination
	}
	return *v
}

// GetUsers はユーザー一覧APIエンドポイントを処理します。
// page/limit は省略可能で、省略時は全件を返します。
func (h *UsersHandler) GetUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := validate.Query(c.Request.URL.Query(), &req); err != nil {
		respond.Error(c, err)
		return
	}

	result, err := h.users.ListUsers(c.Request.Context(), pageOrAll(req.Page), pageOrAll(req.Limit))
	if err != nil {
		slog.Warn("list users failed", "error", err)
		respond.Error(c, err)
		return
	}

	respond.JSON(c, respond.OK(result))
}

// CreateUser はユーザー登録APIエンドポイントを処理します。
// メール重複時は409を返却します。
func (h *UsersHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := validate.JSON(c.Request.Body, &req); err != nil {
		respond.Error(c, err)
		return
	}

	created, err := h.users.CreateUser(c.Request.Context(), usecase.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		slog.Warn("create user failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		respond.Error(c, err)
		return
	}

	slog.Info("user created", "email", req.Email, "remote_addr", c.ClientIP())
	respond.JSON(c, respond.Created(created))
}

// UpdateMyAccount は本人アカウント更新APIエンドポイントを処理します。
// 対象IDは認証済みトークンから取得し、リクエストボディのIDは受け付けません。
func (h *UsersHandler) UpdateMyAccount(c *gin.Context) {
	id := c.GetUint(token.ContextUserID)
	if id == 0 {
		respond.Error(c, apperr.ServerArgs("missing authenticated user"))
		return
	}

	var req dto.UpdateAccountRequest
	if err := validate.JSON(c.Request.Body, &req); err != nil {
		respond.Error(c, err)
		return
	}

	updated, err := h.users.UpdateMyAccount(c.Request.Context(), id, usecase.UpdateAccountInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		slog.Warn("update account failed", "error", err, "user_id", id)
		respond.Error(c, err)
		return
	}

	respond.JSON(c, respond.Updated(updated))
}

// RequestPasswordReset はパスワードリセット依頼APIエンドポイントを処理します。
// リセットトークンはメールでのみ届き、レスポンスには含まれません。
func (h *UsersHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if err := validate.JSON(c.Request.Body, &req); err != nil {
		respond.Error(c, err)
		return
	}

	if err := h.users.RequestPasswordReset(c.Request.Context(), req.Email, req.UUID); err != nil {
		slog.Warn("password reset request failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, err)
		return
	}

	respond.JSON(c, respond.Updated(nil))
}

// ResetPassword はパスワード再設定APIエンドポイントを処理します。
func (h *UsersHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := validate.JSON(c.Request.Body, &req); err != nil {
		respond.Error(c, err)
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), req.Email, req.UUID, req.Password); err != nil {
		slog.Warn("password reset failed", "error", err, "remote_addr", c.ClientIP())
		respond.Error(c, err)
		return
	}

	respond.JSON(c, respond.Updated(nil))
}
