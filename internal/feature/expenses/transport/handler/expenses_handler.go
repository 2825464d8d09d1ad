// Package handler はexpensesフィーチャーのHTTPハンドラーを提供します。
// すべてのエンドポイントは認証必須で、操作は認証済みユーザーの支出に限定されます。
package handler

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"expense_backend/internal/feature/expenses/domain/entity"
	"expense_backend/internal/feature/expenses/transport/http/dto"
	"expense_backend/internal/feature/expenses/usecase"
	"expense_backend/internal/platform/token"
	"expense_backend/internal/shared/apperr"
	"expense_backend/internal/shared/respond"
	"expense_backend/internal/shared/validate"
)

// ExpensesUsecase は支出管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ExpensesUsecase interface {
	// AddExpense は認証済みユーザーの支出を作成します。
	AddExpense(ctx context.Context, ownerID uint, in usecase.ExpenseInput) (*entity.Expense, error)
	// EditExpense は認証済みユーザー自身の支出を更新します。
	EditExpense(ctx context.Context, ownerID, id uint, in usecase.ExpenseInput) (*entity.Expense, error)
	// ListExpenses は認証済みユーザーの支出一覧を取得します。
	ListExpenses(ctx context.Context, ownerID uint, page, limit int) (*usecase.ExpensePage, error)
	// DeleteExpense は認証済みユーザー自身の支出を削除します。
	DeleteExpense(ctx context.Context, ownerID, id uint) (*usecase.DeletedExpense, error)
}

// ExpensesHandler は支出管理操作のHTTPリクエストを処理します。
type ExpensesHandler struct {
	expenses ExpensesUsecase
}

// NewExpensesHandler はExpensesHandlerの新しいインスタンスを生成します。
func NewExpensesHandler(expenses ExpensesUsecase) *ExpensesHandler {
	return &ExpensesHandler{expenses: expenses}
}

// ownerID はミドルウェアが設定した認証済みユーザーIDを取得します。
func ownerID(c *gin.Context) (uint, bool) {
	id := c.GetUint(token.ContextUserID)
	if id == 0 {
		respond.Error(c, apperr.ServerArgs("missing authenticated user"))
		return 0, false
	}
	return id, true
}

// pageOrAll は省略されたページングパラメータを番兵値へ変換します。
func pageOrAll(v *int) int {
	if v == nil {
		return usecase.NoPagination
	}
	return *v
}

// AddExpense は支出作成APIエンドポイントを処理します。
// ボディのuserフィールドに関わらず、所有者は認証済みユーザーになります。
func (h *ExpensesHandler) AddExpense(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.AddExpenseRequest
	if err := validate.JSON(c.Request.Body, &req); err != nil {
		respond.Error(c, err)
		return
	}

	created, err := h.expenses.AddExpense(c.Request.Context(), owner, usecase.ExpenseInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		slog.Warn("add expense failed", "error", err, "user_id", owner)
		respond.Error(c, err)
		return
	}

	respond.JSON(c, respond.Created(created))
}

// EditExpense は支出更新APIエンドポイントを処理します。
func (h *ExpensesHandler) EditExpense(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.EditExpenseRequest
	if err := validate.JSON(c.Request.Body, &req); err != nil {
		respond.Error(c, err)
		return
	}

	updated, err := h.expenses.EditExpense(c.Request.Context(), owner, req.ID, usecase.ExpenseInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		slog.Warn("edit expense failed", "error", err, "user_id", owner, "expense_id", req.ID)
		respond.Error(c, err)
		return
	}

	respond.JSON(c, respond.Updated(updated))
}

// GetExpenses は支出一覧APIエンドポイントを処理します。
// page/limit は省略可能で、省略時は認証済みユーザーの全件を返します。
func (h *ExpensesHandler) GetExpenses(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.ListExpensesRequest
	if err := validate.Query(c.Request.URL.Query(), &req); err != nil {
		respond.Error(c, err)
		return
	}

	result, err := h.expenses.ListExpenses(c.Request.Context(), owner, pageOrAll(req.Page), pageOrAll(req.Limit))
	if err != nil {
		slog.Warn("list expenses failed", "error", err, "user_id", owner)
		respond.Error(c, err)
		return
	}

	respond.JSON(c, respond.OK(result))
}

// DeleteExpense は支出削除APIエンドポイントを処理します。
// 対象IDはクエリパラメータで指定します。
func (h *ExpensesHandler) DeleteExpense(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.DeleteExpenseRequest
	if err := validate.Query(c.Request.URL.Query(), &req); err != nil {
		respond.Error(c, err)
		return
	}

	result, err := h.expenses.DeleteExpense(c.Request.Context(), owner, req.ID)
	if err != nil {
		slog.Warn("delete expense failed", "error", err, "user_id", owner, "expense_id", req.ID)
		respond.Error(c, err)
		return
	}

	respond.JSON(c, respond.OK(result))
}
