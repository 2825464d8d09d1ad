// Package usecase はexpensesフィーチャーのビジネスロジックを実装します。
// すべての操作は認証済みユーザーのIDでスコープされ、他ユーザーの支出には一切触れません。
package usecase

import (
	"context"
	"fmt"
	"time"

	"expense_backend/internal/feature/expenses/domain/entity"
	"expense_backend/internal/shared/apperr"
)

// NoPagination はページングなし（全件取得）を示す番兵値です。
const NoPagination = -1

// Filter は支出一覧の絞り込み条件です。ゼロ値のフィールドは無視されます。
type Filter struct {
	UserID uint
	ID     uint
}

// ExpensePage はページングされた支出一覧です。
type ExpensePage struct {
	Items []entity.Expense `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page,omitempty"`
	Limit int              `json:"limit,omitempty"`
}

// DeletedExpense は削除された支出のIDエコーです。
type DeletedExpense struct {
	ID uint `json:"id"`
}

// ExpenseRepository は支出エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ExpenseRepository interface {
	// Add は新しい支出をストレージに永続化します。
	Add(ctx context.Context, expense *entity.Expense) (*entity.Expense, error)

	// Edit は所有者の支出をIDで更新します。
	// 所有する行が一致しない場合は nil を返します。
	Edit(ctx context.Context, expense *entity.Expense) (*entity.Expense, error)

	// List は条件に一致する支出をID降順で取得します。
	// page と limit の双方が非負のときのみページングが適用されます。
	List(ctx context.Context, page, limit int, filter Filter) (*ExpensePage, error)

	// Delete は所有者の支出をIDで削除します。
	Delete(ctx context.Context, id, ownerID uint) error
}

// ExpenseInput は支出作成・更新の検証済み入力です。
type ExpenseInput struct {
	Amount      int64
	Category    string
	Description string
	Date        string
}

// expensesUsecase は支出管理のビジネスロジックを実装します。
type expensesUsecase struct {
	expenses ExpenseRepository
}

// NewExpensesUsecase はexpensesUsecaseの新しいインスタンスを生成します。
func NewExpensesUsecase(expenses ExpenseRepository) *expensesUsecase {
	return &expensesUsecase{expenses: expenses}
}

// parseDate は検証済みの日時文字列を時刻値へ変換します。
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperr.DataValidation([]apperr.FieldViolation{{
			Field:      "date",
			Constraint: "datetime",
			Message:    "Field 'date' failed on the 'datetime' constraint",
		}})
	}
	return date, nil
}

// AddExpense は認証済みユーザーの支出を作成します。
// 所有者は常に呼び出し元のIDになり、入力で上書きできません。
func (u *expensesUsecase) AddExpense(ctx context.Context, ownerID uint, in ExpenseInput) (*entity.Expense, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	created, err := u.expenses.Add(ctx, &entity.Expense{
		UserID:      ownerID,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}
	return created, nil
}

// EditExpense は認証済みユーザー自身の支出をIDで更新します。
// 他ユーザーの支出は一致せず、nil が返ります。所有者の変更はできません。
func (u *expensesUsecase) EditExpense(ctx context.Context, ownerID, id uint, in ExpenseInput) (*entity.Expense, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	updated, err := u.expenses.Edit(ctx, &entity.Expense{
		ID:          id,
		UserID:      ownerID,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to edit expense: %w", err)
	}
	return updated, nil
}

// ListExpenses は認証済みユーザーの支出一覧を取得します。
// page・limit に NoPagination を渡すと全件を返します。
func (u *expensesUsecase) ListExpenses(ctx context.Context, ownerID uint, page, limit int) (*ExpensePage, error) {
	return u.expenses.List(ctx, page, limit, Filter{UserID: ownerID})
}

// DeleteExpense は認証済みユーザー自身の支出を削除します。
// 所有範囲内に存在しない場合はオブジェクト未検出エラーになります。
func (u *expensesUsecase) DeleteExpense(ctx context.Context, ownerID, id uint) (*DeletedExpense, error) {
	page, err := u.expenses.List(ctx, NoPagination, NoPagination, Filter{UserID: ownerID, ID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to look up expense: %w", err)
	}
	if len(page.Items) == 0 {
		return nil, apperr.ObjectNotFound("Expense not found")
	}

	if err := u.expenses.Delete(ctx, id, ownerID); err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}

	return &DeletedExpense{ID: id}, nil
}
