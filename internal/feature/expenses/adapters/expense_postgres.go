// Package adapters はexpensesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"expense_backend/internal/feature/expenses/domain/entity"
	"expense_backend/internal/feature/expenses/usecase"
)

// expensePostgres はExpenseRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type expensePostgres struct {
	db *gorm.DB
}

// expensePostgresがExpenseRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ExpenseRepository = (*expensePostgres)(nil)

// NewExpensePostgres は指定されたgorm.DB接続でexpensePostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewExpensePostgres(db *gorm.DB) *expensePostgres {
	return &expensePostgres{db: db}
}

// Add は支出をデータベースに追加します。
func (r *expensePostgres) Add(ctx context.Context, e *entity.Expense) (*entity.Expense, error) {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Edit は所有者の支出をIDで更新します。
// WHERE句に所有者IDを含むため、他ユーザーの行は決して更新されません。
func (r *expensePostgres) Edit(ctx context.Context, e *entity.Expense) (*entity.Expense, error) {
	res := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Where("id = ? AND user_id = ?", e.ID, e.UserID).
		Updates(map[string]any{
			"amount":      e.Amount,
			"category":    e.Category,
			"description": e.Description,
			"date":        e.Date,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return e, nil
}

// List は条件に一致する支出をID降順で取得します。
// page と limit の双方が非負のときのみ offset/limit を適用します。
func (r *expensePostgres) List(ctx context.Context, page, limit int, filter usecase.Filter) (*usecase.ExpensePage, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, err
	}

	q := r.filtered(ctx, filter).Order("id DESC")
	result := &usecase.ExpensePage{Total: total}
	if page >= 0 && limit >= 0 {
		q = q.Offset((page - 1) * limit).Limit(limit)
		result.Page = page
		result.Limit = limit
	}

	if err := q.Find(&result.Items).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Delete は所有者の支出をIDで削除します。
func (r *expensePostgres) Delete(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&entity.Expense{}).Error
}

// filtered はフィルタ適用済みのクエリを生成します。ゼロ値の条件は無視されます。
func (r *expensePostgres) filtered(ctx context.Context, filter usecase.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.Expense{})
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.ID != 0 {
		q = q.Where("id = ?", filter.ID)
	}
	return q
}
