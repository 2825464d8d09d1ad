// Package dto はexpensesフィーチャーのリクエスト/レスポンス型を定義します。
package dto

import "strings"

// AddExpenseRequest は支出作成リクエストのボディです。
// user フィールドは受理されますが、所有者は常に認証済みユーザーになります。
type AddExpenseRequest struct {
	User        uint   `json:"user" validate:"omitempty,gt=0"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=50"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Normalize は前後の空白を除去します。
func (r *AddExpenseRequest) Normalize() {
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
}

// EditExpenseRequest は支出更新リクエストのボディです。
// 対象はIDで指定しますが、所有者のスコープ内でのみ一致します。
type EditExpenseRequest struct {
	ID          uint   `json:"id" validate:"required,gt=0"`
	User        uint   `json:"user" validate:"omitempty,gt=0"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=50"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Normalize は前後の空白を除去します。
func (r *EditExpenseRequest) Normalize() {
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
}

// ListExpensesRequest は支出一覧のクエリパラメータです。
// page と limit はどちらも省略可能で、省略時はページングなしを意味します。
type ListExpensesRequest struct {
	Page  *int `json:"page" validate:"omitnil,gt=0"`
	Limit *int `json:"limit" validate:"omitnil,gte=5,lte=20"`
}

// DeleteExpenseRequest は支出削除のクエリパラメータです。
type DeleteExpenseRequest struct {
	ID uint `json:"id" validate:"required,gt=0"`
}
