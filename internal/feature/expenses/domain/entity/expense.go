// Package entity はexpensesフィーチャーのドメインエンティティを定義します。
package entity

import (
	"time"

	userentity "expense_backend/internal/feature/users/domain/entity"
)

// Expense はユーザーに紐づく支出レコードを表します。
// 支出は必ず1人のユーザーに属し、公開されている操作では所有者は変更されません。
type Expense struct {
	// ID is the unique identifier for the expense.
	ID uint `gorm:"primaryKey" json:"id"`

	// UserID is the owning user's id. Expenses are deleted with their owner.
	UserID uint `gorm:"not null;index" json:"user"`

	// User is the owning user association, used for the cascade constraint.
	User *userentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	// Amount is the expense amount in the smallest currency unit.
	Amount int64 `gorm:"not null" json:"amount"`

	// Category is a free-text category label.
	Category string `gorm:"size:50;not null" json:"category"`

	// Description is a free-text description.
	Description string `gorm:"size:50;not null" json:"description"`

	// Date is the caller-supplied date of the expense.
	Date time.Time `gorm:"not null" json:"date"`

	// CreatedAt is the timestamp when the expense was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the expense was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName はテーブル名を明示します。
func (Expense) TableName() string { return "expenses" }
