package dto

import "strings"

// UpdateAccountRequest はアカウント更新リクエストのボディです。
// すべてのフィールドが省略可能で、省略されたフィールドは変更されません。
type UpdateAccountRequest struct {
	FirstName *string `json:"firstName" validate:"omitnil,min=1,max=50"`
	LastName  *string `json:"lastName" validate:"omitnil,min=1,max=50"`
	Email     *string `json:"email" validate:"omitnil,email"`
}

// Normalize は前後の空白を除去します。
func (r *UpdateAccountRequest) Normalize() {
	if r.FirstName != nil {
		*r.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		*r.LastName = strings.TrimSpace(*r.LastName)
	}
}
