// Package dto はusersフィーチャーのリクエスト/レスポンス型を定義します。
package dto

import "strings"

// CreateUserRequest はユーザー作成リクエストのボディです。
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,max=50"`
}

// Normalize は前後の空白を除去します。
func (r *CreateUserRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}
