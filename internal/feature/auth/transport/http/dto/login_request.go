// Package dto はauthフィーチャーのリクエスト/レスポンス型を定義します。
package dto

import "strings"

// LoginRequest はログインリクエストのボディです。
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,max=50"`
}

// Normalize は前後の空白を除去します。
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}
