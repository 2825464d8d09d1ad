package dto

// RequestPasswordResetRequest はパスワードリセット依頼のボディです。
// 公開識別子とメールアドレスの組でユーザーを特定します。
type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
	UUID  string `json:"uuid" validate:"required,uuid"`
}

// ResetPasswordRequest はパスワード再設定のボディです。
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=50"`
	UUID     string `json:"uuid" validate:"required,uuid"`
}
