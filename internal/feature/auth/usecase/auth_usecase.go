// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	userentity "expense_backend/internal/feature/users/domain/entity"
	usersusecase "expense_backend/internal/feature/users/usecase"
	"expense_backend/internal/shared/apperr"
)

// UserReader はログインに必要なユーザー取得を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserReader interface {
	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、usersusecase.ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*userentity.User, error)
}

// TokenIssuer はトークン発行のインターフェースを定義します。
type TokenIssuer interface {
	// Sign は指定されたユーザーの署名済みトークンを発行します。
	Sign(userID uint, name string) (string, error)
}

// PublicUser はログイン応答に含めるユーザーの公開プロジェクションです。
// パスワードは決して含まれません。
type PublicUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// LoginResult はログイン成功時の結果です。
type LoginResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserReader
	issuer TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserReader, issuer TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		issuer: issuer,
	}
}

// Login はユーザーを認証し、成功時にトークンと公開プロジェクションを返します。
// ユーザー未検出とパスワード不一致は区別できない同一のエラーになります
// （エラーメッセージによるユーザー列挙を防止）。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, usersusecase.ErrUserNotFound) {
		// インフラ障害は認証失敗として隠さず、そのまま伝播させる
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, apperr.InvalidRequest("Bad credentials")
	}

	signed, err := u.issuer.Sign(user.ID, user.FullName())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{
		Token: signed,
		User: PublicUser{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
	}, nil
}
