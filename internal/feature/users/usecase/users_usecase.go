package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"expense_backend/internal/feature/users/domain/entity"
	"expense_backend/internal/shared/apperr"
)

// NoPagination はページングなし（全件取得）を示す番兵値です。
const NoPagination = -1

// fromAddress はシステム送信メールの差出人です。
const fromAddress = `"Code Guru" <info@codeguru.ae>`

// resetEmailHTML はパスワードリセットメールの本文テンプレートです。
const resetEmailHTML = `
      <p>Hi %s,</p>
      <p>Click <a href="%s/reset-password?uuid=%s">here</a> to reset your password.</p>

      <p>Thanks,</p>
      <p>Code Guru</p>

      <p><small>This is an automated message. Please do not reply to this email.</small></p>
      `

// UserFilter は一覧取得の絞り込み条件です。ゼロ値のフィールドは無視されます。
type UserFilter struct {
	Email string
	UUID  string
}

// UserPage はページングされたユーザー一覧です。
type UserPage struct {
	Items []entity.User `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page,omitempty"`
	Limit int           `json:"limit,omitempty"`
}

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) (*entity.User, error)

	// Update は指定されたIDの行へ部分更新を適用し、行が更新されたかどうかを返します。
	Update(ctx context.Context, id uint, fields map[string]any) (bool, error)

	// List は条件に一致するユーザーをID降順で取得します。
	// page と limit の双方が非負のときのみページングが適用されます。
	List(ctx context.Context, page, limit int, filter UserFilter) (*UserPage, error)

	// CountByEmail は指定メールアドレスのアカウント数を返します。
	CountByEmail(ctx context.Context, email string) (int64, error)
}

// Mailer はメール送信を抽象化します。
type Mailer interface {
	// Send sends a single HTML email.
	Send(ctx context.Context, from, to, subject, html string) error
}

// CreateUserInput はユーザー作成の検証済み入力です。
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateAccountInput はアカウント更新の検証済み入力です。
// nil のフィールドは変更しません。
type UpdateAccountInput struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// usersUsecase はユーザー管理のビジネスロジックを実装します。
type usersUsecase struct {
	users  UserRepository
	mailer Mailer
	appURL string
}

// NewUsersUsecase はusersUsecaseの新しいインスタンスを生成します。
func NewUsersUsecase(users UserRepository, mailer Mailer, appURL string) *usersUsecase {
	return &usersUsecase{
		users:  users,
		mailer: mailer,
		appURL: appURL,
	}
}

// ListUsers はユーザー一覧を取得します。
// page・limit に NoPagination を渡すと全件を返します。
func (u *usersUsecase) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	return u.users.List(ctx, page, limit, UserFilter{})
}

// CreateUser はハッシュ化されたパスワードで新規ユーザーを登録します。
// 同じメールアドレスのアカウントが既に存在する場合は重複エラーになります。
func (u *usersUsecase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	count, err := u.users.CountByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		return nil, apperr.DuplicateObject("")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
	})
	if err != nil {
		// 事前チェックはアドバイザリ。競合時はDBの一意制約がここで効く。
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, apperr.DuplicateObject("")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// UpdateMyAccount は本人のアカウント情報を部分更新します。
// 行が更新されなかった場合はオブジェクト未検出エラーになります。
func (u *usersUsecase) UpdateMyAccount(ctx context.Context, id uint, in UpdateAccountInput) (bool, error) {
	fields := map[string]any{}
	if in.FirstName != nil {
		fields["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		fields["last_name"] = *in.LastName
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}

	updated, err := u.users.Update(ctx, id, fields)
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	if !updated {
		return false, apperr.ObjectNotFound("User was not found")
	}

	return true, nil
}

// RequestPasswordReset はメールアドレスと公開識別子の組でユーザーを特定し、
// リセットリンクをメールで送信します。トークンは呼び出し元へは返しません。
func (u *usersUsecase) RequestPasswordReset(ctx context.Context, email, userUUID string) error {
	user, err := u.findByEmailAndUUID(ctx, email, userUUID)
	if err != nil {
		return err
	}

	html := fmt.Sprintf(resetEmailHTML, user.FirstName, u.appURL, user.UUID)
	if err := u.mailer.Send(ctx, fromAddress, email, "Password Reset", html); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword はメールアドレスと公開識別子で本人性を再確認し、パスワードを更新します。
func (u *usersUsecase) ResetPassword(ctx context.Context, email, userUUID, password string) error {
	user, err := u.findByEmailAndUUID(ctx, email, userUUID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := u.users.Update(ctx, user.ID, map[string]any{"password": string(hashed)}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// findByEmailAndUUID はリセットフロー共通のユーザー特定処理です。
func (u *usersUsecase) findByEmailAndUUID(ctx context.Context, email, userUUID string) (*entity.User, error) {
	page, err := u.users.List(ctx, NoPagination, NoPagination, UserFilter{Email: email, UUID: userUUID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(page.Items) == 0 {
		return nil, apperr.ObjectNotFound("User was not found")
	}

	return &page.Items[0], nil
}
