// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"expense_backend/internal/feature/users/domain/entity"
	"expense_backend/internal/feature/users/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// userPostgres はUserRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, usecase.ErrEmailAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, usecase.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return u, nil
}

// Update は指定IDの行へ部分更新を適用し、行が更新されたかどうかを返します。
func (r *userPostgres) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	// 更新対象フィールドがなくても行の存在確認を兼ねて更新日時を進める
	if len(fields) == 0 {
		fields = map[string]any{"updated_at": time.Now()}
	}

	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List は条件に一致するユーザーをID降順で取得します。
// page と limit の双方が非負のときのみ offset/limit を適用します。
func (r *userPostgres) List(ctx context.Context, page, limit int, filter usecase.UserFilter) (*usecase.UserPage, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, err
	}

	q := r.filtered(ctx, filter).Order("id DESC")
	result := &usecase.UserPage{Total: total}
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

// CountByEmail は指定メールアドレスのアカウント数を返します。
func (r *userPostgres) CountByEmail(ctx context.Context, email string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	if email != "" {
		q = q.Where("email = ?", email)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// filtered はフィルタ適用済みのクエリを生成します。ゼロ値の条件は無視されます。
func (r *userPostgres) filtered(ctx context.Context, filter usecase.UserFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	if filter.Email != "" {
		q = q.Where("email = ?", filter.Email)
	}
	if filter.UUID != "" {
		q = q.Where("uuid = ?", filter.UUID)
	}
	return q
}
