// Package entity はusersフィーチャーのドメインエンティティを定義します。
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User はシステムに登録されたユーザーを表します。
// クライアントへは内部IDに加えて非連番のUUIDを公開識別子として返します。
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// UUID is the non-sequential public identifier exposed to clients.
	// Password-reset lookups are keyed by it.
	UUID string `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`

	// FirstName is the user's given name. May be empty.
	FirstName string `gorm:"size:50" json:"firstName"`

	// LastName is the user's family name. May be empty.
	LastName string `gorm:"size:50" json:"lastName"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the hashed password for the user.
	// It is never serialized in read paths.
	Password string `gorm:"size:255;not null" json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName はテーブル名を明示します。
func (User) TableName() string { return "users" }

// BeforeCreate は公開識別子を採番します。
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.NewString()
	}
	return nil
}

// FullName は姓名から表示名を導出します。永続化はされません。
// どちらか一方のみの場合でも単一スペースで連結され、トリムされません。
// 両方空のときのみ空文字を返します。
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return ""
	}
	return u.FirstName + " " + u.LastName
}
