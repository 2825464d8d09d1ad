// Package apperr はアプリケーション全体で使用するドメインエラーの分類を定義します。
// エラー種別は閉じた集合であり、Classify が種別ごとにHTTPステータスとメッセージへ変換します。
package apperr

import (
	"errors"
	"log/slog"
	"net/http"
)

// Kind はドメインエラーの種別を表します。
type Kind int

const (
	// KindUnknown は分類できないエラーを表します。常に500へフォールバックします。
	KindUnknown Kind = iota
	// KindDataValidation は入力データのバリデーション失敗を表します。
	KindDataValidation
	// KindObjectNotFound は対象オブジェクトが見つからないことを表します。
	KindObjectNotFound
	// KindDependencyNotFound は依存オブジェクトが見つからないことを表します。
	KindDependencyNotFound
	// KindInvalidRequest は不正なリクエストを表します。
	KindInvalidRequest
	// KindNameUnique は名前の一意制約違反を表します。
	KindNameUnique
	// KindFilePath はファイルパスが不正であることを表します。
	KindFilePath
	// KindDuplicateObject はオブジェクトの重複を表します。
	KindDuplicateObject
	// KindDeleteResource はリソース削除の失敗を表します。
	KindDeleteResource
	// KindServerArgs はサーバー側引数の不正を表します。
	KindServerArgs
)

// FieldViolation はバリデーション違反1件を表します。
// Details として DataValidation エラーに順序付きで添付されます。
type FieldViolation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// Error は種別タグ付きのドメインエラーです。
// 具象型の完全一致でディスパッチされ、メッセージの内容には依存しません。
type Error struct {
	Kind    Kind
	Message string
	Details any
}

// Error はerrorインターフェースを実装します。
func (e *Error) Error() string { return e.Message }

// DataValidation はバリデーション違反リストを持つエラーを生成します。
func DataValidation(details []FieldViolation) *Error {
	return &Error{Kind: KindDataValidation, Message: "Data validation error", Details: details}
}

// ObjectNotFound はオブジェクト未検出エラーを生成します。
func ObjectNotFound(message string) *Error {
	if message == "" {
		message = "Object not found error"
	}
	return &Error{Kind: KindObjectNotFound, Message: message}
}

// DependencyNotFound は依存オブジェクト未検出エラーを生成します。
func DependencyNotFound(details any) *Error {
	return &Error{Kind: KindDependencyNotFound, Message: "Dependency not found error", Details: details}
}

// InvalidRequest は不正リクエストエラーを生成します。
func InvalidRequest(message string) *Error {
	if message == "" {
		message = "Invalid request"
	}
	return &Error{Kind: KindInvalidRequest, Message: message}
}

// NameUnique は名前一意制約違反エラーを生成します。
func NameUnique() *Error {
	return &Error{Kind: KindNameUnique, Message: "Name unique error"}
}

// FilePath はファイルパスエラーを生成します。
func FilePath() *Error {
	return &Error{Kind: KindFilePath, Message: "Image path error"}
}

// DuplicateObject はオブジェクト重複エラーを生成します。
func DuplicateObject(message string) *Error {
	if message == "" {
		message = "Object(s) already exists"
	}
	return &Error{Kind: KindDuplicateObject, Message: message}
}

// DeleteResource はリソース削除エラーを生成します。
func DeleteResource(message string) *Error {
	if message == "" {
		message = "Error deleting resource"
	}
	return &Error{Kind: KindDeleteResource, Message: message}
}

// ServerArgs はサーバー引数エラーを生成します。
func ServerArgs(message string) *Error {
	if message == "" {
		message = "Server args error"
	}
	return &Error{Kind: KindServerArgs, Message: message}
}

// Classify は任意のエラーをHTTPステータス・公開メッセージ・詳細ペイロードへ変換します。
// 未知の種別は常に汎用の500へフォールバックし、内部情報を漏らしません。
func Classify(err error) (status int, message string, details any) {
	var ae *Error
	if !errors.As(err, &ae) {
		slog.Error("unclassified error", "error", err)
		return http.StatusInternalServerError, "Server error.", nil
	}

	switch ae.Kind {
	case KindDataValidation:
		return http.StatusUnprocessableEntity, "Data validation errors.", ae.Details
	case KindObjectNotFound:
		return http.StatusNotFound, ae.Message, nil
	case KindDependencyNotFound:
		return http.StatusBadRequest, "Dependency was not found.", ae.Details
	case KindInvalidRequest:
		return http.StatusBadRequest, ae.Message, nil
	case KindNameUnique:
		return http.StatusConflict, "Name should be unique.", nil
	case KindFilePath:
		return http.StatusNotFound, "File at path was not found.", nil
	case KindDuplicateObject:
		return http.StatusConflict, ae.Message, nil
	case KindDeleteResource:
		return http.StatusConflict, ae.Message, nil
	case KindServerArgs:
		slog.Error("server args error", "error", ae)
		return http.StatusInternalServerError, ae.Message, nil
	default:
		slog.Error("unclassified error kind", "kind", int(ae.Kind), "error", ae)
		return http.StatusInternalServerError, "Server error.", nil
	}
}
