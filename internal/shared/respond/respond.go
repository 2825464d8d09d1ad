// Package respond は全エンドポイント共通のレスポンスエンベロープを提供します。
// 成功・失敗のどちらでも同一のフィールド構成で返却します。
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expense_backend/internal/shared/apperr"
)

// Envelope は全APIレスポンスの統一形式です。
// 成功時は failureMessage が空文字・failureResult が空配列、
// 失敗時は successMessage が空文字・successResult が空オブジェクトになります。
type Envelope struct {
	Status         int    `json:"status"`
	SuccessMessage string `json:"successMessage"`
	SuccessResult  any    `json:"successResult"`
	FailureMessage string `json:"failureMessage"`
	FailureResult  any    `json:"failureResult"`
}

func success(status int, message string, result any) Envelope {
	return Envelope{
		Status:         status,
		SuccessMessage: message,
		SuccessResult:  result,
		FailureMessage: "",
		FailureResult:  []any{},
	}
}

// OK は読み取り・ログイン成功用のエンベロープを生成します。
func OK(result any) Envelope {
	return success(http.StatusOK, "Success", result)
}

// Created は作成成功用のエンベロープを生成します。
func Created(result any) Envelope {
	return success(http.StatusCreated, "Successfully created", result)
}

// Updated は更新成功用のエンベロープを生成します。
func Updated(result any) Envelope {
	return success(http.StatusOK, "Successfully updated", result)
}

// Deleted は削除成功用のエンベロープを生成します。
func Deleted(result any) Envelope {
	return success(http.StatusOK, "Successfully deleted", result)
}

// Failure は失敗用のエンベロープを生成します。details が nil の場合は空配列になります。
func Failure(status int, message string, details any) Envelope {
	if details == nil {
		details = []any{}
	}
	return Envelope{
		Status:         status,
		SuccessMessage: "",
		SuccessResult:  gin.H{},
		FailureMessage: message,
		FailureResult:  details,
	}
}

// JSON はエンベロープをそのステータスコードでレスポンスに書き込みます。
func JSON(c *gin.Context, env Envelope) {
	c.JSON(env.Status, env)
}

// Error はエラーを分類し、失敗エンベロープとして書き込みます。
// ハンドラー内のエラー処理はこの1箇所に集約されます。
func Error(c *gin.Context, err error) {
	status, message, details := apperr.Classify(err)
	JSON(c, Failure(status, message, details))
}
