// Package validate は操作ごとの入力スキーマを厳格に検証します。
// 未知フィールドは黙って捨てずにバリデーションエラーとして失敗させ、
// 違反は入力順に並んだフィールド違反リストとして返します。
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"expense_backend/internal/shared/apperr"
)

var vld = newValidator()

// newValidator はJSONタグ名をフィールド名として報告するバリデーターを生成します。
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalizer を実装するDTOは、検証の前に正規化（前後空白の除去など）されます。
type Normalizer interface {
	Normalize()
}

// JSON はリクエストボディを厳格にデコードし、正規化してから検証します。
// 失敗時は必ず apperr のDataValidationエラーを返し、部分的に解析された値を返しません。
func JSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.DataValidation([]apperr.FieldViolation{decodeViolation(err)})
	}

	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}

	return Struct(dst)
}

// Query はクエリパラメータをJSONと同じ経路で検証します。
// 数値として解釈できる値は数値へ変換してからスキーマへ渡します。
func Query(q url.Values, dst any) error {
	m := make(map[string]any, len(q))
	for k, vs := range q {
		var v string
		if len(vs) > 0 {
			v = vs[0]
		}
		if n, err := strconv.Atoi(v); err == nil {
			m[k] = n
		} else {
			m[k] = v
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal query params: %w", err)
	}

	return JSON(bytes.NewReader(b), dst)
}

// Struct は validate タグに基づいて構造体を検証し、
// 違反をフィールド違反リストへ変換します。
func Struct(dst any) error {
	err := vld.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	violations := make([]apperr.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, apperr.FieldViolation{
			Field:      fe.Field(),
			Constraint: fe.Tag(),
			Message:    fmt.Sprintf("Field '%s' failed on the '%s' constraint", fe.Field(), fe.Tag()),
		})
	}

	return apperr.DataValidation(violations)
}

var unknownFieldRe = regexp.MustCompile(`json: unknown field "([^"]+)"`)

// decodeViolation はJSONデコードエラーを1件のフィールド違反へ変換します。
func decodeViolation(err error) apperr.FieldViolation {
	if m := unknownFieldRe.FindStringSubmatch(err.Error()); m != nil {
		return apperr.FieldViolation{
			Field:      m[1],
			Constraint: "unrecognized_keys",
			Message:    fmt.Sprintf("Unrecognized field '%s'", m[1]),
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperr.FieldViolation{
			Field:      typeErr.Field,
			Constraint: "invalid_type",
			Message:    fmt.Sprintf("Field '%s' has an invalid type", typeErr.Field),
		}
	}

	return apperr.FieldViolation{
		Constraint: "invalid_json",
		Message:    "Request body is not valid JSON",
	}
}
