package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	violations := []FieldViolation{
		{Field: "email", Constraint: "email", Message: "Field 'email' failed on the 'email' constraint"},
	}

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
		expectedDetails any
	}{
		{
			name:            "data validation error",
			err:             DataValidation(violations),
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedMessage: "Data validation errors.",
			expectedDetails: violations,
		},
		{
			name:            "object not found with custom message",
			err:             ObjectNotFound("User was not found"),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "User was not found",
		},
		{
			name:            "object not found with default message",
			err:             ObjectNotFound(""),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Object not found error",
		},
		{
			name:            "dependency not found",
			err:             DependencyNotFound(map[string]string{"missing": "category"}),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Dependency was not found.",
			expectedDetails: map[string]string{"missing": "category"},
		},
		{
			name:            "invalid request carries its own message",
			err:             InvalidRequest("Bad credentials"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Bad credentials",
		},
		{
			name:            "name unique",
			err:             NameUnique(),
			expectedStatus:  http.StatusConflict,
			expectedMessage: "Name should be unique.",
		},
		{
			name:            "file path",
			err:             FilePath(),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "File at path was not found.",
		},
		{
			name:            "duplicate object with default message",
			err:             DuplicateObject(""),
			expectedStatus:  http.StatusConflict,
			expectedMessage: "Object(s) already exists",
		},
		{
			name:            "delete resource",
			err:             DeleteResource("Expense is referenced"),
			expectedStatus:  http.StatusConflict,
			expectedMessage: "Expense is referenced",
		},
		{
			name:            "server args",
			err:             ServerArgs("missing authenticated user"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "missing authenticated user",
		},
		{
			name:            "unclassified error falls back to generic 500",
			err:             errors.New("pq: connection refused"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Server error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, message, details := Classify(tt.err)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedMessage, message)
			assert.Equal(t, tt.expectedDetails, details)
		})
	}
}

// ラップされたエラーでも種別で分類されることを検証します。
func TestClassify_WrappedError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("delete expense: %w", ObjectNotFound("Expense not found"))

	status, message, _ := Classify(wrapped)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Expense not found", message)
}

// 未知の種別値は内部を漏らさず500へ落ちることを検証します。
func TestClassify_UnknownKindFailsClosed(t *testing.T) {
	t.Parallel()

	status, message, details := Classify(&Error{Kind: Kind(99), Message: "internal detail"})

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Server error.", message)
	assert.Nil(t, details)
}
