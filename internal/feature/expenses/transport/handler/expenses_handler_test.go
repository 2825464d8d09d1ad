package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"expense_backend/internal/feature/expenses/domain/entity"
	"expense_backend/internal/feature/expenses/usecase"
	"expense_backend/internal/platform/token"
	"expense_backend/internal/shared/apperr"
)

// mockExpensesUsecase is a mock implementation of the ExpensesUsecase interface.
type mockExpensesUsecase struct {
	AddExpenseFunc    func(ctx context.Context, ownerID uint, in usecase.ExpenseInput) (*entity.Expense, error)
	EditExpenseFunc   func(ctx context.Context, ownerID, id uint, in usecase.ExpenseInput) (*entity.Expense, error)
	ListExpensesFunc  func(ctx context.Context, ownerID uint, page, limit int) (*usecase.ExpensePage, error)
	DeleteExpenseFunc func(ctx context.Context, ownerID, id uint) (*usecase.DeletedExpense, error)
}

func (m *mockExpensesUsecase) AddExpense(ctx context.Context, ownerID uint, in usecase.ExpenseInput) (*entity.Expense, error) {
	if m.AddExpenseFunc != nil {
		return m.AddExpenseFunc(ctx, ownerID, in)
	}
	return nil, errors.New("add failed")
}

func (m *mockExpensesUsecase) EditExpense(ctx context.Context, ownerID, id uint, in usecase.ExpenseInput) (*entity.Expense, error) {
	if m.EditExpenseFunc != nil {
		return m.EditExpenseFunc(ctx, ownerID, id, in)
	}
	return nil, errors.New("edit failed")
}

func (m *mockExpensesUsecase) ListExpenses(ctx context.Context, ownerID uint, page, limit int) (*usecase.ExpensePage, error) {
	if m.ListExpensesFunc != nil {
		return m.ListExpensesFunc(ctx, ownerID, page, limit)
	}
	return &usecase.ExpensePage{Items: []entity.Expense{}}, nil
}

func (m *mockExpensesUsecase) DeleteExpense(ctx context.Context, ownerID, id uint) (*usecase.DeletedExpense, error) {
	if m.DeleteExpenseFunc != nil {
		return m.DeleteExpenseFunc(ctx, ownerID, id)
	}
	return nil, errors.New("delete failed")
}

// withUser simulates the auth middleware having verified a token.
func withUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set(token.ContextUserID, id) }
}

func TestExpensesHandler_AddExpense(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := gin.H{
		"amount":      1200,
		"category":    "groceries",
		"description": "weekly shopping",
		"date":        "2026-08-01T10:30:00Z",
	}

	tests := []struct {
		name            string
		requestBody     gin.H
		mockAddFunc     func(ctx context.Context, ownerID uint, in usecase.ExpenseInput) (*entity.Expense, error)
		expectedStatus  int
		expectedFailure string
	}{
		{
			name:        "success: expense created for the caller",
			requestBody: validBody,
			mockAddFunc: func(ctx context.Context, ownerID uint, in usecase.ExpenseInput) (*entity.Expense, error) {
				assert.Equal(t, uint(7), ownerID)
				assert.Equal(t, int64(1200), in.Amount)
				return &entity.Expense{ID: 1, UserID: ownerID, Amount: in.Amount, Category: in.Category}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "success: user field in the body is ignored",
			requestBody: gin.H{
				"user":        999,
				"amount":      1200,
				"category":    "groceries",
				"description": "weekly shopping",
				"date":        "2026-08-01T10:30:00Z",
			},
			mockAddFunc: func(ctx context.Context, ownerID uint, in usecase.ExpenseInput) (*entity.Expense, error) {
				assert.Equal(t, uint(7), ownerID)
				return &entity.Expense{ID: 1, UserID: ownerID}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "failure: non-positive amount",
			requestBody:     gin.H{"amount": 0, "category": "groceries", "description": "weekly shopping", "date": "2026-08-01T10:30:00Z"},
			mockAddFunc:     nil, // Usecase is not called
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedFailure: "Data validation errors.",
		},
		{
			name:            "failure: malformed date",
			requestBody:     gin.H{"amount": 1200, "category": "groceries", "description": "weekly shopping", "date": "01/08/2026"},
			mockAddFunc:     nil, // Usecase is not called
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedFailure: "Data validation errors.",
		},
		{
			name:            "failure: unrecognized key",
			requestBody:     gin.H{"amount": 1200, "category": "groceries", "description": "weekly shopping", "date": "2026-08-01T10:30:00Z", "note": "x"},
			mockAddFunc:     nil, // Usecase is not called
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedFailure: "Data validation errors.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockExpensesUsecase{AddExpenseFunc: tt.mockAddFunc}
			handler := NewExpensesHandler(mockUC)

			router := gin.New()
			router.POST("/api/expenses", withUser(7), handler.AddExpense)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))

			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, "Successfully created", responseBody["successMessage"])
			} else {
				assert.Equal(t, tt.expectedFailure, responseBody["failureMessage"])
			}
		})
	}
}

func TestExpensesHandler_AddExpense_NoAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewExpensesHandler(&mockExpensesUsecase{
		AddExpenseFunc: func(ctx context.Context, ownerID uint, in usecase.ExpenseInput) (*entity.Expense, error) {
			t.Fatal("usecase must not be called without an authenticated user")
			return nil, nil
		},
	})

	router := gin.New()
	router.POST("/api/expenses", handler.AddExpense)

	body, _ := json.Marshal(gin.H{"amount": 1200, "category": "g", "description": "d", "date": "2026-08-01T10:30:00Z"})
	req, _ := http.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExpensesHandler_EditExpense(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := gin.H{
		"id":          42,
		"amount":      900,
		"category":    "transport",
		"description": "train pass",
		"date":        "2026-08-02T08:00:00Z",
	}

	t.Run("success: owned expense updated", func(t *testing.T) {
		mockUC := &mockExpensesUsecase{
			EditExpenseFunc: func(ctx context.Context, ownerID, id uint, in usecase.ExpenseInput) (*entity.Expense, error) {
				assert.Equal(t, uint(7), ownerID)
				assert.Equal(t, uint(42), id)
				return &entity.Expense{ID: id, UserID: ownerID, Amount: in.Amount}, nil
			},
		}
		handler := NewExpensesHandler(mockUC)

		router := gin.New()
		router.PATCH("/api/expenses", withUser(7), handler.EditExpense)

		body, _ := json.Marshal(validBody)
		req, _ := http.NewRequest(http.MethodPatch, "/api/expenses", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var responseBody gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		assert.Equal(t, "Successfully updated", responseBody["successMessage"])
	})

	t.Run("success: foreign expense yields a null result", func(t *testing.T) {
		mockUC := &mockExpensesUsecase{
			EditExpenseFunc: func(ctx context.Context, ownerID, id uint, in usecase.ExpenseInput) (*entity.Expense, error) {
				return nil, nil
			},
		}
		handler := NewExpensesHandler(mockUC)

		router := gin.New()
		router.PATCH("/api/expenses", withUser(7), handler.EditExpense)

		body, _ := json.Marshal(validBody)
		req, _ := http.NewRequest(http.MethodPatch, "/api/expenses", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var responseBody gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		assert.Nil(t, responseBody["successResult"])
	})

	t.Run("failure: missing id", func(t *testing.T) {
		handler := NewExpensesHandler(&mockExpensesUsecase{})

		router := gin.New()
		router.PATCH("/api/expenses", withUser(7), handler.EditExpense)

		body, _ := json.Marshal(gin.H{"amount": 900, "category": "transport", "description": "train pass", "date": "2026-08-02T08:00:00Z"})
		req, _ := http.NewRequest(http.MethodPatch, "/api/expenses", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestExpensesHandler_GetExpenses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: paginated listing for the caller", func(t *testing.T) {
		mockUC := &mockExpensesUsecase{
			ListExpensesFunc: func(ctx context.Context, ownerID uint, page, limit int) (*usecase.ExpensePage, error) {
				assert.Equal(t, uint(7), ownerID)
				assert.Equal(t, 2, page)
				assert.Equal(t, 5, limit)
				return &usecase.ExpensePage{Items: []entity.Expense{{ID: 3, UserID: 7}}, Total: 12, Page: 2, Limit: 5}, nil
			},
		}
		handler := NewExpensesHandler(mockUC)

		router := gin.New()
		router.GET("/api/expenses", withUser(7), handler.GetExpenses)

		req, _ := http.NewRequest(http.MethodGet, "/api/expenses?page=2&limit=5", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var responseBody gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		result, ok := responseBody["successResult"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, float64(12), result["total"])
		assert.Equal(t, float64(2), result["page"])
	})

	t.Run("success: omitted parameters return everything", func(t *testing.T) {
		mockUC := &mockExpensesUsecase{
			ListExpensesFunc: func(ctx context.Context, ownerID uint, page, limit int) (*usecase.ExpensePage, error) {
				assert.Equal(t, usecase.NoPagination, page)
				assert.Equal(t, usecase.NoPagination, limit)
				return &usecase.ExpensePage{Items: []entity.Expense{}, Total: 0}, nil
			},
		}
		handler := NewExpensesHandler(mockUC)

		router := gin.New()
		router.GET("/api/expenses", withUser(7), handler.GetExpenses)

		req, _ := http.NewRequest(http.MethodGet, "/api/expenses", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("failure: limit below the window", func(t *testing.T) {
		handler := NewExpensesHandler(&mockExpensesUsecase{})

		router := gin.New()
		router.GET("/api/expenses", withUser(7), handler.GetExpenses)

		req, _ := http.NewRequest(http.MethodGet, "/api/expenses?page=1&limit=2", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestExpensesHandler_DeleteExpense(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: owned expense deleted", func(t *testing.T) {
		mockUC := &mockExpensesUsecase{
			DeleteExpenseFunc: func(ctx context.Context, ownerID, id uint) (*usecase.DeletedExpense, error) {
				assert.Equal(t, uint(7), ownerID)
				assert.Equal(t, uint(42), id)
				return &usecase.DeletedExpense{ID: id}, nil
			},
		}
		handler := NewExpensesHandler(mockUC)

		router := gin.New()
		router.DELETE("/api/expenses", withUser(7), handler.DeleteExpense)

		req, _ := http.NewRequest(http.MethodDelete, "/api/expenses?id=42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var responseBody gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		result, ok := responseBody["successResult"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, float64(42), result["id"])
	})

	t.Run("failure: missing id parameter", func(t *testing.T) {
		handler := NewExpensesHandler(&mockExpensesUsecase{})

		router := gin.New()
		router.DELETE("/api/expenses", withUser(7), handler.DeleteExpense)

		req, _ := http.NewRequest(http.MethodDelete, "/api/expenses", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("failure: foreign or missing expense", func(t *testing.T) {
		mockUC := &mockExpensesUsecase{
			DeleteExpenseFunc: func(ctx context.Context, ownerID, id uint) (*usecase.DeletedExpense, error) {
				return nil, apperr.ObjectNotFound("Expense not found")
			},
		}
		handler := NewExpensesHandler(mockUC)

		router := gin.New()
		router.DELETE("/api/expenses", withUser(7), handler.DeleteExpense)

		req, _ := http.NewRequest(http.MethodDelete, "/api/expenses?id=42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var responseBody gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
		assert.Equal(t, "Expense not found", responseBody["failureMessage"])
	})
}
