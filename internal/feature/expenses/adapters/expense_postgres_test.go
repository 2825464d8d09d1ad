package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"expense_backend/internal/feature/expenses/domain/entity"
	"expense_backend/internal/feature/expenses/usecase"
	userentity "expense_backend/internal/feature/users/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&userentity.User{}, &entity.Expense{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// createTestExpense inserts an expense owned by the given user.
func createTestExpense(t *testing.T, db *gorm.DB, ownerID uint, amount int64) *entity.Expense {
	t.Helper()

	repo := NewExpensePostgres(db)
	e, err := repo.Add(context.Background(), &entity.Expense{
		UserID:      ownerID,
		Amount:      amount,
		Category:    "groceries",
		Description: "weekly shop",
		Date:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err, "failed to create test expense")
	return e
}

func TestExpensePostgres_Add(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExpensePostgres(db)

	e, err := repo.Add(context.Background(), &entity.Expense{
		UserID:      1,
		Amount:      2500,
		Category:    "transport",
		Description: "metro card",
		Date:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NotZero(t, e.ID, "ID is not set")
	assert.False(t, e.CreatedAt.IsZero(), "CreatedAt is not set")
}

func TestExpensePostgres_Edit(t *testing.T) {
	t.Run("owned expense is updated", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExpensePostgres(db)
		e := createTestExpense(t, db, 1, 1000)

		updated, err := repo.Edit(context.Background(), &entity.Expense{
			ID:          e.ID,
			UserID:      1,
			Amount:      1500,
			Category:    "dining",
			Description: "lunch",
			Date:        e.Date,
		})

		require.NoError(t, err)
		require.NotNil(t, updated)

		var got entity.Expense
		require.NoError(t, db.First(&got, e.ID).Error)
		assert.Equal(t, int64(1500), got.Amount)
		assert.Equal(t, "dining", got.Category)
	})

	t.Run("another user's expense is never touched", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExpensePostgres(db)
		e := createTestExpense(t, db, 1, 1000)

		updated, err := repo.Edit(context.Background(), &entity.Expense{
			ID:          e.ID,
			UserID:      2,
			Amount:      9999,
			Category:    "hijack",
			Description: "hijack",
			Date:        e.Date,
		})

		require.NoError(t, err)
		assert.Nil(t, updated, "foreign expense should not match")

		var got entity.Expense
		require.NoError(t, db.First(&got, e.ID).Error)
		assert.Equal(t, int64(1000), got.Amount)
		assert.Equal(t, uint(1), got.UserID, "ownership must not transfer")
	})
}

func TestExpensePostgres_List(t *testing.T) {
	t.Run("filters strictly by owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExpensePostgres(db)
		createTestExpense(t, db, 1, 100)
		createTestExpense(t, db, 2, 200)
		createTestExpense(t, db, 1, 300)

		page, err := repo.List(context.Background(), -1, -1, usecase.Filter{UserID: 1})

		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		require.Len(t, page.Items, 2)
		for _, item := range page.Items {
			assert.Equal(t, uint(1), item.UserID)
		}
	})

	t.Run("pagination window by descending id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExpensePostgres(db)
		var ids []uint
		for i := 0; i < 12; i++ {
			e := createTestExpense(t, db, 1, int64(100*(i+1)))
			ids = append(ids, e.ID)
		}

		page, err := repo.List(context.Background(), 2, 5, usecase.Filter{UserID: 1})

		require.NoError(t, err)
		assert.Equal(t, int64(12), page.Total)
		require.Len(t, page.Items, 5)
		// ID降順で6件目〜10件目
		assert.Equal(t, ids[6], page.Items[0].ID)
		assert.Equal(t, ids[2], page.Items[4].ID)
	})

	t.Run("no pagination returns all matching rows", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExpensePostgres(db)
		for i := 0; i < 25; i++ {
			createTestExpense(t, db, 1, int64(i+1))
		}

		page, err := repo.List(context.Background(), -1, -1, usecase.Filter{UserID: 1})

		require.NoError(t, err)
		assert.Len(t, page.Items, 25)
		assert.Zero(t, page.Page)
		assert.Zero(t, page.Limit)
	})

	t.Run("filter by id within owner scope", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExpensePostgres(db)
		e := createTestExpense(t, db, 1, 100)

		page, err := repo.List(context.Background(), -1, -1, usecase.Filter{UserID: 2, ID: e.ID})

		require.NoError(t, err)
		assert.Empty(t, page.Items, "foreign expense should not be visible")
	})
}

func TestExpensePostgres_Delete(t *testing.T) {
	t.Run("owned expense is deleted", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExpensePostgres(db)
		e := createTestExpense(t, db, 1, 100)

		err := repo.Delete(context.Background(), e.ID, 1)

		require.NoError(t, err)
		var count int64
		require.NoError(t, db.Model(&entity.Expense{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("foreign expense survives a delete attempt", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewExpensePostgres(db)
		e := createTestExpense(t, db, 1, 100)

		err := repo.Delete(context.Background(), e.ID, 2)

		require.NoError(t, err)
		var count int64
		require.NoError(t, db.Model(&entity.Expense{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
