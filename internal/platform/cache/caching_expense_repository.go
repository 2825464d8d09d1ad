// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"expense_backend/internal/feature/expenses/domain/entity"
	"expense_backend/internal/feature/expenses/usecase"
)

// CachingExpenseRepository decorates an ExpenseRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingExpenseRepository struct {
	inner     usecase.ExpenseRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingExpenseRepository decorates an ExpenseRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "expenses".
func NewCachingExpenseRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ExpenseRepository, namespace string) *CachingExpenseRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "expenses"
	}
	return &CachingExpenseRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Add persists a new expense and invalidates the owner's cached listings.
func (c *CachingExpenseRepository) Add(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	created, err := c.inner.Add(ctx, expense)
	if err != nil {
		return nil, err
	}
	c.invalidateOwner(ctx, created.UserID)
	return created, nil
}

// Edit updates an owned expense and invalidates the owner's cached listings.
func (c *CachingExpenseRepository) Edit(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	updated, err := c.inner.Edit(ctx, expense)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		c.invalidateOwner(ctx, expense.UserID)
	}
	return updated, nil
}

// List retrieves expenses, checking cache first then falling back to the database.
func (c *CachingExpenseRepository) List(ctx context.Context, page, limit int, filter usecase.Filter) (*usecase.ExpensePage, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, page, limit, filter)
	}

	key := c.cacheKey(filter, page, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out usecase.ExpensePage
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx, page, limit, filter)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Delete removes an owned expense and invalidates the owner's cached listings.
func (c *CachingExpenseRepository) Delete(ctx context.Context, id, ownerID uint) error {
	if err := c.inner.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	c.invalidateOwner(ctx, ownerID)
	return nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingExpenseRepository) cacheKey(filter usecase.Filter, page, limit int) string {
	return fmt.Sprintf("%s:%d:%d:%d:%d",
		c.namespace,
		filter.UserID,
		filter.ID,
		page,
		limit,
	)
}

// invalidateOwner drops every cached listing for the given owner.
func (c *CachingExpenseRepository) invalidateOwner(ctx context.Context, ownerID uint) {
	if c.rdb == nil {
		return
	}
	pattern := fmt.Sprintf("%s:%d:*", c.namespace, ownerID)
	_ = c.deleteByPattern(ctx, pattern) // Best effort: don't fail if cache deletion fails
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingExpenseRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
