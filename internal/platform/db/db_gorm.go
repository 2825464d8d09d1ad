// Package db はPostgreSQLへのGORM接続を提供します。
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	expenseentity "expense_backend/internal/feature/expenses/domain/entity"
	userentity "expense_backend/internal/feature/users/domain/entity"
	"expense_backend/internal/platform/config"
)

// Opener はDSNからGORM接続を開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN は設定からPostgreSQL接続文字列を構築します。
func BuildDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
}

// ConnectWithRetry は接続成功かタイムアウトまで3秒間隔で接続を試行します。
// 起動直後のDBコンテナを待つためのものです。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB はPostgreSQLへ接続し、必要に応じてマイグレーションを実行します。
// 接続できない場合はプロセスを終了します。
func OpenDB(cfg *config.Config) *gorm.DB {
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		log.Fatal(err)
	}

	if cfg.RunMigrations {
		// マイグレーション（User, Expense）
		if err := db.AutoMigrate(
			&userentity.User{},
			&expenseentity.Expense{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
