package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"expense_backend/internal/app/router"
	authhandler "expense_backend/internal/feature/auth/transport/handler"
	authusecase "expense_backend/internal/feature/auth/usecase"
	expenseadapters "expense_backend/internal/feature/expenses/adapters"
	expenseshandler "expense_backend/internal/feature/expenses/transport/handler"
	expensesusecase "expense_backend/internal/feature/expenses/usecase"
	useradapters "expense_backend/internal/feature/users/adapters"
	usershandler "expense_backend/internal/feature/users/transport/handler"
	usersusecase "expense_backend/internal/feature/users/usecase"
	"expense_backend/internal/platform/cache"
	"expense_backend/internal/platform/config"
	"expense_backend/internal/platform/db"
	"expense_backend/internal/platform/mail"
	platformredis "expense_backend/internal/platform/redis"
	"expense_backend/internal/platform/token"
	"expense_backend/internal/shared/ratelimiter"
)

func main() {
	cfg := config.Load()

	// db
	gormDB := db.OpenDB(cfg)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := useradapters.NewUserPostgres(gormDB)
	expenseRepo := expenseadapters.NewExpensePostgres(gormDB)

	// Redisキャッシュでラップ
	cachedExpenseRepo := cache.NewCachingExpenseRepository(rdb, cfg.CacheTTL, expenseRepo, "expenses")

	// Token / Mail
	issuer := token.NewIssuer(cfg.JWTKey, cfg.EncryptKey, token.TTL)
	mailer := mail.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailDevMode)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, issuer)
	usersUC := usersusecase.NewUsersUsecase(userRepo, mailer, cfg.AppURL)
	expensesUC := expensesusecase.NewExpensesUsecase(cachedExpenseRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	usersH := usershandler.NewUsersHandler(usersUC)
	expensesH := expenseshandler.NewExpensesHandler(expensesUC)

	// ログインのブルートフォース対策（秒間1回、バースト5）
	loginLimiter := ratelimiter.NewIPRateLimiter(rate.Limit(1), 5)

	// ルータ生成
	r := router.NewRouter(authH, usersH, expensesH, issuer, loginLimiter)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
