// Package ratelimiter はIPアドレス単位のリクエストレート制限を提供します。
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"expense_backend/internal/shared/respond"
)

// visitor は単一クライアントのトークンバケットと最終アクセス時刻です。
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter はクライアントIPごとにトークンバケットを管理します。
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter はIPRateLimiterの新しいインスタンスを生成します。
// r は1秒あたりの補充レート、burst は瞬間的に許容するリクエスト数です。
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors: map[string]*visitor{},
		rate:     r,
		burst:    burst,
	}
	go rl.cleanup()
	return rl
}

// Allow は指定IPのリクエストを許可するかどうかを判定します。
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

// cleanup は3分間アクセスのないクライアントのバケットを破棄します。
func (rl *IPRateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware は上限超過時に429を返すGinミドルウェアを返します。
func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			respond.JSON(c, respond.Failure(http.StatusTooManyRequests, "Too many requests", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}
