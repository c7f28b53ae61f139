package http

import (
	"crypto/subtle"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
	"golang.org/x/time/rate"
)

const authUserKey = "authUser"

func (c *AvailabilityController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		authorized := false
		for _, client := range c.cfg.Auth.BasicClients {
			userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1
			passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1
			if userMatch && passwordMatch {
				authorized = true
			}
		}

		if !authorized {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Set(authUserKey, username)
		ctx.Next()
	}
}

// clientRateLimiter: token bucket на каждого клиента basic-авторизации
type clientRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	logger   out.LoggerPort
}

func newClientRateLimiter(rps float64, burst int, logger out.LoggerPort) *clientRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &clientRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		logger:   logger,
	}
}

func (l *clientRateLimiter) limiter(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[client]
	if !exists {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[client] = limiter
	}
	return limiter
}

func (l *clientRateLimiter) middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		client := ctx.GetString(authUserKey)
		if client == "" {
			client = ctx.ClientIP()
		}

		if !l.limiter(client).Allow() {
			l.logger.Warn("http.rate_limit.exceeded", out.LogFields{
				"client": client,
				"path":   ctx.FullPath(),
			})
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}

		ctx.Next()
	}
}
