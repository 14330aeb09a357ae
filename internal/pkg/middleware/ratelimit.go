package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"moviewatch/internal/pkg/cache"
)

// RateLimiter limita o número de requisições por IP dentro de uma janela fixa,
// usando contadores no Redis. Aplicado globalmente pelo roteador.
func RateLimiter(client cache.Client, limit int, duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			key := "rate-limit:" + ip
			ctx := context.Background()

			count, err := client.GetInt(ctx, key)
			if err == cache.ErrCacheMiss {
				client.Set(ctx, key, 1, duration)
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			} else if err != nil {
				// Cache indisponível: deixa passar em vez de derrubar a API inteira.
				next.ServeHTTP(w, r)
				return
			}

			if count >= limit {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			client.Incr(ctx, key)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}
