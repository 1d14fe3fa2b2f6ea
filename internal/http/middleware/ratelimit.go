package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/promo-quoter/internal/http/ban"
	rl "github.com/rogerio-castellano/promo-quoter/internal/http/rate_limiter"
)

// RateLimit applies a token bucket per client IP. Every rejected request is a
// strike; too many strikes ban the client for a while.
func RateLimit(limiter *rl.Limiter, guard *ban.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)

			left, err := guard.BannedFor(r.Context(), client)
			if err != nil {
				zap.L().Warn("ban lookup failed", zap.String("client", client), zap.Error(err))
			}
			if left > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(left.Seconds()))))
				writeDetail(w, http.StatusTooManyRequests, "Too many requests, temporarily banned")
				return
			}

			if !limiter.Allow(client) {
				if _, err := guard.Strike(r.Context(), client, r.URL.Path); err != nil {
					zap.L().Warn("strike failed", zap.String("client", client), zap.Error(err))
				}
				w.Header().Set("Retry-After", "1")
				writeDetail(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
