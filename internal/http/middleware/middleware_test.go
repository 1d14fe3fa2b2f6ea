package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/promo-quoter/internal/auth"
	"github.com/rogerio-castellano/promo-quoter/internal/http/ban"
	rl "github.com/rogerio-castellano/promo-quoter/internal/http/rate_limiter"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(UserID(r.Context())))
}

func TestAuth(t *testing.T) {
	jwt := auth.NewJWTManager("secret", time.Hour)
	token, err := jwt.GenerateToken(models.User{ID: "user-7"})
	require.NoError(t, err)

	h := Auth(jwt)(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer " + token, http.StatusOK, "user-7"},
		{"missing header", "", http.StatusUnauthorized, `{"detail":"Not authenticated"}` + "\n"},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestRateLimitStrikesThenBans(t *testing.T) {
	limiter := rl.New(0.0001, 1)
	store := ban.NewMemoryStore()
	h := RateLimit(limiter, ban.NewGuard(store, 2, time.Minute))(http.HandlerFunc(echoUser))

	codes := make([]int, 4)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes[i] = w.Code
		if i == 3 {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{200, 429, 429, 429}, codes)
	assert.Len(t, store.Log(), 1)
}

func TestRequestLoggerKeepsStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Get("/teapot/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot/1", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
