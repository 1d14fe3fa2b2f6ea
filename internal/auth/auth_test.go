package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/redissvc"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

func newService() *AuthService {
	return NewAuthService(
		repo.NewInMemoryUserRepository(),
		NewJWTManager("test-secret", time.Hour),
		NewMemoryRefreshTokenStore(),
		24*time.Hour,
	)
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("s3cret", time.Minute)
	token, err := m.GenerateToken(models.User{ID: "user-42", Email: "a@b.c"})
	require.NoError(t, err)

	sub, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)

	_, err = NewJWTManager("other", time.Minute).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsExpiredAndUnsigned(t *testing.T) {
	m := NewJWTManager("s3cret", -time.Minute)
	expired, err := m.GenerateToken(models.User{ID: "user-42"})
	require.NoError(t, err)
	_, err = m.ParseToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-42", "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegisterLoginRefresh(t *testing.T) {
	ctx := context.Background()
	a := newService()

	reg, err := a.Register(ctx, "ana@example.com", "ana", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "ana@example.com", reg.User.Email)

	_, err = a.Register(ctx, "ANA@example.com", "ana2", "secret123")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = a.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrAuth)
	_, err = a.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, apperr.ErrAuth)

	login, err := a.Login(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	sub, err := a.JWT().ParseToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sub)

	refreshed, err := a.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = a.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestMemoryRefreshTokenStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryRefreshTokenStore()
	require.NoError(t, s.Save(ctx, "old", "u1", -time.Second))
	require.NoError(t, s.Save(ctx, "fresh", "u1", time.Hour))

	_, err := s.Consume(ctx, "old")
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)

	userID, err := s.Consume(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestRedisRefreshTokenStoreIsOneShot(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s := NewRedisRefreshTokenStore(redissvc.NewRedisService(rdb))

	require.NoError(t, s.Save(ctx, "tok", "u1", time.Hour))
	assert.Equal(t, time.Hour, mr.TTL(refreshKeyPrefix+"tok"))

	userID, err := s.Consume(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = s.Consume(ctx, "tok")
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)

	require.NoError(t, s.Save(ctx, "short", "u1", time.Minute))
	mr.FastForward(2 * time.Minute)
	_, err = s.Consume(ctx, "short")
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestCurrentUserUnknown(t *testing.T) {
	_, err := newService().CurrentUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrAuth)
}
