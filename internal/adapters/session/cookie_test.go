package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewCookieStore_RequiresSecret(t *testing.T) {
	_, err := NewCookieStore("")
	require.Error(t, err)
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store, err := NewCookieStore(testSecret)
	require.NoError(t, err)

	ctx := context.Background()

	token, err := store.Set(ctx, "ignored", testSession(), time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", token)

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, testSession(), got)

	require.NoError(t, store.Expire(ctx, token))
}

func TestCookieStore_Rejects(t *testing.T) {
	store, err := NewCookieStore(testSecret)
	require.NoError(t, err)

	other, err := NewCookieStore("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)

	ctx := context.Background()

	foreign, err := other.Set(ctx, "", testSession(), time.Minute)
	require.NoError(t, err)

	valid, err := store.Set(ctx, "", testSession(), time.Minute)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{
		Session: *testSession(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cookieIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"tampered":     valid[:len(valid)-2] + "xx",
		"alg none":     unsigned,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, token)

			require.Error(t, err)
			assert.True(t, domain.IsNotFound(err))
		})
	}
}

func TestCookieStore_Expiry(t *testing.T) {
	store, err := NewCookieStore(testSecret)
	require.NoError(t, err)

	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	token, err := store.Set(ctx, "", testSession(), time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)

	_, err = store.Get(ctx, token)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
