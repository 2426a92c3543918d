package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavideLicci/MindGarden/internal/model"
)

func TestTokens_RoundTrip(t *testing.T) {
	tok := NewTokens("s3cret", time.Hour)
	signed, err := tok.Issue(&model.User{ID: 42, Email: "ada@example.com"})
	require.NoError(t, err)

	actor, err := tok.Authorize(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, &ActorInfo{UserID: 42, Email: "ada@example.com"}, actor)
}

func TestTokens_Rejects(t *testing.T) {
	tok := NewTokens("s3cret", time.Hour)
	signed, err := tok.Issue(&model.User{ID: 1, Email: "a@b.co"})
	require.NoError(t, err)

	other := NewTokens("different", time.Hour)
	_, err = other.Authorize(context.Background(), signed)
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = tok.Authorize(context.Background(), "garbage")
	assert.ErrorIs(t, err, model.ErrUnauthorized)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tok.Authorize(context.Background(), none)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestTokens_Expired(t *testing.T) {
	tok := NewTokens("s3cret", time.Minute)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tok.now = func() time.Time { return issued }
	signed, err := tok.Issue(&model.User{ID: 7})
	require.NoError(t, err)

	tok.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tok.Authorize(context.Background(), signed)
	require.ErrorIs(t, err, model.ErrUnauthorized)
	assert.Contains(t, err.Error(), "expired")
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", h)

	ok, err := CheckPassword(h, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(h, "wrong horse")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-hash", "x")
	assert.Error(t, err)
}

func TestHashPassword_TooLongIsValidation(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 80))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestExtractBearer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ExtractBearer(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Basic abc")
	_, err = ExtractBearer(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Bearer abc")
	tok, err := ExtractBearer(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestMiddleware(t *testing.T) {
	authz := StaticAuthorizer{"good": {UserID: 3, Email: "c@d.co"}}
	var seen *ActorInfo
	h := Middleware(authz)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ActorFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/gardens/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/gardens/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req.Header.Set("Authorization", "Bearer good")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(3), seen.UserID)
}
