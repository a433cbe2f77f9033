package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	uid string
	err error
}

func (s *stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &auth.Token{UID: s.uid}, nil
}

func authTestHandler(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var gotUID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := GetUID(r.Context())
		require.True(t, ok)
		gotUID = uid
		w.WriteHeader(http.StatusOK)
	})
	return next, &gotUID
}

func TestFirebaseAuthMiddlewareAcceptsValidToken(t *testing.T) {
	next, gotUID := authTestHandler(t)
	handler := FirebaseAuthMiddleware(&stubVerifier{uid: "user-1"})(next)

	req := httptest.NewRequest("GET", "/habits", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", *gotUID)
}

func TestFirebaseAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	next, _ := authTestHandler(t)
	handler := FirebaseAuthMiddleware(&stubVerifier{uid: "user-1"})(next)

	req := httptest.NewRequest("GET", "/habits", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFirebaseAuthMiddlewareRejectsBadFormat(t *testing.T) {
	next, _ := authTestHandler(t)
	handler := FirebaseAuthMiddleware(&stubVerifier{uid: "user-1"})(next)

	req := httptest.NewRequest("GET", "/habits", nil)
	req.Header.Set("Authorization", "some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFirebaseAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	next, _ := authTestHandler(t)
	handler := FirebaseAuthMiddleware(&stubVerifier{err: errors.New("expired")})(next)

	req := httptest.NewRequest("GET", "/habits", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUIDMissing(t *testing.T) {
	_, ok := GetUID(context.Background())
	assert.False(t, ok)
}
