package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/palspantry/pantry-backend/internal/modules/owner"
)

const (
	testOwnerID int64 = 42
	testSecret        = "pantry-api-secret"
)

func newTestService(t *testing.T) (Service, owner.Service) {
	t.Helper()
	owners := owner.NewService(owner.NewMemoryRepository(), zap.NewNop())
	claimed, err := owners.ClaimOwner(context.Background(), testOwnerID)
	require.NoError(t, err)
	require.True(t, claimed)

	hash, err := bcrypt.GenerateFromPassword([]byte(testSecret), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(owners, []byte("test-jwt-key"), hash), owners
}

func TestIssueAndParseToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, testOwnerID, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principalID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, testOwnerID, principalID)
}

func TestIssueTokenRejectsWrongSecret(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.IssueToken(context.Background(), testOwnerID, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokenRejectsNonOwner(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.IssueToken(context.Background(), 777, testSecret)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestOwnerOnlyMiddleware(t *testing.T) {
	svc, owners := newTestService(t)
	mw := OwnerOnly(svc, owners)

	var sawPrincipal int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawPrincipal, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// No token.
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Bad token.
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer junk")
	rec = httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid owner token.
	token, err := svc.IssueToken(context.Background(), testOwnerID, testSecret)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testOwnerID, sawPrincipal)
}
