package mw

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/auth/blacklist"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/auth/token"
	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
	redisx "github.com/Liv-glitch/Farm-Mall-sub000/internal/infra/cache/redis"
)

func newAuthDeps(t *testing.T) (AuthDeps, *token.Manager) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisx.New(redisx.Config{Addr: mr.Addr(), DialTimeout: time.Second}, log.New(io.Discard, "", 0))
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(c.Close)

	tm := token.New("test-secret", "farm-mall", time.Hour)
	return AuthDeps{Tokens: tm, Blacklist: blacklist.NewStore(c)}, tm
}

func userEcho(t *testing.T, want *domain.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromCtx(r.Context())
		if want == nil {
			assert.False(t, ok)
		} else {
			require.True(t, ok)
			assert.Equal(t, want.ID, u.ID)
			assert.Equal(t, want.Login, u.Login)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	deps, tm := newAuthDeps(t)
	ctx := context.Background()
	userID := uuid.New()

	tok, _, err := tm.Issue(ctx, userID, "alice")
	require.NoError(t, err)

	h := RequireAuth(deps, userEcho(t, &domain.User{ID: userID, Login: "alice"}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+string(tok))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejects(t *testing.T) {
	deps, tm := newAuthDeps(t)
	ctx := context.Background()

	revoked, claims, err := tm.Issue(ctx, uuid.New(), "bob")
	require.NoError(t, err)
	deps.Blacklist.Revoke(ctx, string(revoked), claims.ExpiresAt)

	h := RequireAuth(deps, okHandler())

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"revoked token", "Bearer " + string(revoked)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	deps, tm := newAuthDeps(t)
	ctx := context.Background()
	userID := uuid.New()

	tok, _, err := tm.Issue(ctx, userID, "alice")
	require.NoError(t, err)

	t.Run("with token", func(t *testing.T) {
		h := OptionalAuth(deps, userEcho(t, &domain.User{ID: userID, Login: "alice"}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+string(tok))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("without token", func(t *testing.T) {
		h := OptionalAuth(deps, userEcho(t, nil))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad token passes as anonymous", func(t *testing.T) {
		h := OptionalAuth(deps, userEcho(t, nil))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer broken")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
