package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
)

func TestIssueParseRoundtrip(t *testing.T) {
	m := New("secret", "farm-mall", time.Hour)
	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	tok, issued, err := m.Issue(ctx, userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.NotEmpty(t, issued.JTI)

	parsed, err := m.Parse(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, issued.JTI, parsed.JTI)
	assert.Equal(t, userID, parsed.UserID)
	assert.Equal(t, "alice", parsed.Login)
	assert.WithinDuration(t, time.Now().Add(time.Hour), parsed.ExpiresAt, 5*time.Second)
}

func TestParseWrongSecret(t *testing.T) {
	ctx := context.Background()
	tok, _, err := New("secret-a", "farm-mall", time.Hour).Issue(ctx, domain.UserID(uuid.New()), "alice")
	require.NoError(t, err)

	_, err = New("secret-b", "farm-mall", time.Hour).Parse(ctx, tok)
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	m := New("secret", "farm-mall", -time.Minute)
	ctx := context.Background()

	tok, _, err := m.Issue(ctx, domain.UserID(uuid.New()), "alice")
	require.NoError(t, err)

	_, err = m.Parse(ctx, tok)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	m := New("secret", "farm-mall", time.Hour)

	_, err := m.Parse(context.Background(), "not-a-jwt")
	assert.Error(t, err)

	_, err = m.Parse(context.Background(), "")
	assert.Error(t, err)
}

func TestUniqueJTI(t *testing.T) {
	m := New("secret", "farm-mall", time.Hour)
	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	_, a, err := m.Issue(ctx, userID, "alice")
	require.NoError(t, err)
	_, b, err := m.Issue(ctx, userID, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}
