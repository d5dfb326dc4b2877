package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{Secret: "test-secret", Issuer: "record-store", TTL: time.Hour})
	require.NoError(t, err)
	return m
}

func TestManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Config{Issuer: "record-store"})
	require.Error(t, err)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	token, jti, err := m.Issue("alice", "Alice A", "staff")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "Alice A", claims.Name)
	require.Equal(t, "staff", claims.Role)
	require.Equal(t, jti, claims.ID)
	require.False(t, claims.IsManager())
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(Config{Secret: "other-secret", Issuer: "record-store", TTL: time.Hour})
	require.NoError(t, err)

	token, _, err := m.Issue("alice", "Alice", "staff")
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestVerify_RejectsWrongIssuer(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(Config{Secret: "test-secret", Issuer: "someone-else", TTL: time.Hour})
	require.NoError(t, err)

	token, _, err := other.Issue("alice", "Alice", "staff")
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.Error(t, err)
}

func TestIssue_DistinctTokenIdentifiers(t *testing.T) {
	m := newTestManager(t)

	_, first, err := m.Issue("alice", "Alice", "manager")
	require.NoError(t, err)
	_, second, err := m.Issue("alice", "Alice", "manager")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
