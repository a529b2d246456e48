package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestIssueResolveRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", 5*time.Minute)

	token, err := svc.Issue("alice@example.com", testTime)
	require.NoError(t, err)

	subject, err := svc.ResolveSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestIsCurrentlyValid_Window(t *testing.T) {
	svc := NewTokenService("secret", 5*time.Minute)
	token, err := svc.Issue("bob@example.com", testTime)
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"exactly at notBefore", testTime, true},
		{"inside window", testTime.Add(time.Minute), true},
		{"one instant before expiration", testTime.Add(5*time.Minute - time.Second), true},
		{"exactly at expiration", testTime.Add(5 * time.Minute), false},
		{"past expiration", testTime.Add(6 * time.Minute), false},
		{"before notBefore", testTime.Add(-time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.IsCurrentlyValid(token, tt.now))
		})
	}
}

func TestIsCurrentlyValid_BackdatedToken(t *testing.T) {
	svc := NewTokenService("secret", 5*time.Minute)

	expired, err := svc.IssueWindow("bob@example.com", testTime.Add(-time.Hour), testTime.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, svc.IsCurrentlyValid(expired, testTime))

	future, err := svc.IssueWindow("bob@example.com", testTime.Add(time.Hour), testTime.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, svc.IsCurrentlyValid(future, testTime))

	// An expired token still resolves its subject; the window is not
	// ResolveSubject's concern.
	subject, err := svc.ResolveSubject(expired)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", subject)
}

func TestIsCurrentlyValid_NeverPanicsOnGarbage(t *testing.T) {
	svc := NewTokenService("secret", 5*time.Minute)
	for _, token := range []string{"", "garbage", "a.b.c", "...."} {
		assert.False(t, svc.IsCurrentlyValid(token, testTime))
	}
}

func TestResolveSubject_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", 5*time.Minute)
	verifier := NewTokenService("secret-b", 5*time.Minute)

	token, err := issuer.Issue("eve@example.com", testTime)
	require.NoError(t, err)

	_, err = verifier.ResolveSubject(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, verifier.IsCurrentlyValid(token, testTime))
}

func TestResolveSubject_Malformed(t *testing.T) {
	svc := NewTokenService("secret", 5*time.Minute)
	_, err := svc.ResolveSubject("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
