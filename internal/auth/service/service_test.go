package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/auth/domain"
	"github.com/smallbiznis/storefront/internal/auth/repository"
	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestGate(t *testing.T, secret string) (*Service, domain.SessionRepository, *clock.FakeClock) {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := dbConn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, dbConn.AutoMigrate(&domain.Session{}))

	repo := repository.New(dbConn)
	clk := clock.NewFakeClock(baseTime)
	gate, err := New(Params{
		Log:         zap.NewNop(),
		Config:      config.Config{AuthSecret: secret},
		SessionRepo: repo,
		Clock:       clk,
	})
	require.NoError(t, err)
	return gate.(*Service), repo, clk
}

func seedSession(t *testing.T, repo domain.SessionRepository, id int64, token string, expiresAt time.Time, revokedAt *time.Time) {
	t.Helper()
	require.NoError(t, repo.CreateSession(context.Background(), &domain.Session{
		ID:               id,
		AdminID:          "admin-1",
		SessionTokenHash: hashToken(token),
		ExpiresAt:        expiresAt,
		RevokedAt:        revokedAt,
		CreatedAt:        baseTime,
		LastSeenAt:       baseTime,
	}))
}

func TestAuthenticateLiveSessionTouchesLastSeen(t *testing.T) {
	gate, repo, clk := newTestGate(t, "secret")
	seedSession(t, repo, 1, "tok-live", baseTime.Add(time.Hour), nil)
	clk.Advance(10 * time.Minute)

	session, err := gate.Authenticate(context.Background(), " tok-live ")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", session.AdminID)

	stored, err := repo.GetSessionByTokenHash(context.Background(), hashToken("tok-live"))
	require.NoError(t, err)
	assert.True(t, stored.LastSeenAt.Equal(baseTime.Add(10*time.Minute)))
}

func TestAuthenticateRejections(t *testing.T) {
	gate, repo, clk := newTestGate(t, "secret")
	revoked := baseTime
	seedSession(t, repo, 1, "tok-expired", baseTime.Add(time.Minute), nil)
	seedSession(t, repo, 2, "tok-revoked", baseTime.Add(time.Hour), &revoked)
	clk.Advance(5 * time.Minute)

	_, err := gate.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = gate.Authenticate(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = gate.Authenticate(context.Background(), "tok-expired")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	_, err = gate.Authenticate(context.Background(), "tok-revoked")
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestTwoFactorMarkerRoundTrip(t *testing.T) {
	gate, _, _ := newTestGate(t, "secret")

	marker, err := gate.TwoFactorMarker("tok")
	require.NoError(t, err)
	assert.Len(t, marker, 64)

	assert.NoError(t, gate.VerifyTwoFactor("tok", marker))
	assert.ErrorIs(t, gate.VerifyTwoFactor("tok", ""), domain.ErrTwoFactorRequired)
	assert.ErrorIs(t, gate.VerifyTwoFactor("other", marker), domain.ErrTwoFactorRequired)
	assert.ErrorIs(t, gate.VerifyTwoFactor("tok", "1"), domain.ErrTwoFactorRequired)
}

func TestTwoFactorMarkerDependsOnSecret(t *testing.T) {
	a, _, _ := newTestGate(t, "secret-a")
	b, _, _ := newTestGate(t, "secret-b")

	markerA, err := a.TwoFactorMarker("tok")
	require.NoError(t, err)
	assert.ErrorIs(t, b.VerifyTwoFactor("tok", markerA), domain.ErrTwoFactorRequired)
}

func TestTwoFactorFailsClosedWithoutSecret(t *testing.T) {
	gate, _, _ := newTestGate(t, "")

	_, err := gate.TwoFactorMarker("tok")
	assert.ErrorIs(t, err, domain.ErrGateNotConfigured)
	assert.ErrorIs(t, gate.VerifyTwoFactor("tok", "anything"), domain.ErrTwoFactorRequired)
}
