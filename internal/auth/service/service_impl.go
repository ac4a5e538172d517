package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"github.com/smallbiznis/storefront/internal/auth/domain"
	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

const twoFactorKeyInfo = "storefront admin 2fa marker"

type Params struct {
	fx.In

	Log         *zap.Logger
	Config      config.Config
	SessionRepo domain.SessionRepository
	Clock       clock.Clock
}

type Service struct {
	log          *zap.Logger
	sessionRepo  domain.SessionRepository
	clock        clock.Clock
	twoFactorKey []byte
}

func New(p Params) (domain.Gate, error) {
	key, err := deriveTwoFactorKey(p.Config.AuthSecret)
	if err != nil {
		return nil, err
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.New()
	}
	log := p.Log.Named("auth.service")
	if key == nil {
		log.Warn("AUTH_SECRET is empty; every 2FA check will fail")
	}
	return &Service{
		log:          log,
		sessionRepo:  p.SessionRepo,
		clock:        clk,
		twoFactorKey: key,
	}, nil
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	now := s.clock.Now()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, session.ID, now); err != nil {
		return nil, err
	}
	session.LastSeenAt = now

	return session, nil
}

func (s *Service) VerifyTwoFactor(rawToken, marker string) error {
	if s.twoFactorKey == nil {
		return domain.ErrTwoFactorRequired
	}
	expected, err := s.TwoFactorMarker(rawToken)
	if err != nil {
		return domain.ErrTwoFactorRequired
	}
	if !hmac.Equal([]byte(expected), []byte(strings.TrimSpace(marker))) {
		return domain.ErrTwoFactorRequired
	}
	return nil
}

func (s *Service) TwoFactorMarker(rawToken string) (string, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return "", domain.ErrInvalidSession
	}
	if s.twoFactorKey == nil {
		return "", domain.ErrGateNotConfigured
	}
	mac := hmac.New(sha256.New, s.twoFactorKey)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// deriveTwoFactorKey returns nil for an empty secret.
func deriveTwoFactorKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, nil
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(twoFactorKeyInfo)), key); err != nil {
		return nil, err
	}
	return key, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
