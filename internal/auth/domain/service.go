package domain

import "context"

// Gate decides whether a request may reach the admin API.
type Gate interface {
	// Authenticate resolves a raw session token to a live session.
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	// VerifyTwoFactor checks the 2FA marker cookie issued for rawToken.
	VerifyTwoFactor(rawToken, marker string) error
	// TwoFactorMarker returns the marker value the OTP flow stores for rawToken.
	TwoFactorMarker(rawToken string) (string, error)
}
