package domain

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session expired")
	ErrSessionRevoked    = errors.New("session revoked")
	ErrInvalidSession    = errors.New("invalid session")
	ErrTwoFactorRequired = errors.New("two factor required")
	ErrGateNotConfigured = errors.New("auth secret not configured")
)
