// Package domain contains core types for the admin gate.
package domain

import "time"

// Session is a persisted admin login. Only the SHA-256 hash of the cookie
// token is stored.
type Session struct {
	ID               int64      `gorm:"primaryKey;autoIncrement:false"`
	AdminID          string     `gorm:"column:admin_id;type:text;not null;index"`
	SessionTokenHash string     `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string     `gorm:"column:user_agent;type:text"`
	IPAddress        string     `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time  `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time `gorm:"column:revoked_at"`
	CreatedAt        time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time  `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "admin_sessions" }
