package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsForeignKeyErr reports whether err is a referential integrity failure.
func IsForeignKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	msg := err.Error()
	// PostgreSQL 23503, MySQL 1452, SQLite 787.
	return strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "Error 1452") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
