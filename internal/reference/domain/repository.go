package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// FindSubcategoryByID returns nil, nil when the row does not exist.
	FindSubcategoryByID(ctx context.Context, db *gorm.DB, id int64) (*Subcategory, error)
}
