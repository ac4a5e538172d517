package repository

import (
	"context"

	"github.com/smallbiznis/storefront/pkg/db/option"
)

// Repository is a generic gorm-backed store for a single model.
type Repository[T any] interface {
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	BatchCreate(ctx context.Context, resources []*T) error
}
