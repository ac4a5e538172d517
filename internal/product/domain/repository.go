package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	CreateItems(ctx context.Context, db *gorm.DB, items []*ProductItem) error
	LinkShoeSizes(ctx context.Context, db *gorm.DB, productID int64, sizeIDs []int64) error
	LinkClothSizes(ctx context.Context, db *gorm.DB, productID int64, sizeIDs []int64) error
	ListRecent(ctx context.Context, db *gorm.DB, limit int) ([]ListRow, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id int64) (bool, error)
}
