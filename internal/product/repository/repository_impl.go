package repository

import (
	"context"

	"github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
	"github.com/smallbiznis/storefront/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *repo) CreateItems(ctx context.Context, db *gorm.DB, items []*domain.ProductItem) error {
	return repository.ProvideStore[domain.ProductItem](db).BatchCreate(ctx, items)
}

func (r *repo) LinkShoeSizes(ctx context.Context, db *gorm.DB, productID int64, sizeIDs []int64) error {
	links := make([]*domain.ProductShoeSize, 0, len(sizeIDs))
	for _, id := range sizeIDs {
		links = append(links, &domain.ProductShoeSize{ProductID: productID, ShoeSizeID: id})
	}
	return repository.ProvideStore[domain.ProductShoeSize](db).BatchCreate(ctx, links)
}

func (r *repo) LinkClothSizes(ctx context.Context, db *gorm.DB, productID int64, sizeIDs []int64) error {
	links := make([]*domain.ProductClothSize, 0, len(sizeIDs))
	for _, id := range sizeIDs {
		links = append(links, &domain.ProductClothSize{ProductID: productID, ClothSizeID: id})
	}
	return repository.ProvideStore[domain.ProductClothSize](db).BatchCreate(ctx, links)
}

func (r *repo) ListRecent(ctx context.Context, db *gorm.DB, limit int) ([]domain.ListRow, error) {
	query := db.WithContext(ctx).
		Table("products AS p").
		Select(`p.id, p.name, p.price, p.image_url, p.available, p.premium, p.gender, p.subcategory,
			c.name AS category_name, b.name AS brand_name, co.name AS color_name`).
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN brands b ON b.id = p.brand_id").
		Joins("LEFT JOIN colors co ON co.id = p.color_id").
		Where("p.deleted_at IS NULL")
	for _, opt := range []option.QueryOption{
		option.WithSortBy("p.created_at DESC, p.id DESC"),
		option.WithLimit(limit),
	} {
		query = opt.Apply(query)
	}

	var rows []domain.ListRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SoftDelete reports false when no live product has the id.
func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	result := db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
