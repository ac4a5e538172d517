package reference

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/storefront/internal/reference/domain"
	"github.com/smallbiznis/storefront/pkg/db/option"
	"github.com/smallbiznis/storefront/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func NewRepository() domain.Repository {
	return &repo{}
}

func (r *repo) FindSubcategoryByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Subcategory, error) {
	if id <= 0 {
		return nil, nil
	}

	item, err := repository.ProvideStore[domain.Subcategory](db).FindOne(ctx,
		&domain.Subcategory{ID: id},
		option.WithSelect("id", "category_id", "name", "slug"),
	)
	if err != nil || item == nil {
		return nil, err
	}

	// Legacy rows were imported without slugs.
	if strings.TrimSpace(item.Slug) == "" {
		item.Slug = slug.Make(item.Name)
	}
	return item, nil
}
