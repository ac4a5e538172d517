package option

import "gorm.io/gorm"

// QueryOption customizes a gorm statement built by a repository.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type queryFunc func(db *gorm.DB) *gorm.DB

func (f queryFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

func WithSortBy(clause string) QueryOption {
	return queryFunc(func(db *gorm.DB) *gorm.DB {
		return db.Order(clause)
	})
}

func WithLimit(limit int) QueryOption {
	return queryFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

func WithSelect(columns ...string) QueryOption {
	return queryFunc(func(db *gorm.DB) *gorm.DB {
		return db.Select(columns)
	})
}
