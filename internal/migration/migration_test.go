package migration

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	refdomain "github.com/smallbiznis/storefront/internal/reference/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEmbeddedMigrationsAreSequential(t *testing.T) {
	source, err := newSource()
	require.NoError(t, err)

	version, err := source.First()
	require.NoError(t, err)
	versions := []uint{version}
	for {
		next, err := source.Next(version)
		if err != nil {
			break
		}
		versions = append(versions, next)
		version = next
	}
	assert.Equal(t, []uint{1, 2, 3}, versions)
}

func TestRunMigrationsRequiresHandle(t *testing.T) {
	assert.Error(t, RunMigrations(nil))
}

func TestAutoMigrateCreatesCatalogSchema(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(conn))

	for _, table := range []string{
		"categories", "subcategories", "brands", "colors", "shoe_sizes", "cloth_sizes",
		"products", "product_items", "product_shoe_sizes", "product_cloth_sizes", "admin_sessions",
	} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}

	require.NoError(t, conn.Create(&refdomain.Category{ID: 1, Name: "Bags", Slug: "bags"}).Error)
	now := time.Now().UTC()
	require.NoError(t, conn.Create(&productdomain.Product{
		ID:         42,
		Name:       "Bag",
		Price:      10,
		ImageURL:   "/img/placeholder.png",
		Images:     []string{"/img/a.png"},
		CategoryID: 1,
		SizeType:   productdomain.SizeTypeNone,
		Available:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error)

	var stored productdomain.Product
	require.NoError(t, conn.First(&stored, 42).Error)
	assert.Equal(t, []string{"/img/a.png"}, []string(stored.Images))
}

func TestAutoMigrateEnforcesOneSizePerItem(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(conn))

	now := time.Now().UTC()
	require.NoError(t, conn.Create(&refdomain.Category{ID: 1, Name: "Shoes", Slug: "shoes"}).Error)
	require.NoError(t, conn.Create(&refdomain.ShoeSize{ID: 1, Label: "40"}).Error)
	require.NoError(t, conn.Create(&refdomain.ClothSize{ID: 1, Label: "M"}).Error)
	require.NoError(t, conn.Omit("Category", "Brand", "Color").Create(&productdomain.Product{
		ID:         7,
		Name:       "Runner",
		Price:      10,
		ImageURL:   "/img/placeholder.png",
		CategoryID: 1,
		SizeType:   productdomain.SizeTypeShoe,
		Available:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error)

	size := int64(1)
	item := func(id int64, shoe, cloth *int64) *productdomain.ProductItem {
		return &productdomain.ProductItem{ID: id, ProductID: 7, Price: 10, ShoeSizeID: shoe, ClothSizeID: cloth, CreatedAt: now}
	}

	assert.Error(t, conn.Omit("Product", "ShoeSize", "ClothSize").Create(item(1, nil, nil)).Error)
	assert.Error(t, conn.Omit("Product", "ShoeSize", "ClothSize").Create(item(2, &size, &size)).Error)
	assert.NoError(t, conn.Omit("Product", "ShoeSize", "ClothSize").Create(item(3, &size, nil)).Error)

	missing := int64(404)
	assert.Error(t, conn.Omit("Product", "ShoeSize", "ClothSize").Create(item(4, &missing, nil)).Error)
}
