package domain

import (
	"time"

	"github.com/lib/pq"
	refdomain "github.com/smallbiznis/storefront/internal/reference/domain"
	"gorm.io/gorm"
)

// SizeType selects which size taxonomy prices a product.
type SizeType string

const (
	SizeTypeNone  SizeType = "NONE"
	SizeTypeShoe  SizeType = "SHOE"
	SizeTypeCloth SizeType = "CLOTH"
)

type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

type Product struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string         `json:"name" gorm:"type:text;not null"`
	Price       int64          `json:"price" gorm:"not null"`
	ImageURL    string         `json:"image_url" gorm:"column:image_url;type:text;not null"`
	Images      pq.StringArray `json:"images" gorm:"type:text"` // text[] on postgres
	Description *string        `json:"description,omitempty" gorm:"type:text"`
	CategoryID  int64          `json:"category_id" gorm:"not null;index"`
	Subcategory *string        `json:"subcategory,omitempty" gorm:"type:text"`
	BrandID     *int64         `json:"brand_id,omitempty" gorm:"index"`
	ColorID     *int64         `json:"color_id,omitempty" gorm:"index"`
	Gender      *Gender        `json:"gender,omitempty" gorm:"type:text"`
	SizeType    SizeType       `json:"size_type" gorm:"type:text;not null;default:NONE"`
	Premium     bool           `json:"premium" gorm:"not null;default:false"`
	Available   bool           `json:"available" gorm:"not null;default:true"`
	WidthCm     *float64       `json:"width_cm,omitempty"`
	HeightCm    *float64       `json:"height_cm,omitempty"`
	DepthCm     *float64       `json:"depth_cm,omitempty"`
	CreatedAt   time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Category *refdomain.Category `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Brand    *refdomain.Brand    `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Color    *refdomain.Color    `json:"-" gorm:"constraint:OnDelete:SET NULL"`
}

func (Product) TableName() string { return "products" }

// ProductItem is an immutable price variant bound to exactly one size entry.
type ProductItem struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ProductID   int64     `json:"product_id" gorm:"not null;index"`
	Price       int64     `json:"price" gorm:"not null"`
	ShoeSizeID  *int64    `json:"shoe_size_id,omitempty" gorm:"index"`
	ClothSizeID *int64    `json:"cloth_size_id,omitempty" gorm:"index;check:chk_product_items_one_size,(shoe_size_id IS NULL) <> (cloth_size_id IS NULL)"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Product   *Product             `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ShoeSize  *refdomain.ShoeSize  `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	ClothSize *refdomain.ClothSize `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

func (ProductItem) TableName() string { return "product_items" }

type ProductShoeSize struct {
	ProductID  int64 `gorm:"primaryKey;autoIncrement:false"`
	ShoeSizeID int64 `gorm:"primaryKey;autoIncrement:false"`

	Product  *Product            `gorm:"constraint:OnDelete:CASCADE"`
	ShoeSize *refdomain.ShoeSize `gorm:"constraint:OnDelete:CASCADE"`
}

func (ProductShoeSize) TableName() string { return "product_shoe_sizes" }

type ProductClothSize struct {
	ProductID   int64 `gorm:"primaryKey;autoIncrement:false"`
	ClothSizeID int64 `gorm:"primaryKey;autoIncrement:false"`

	Product   *Product             `gorm:"constraint:OnDelete:CASCADE"`
	ClothSize *refdomain.ClothSize `gorm:"constraint:OnDelete:CASCADE"`
}

func (ProductClothSize) TableName() string { return "product_cloth_sizes" }

// ListRow is the projection returned by the recent-products listing.
type ListRow struct {
	ID           int64
	Name         string
	Price        int64
	ImageURL     string
	Available    bool
	Premium      bool
	Gender       *string
	Subcategory  *string
	CategoryName *string
	BrandName    *string
	ColorName    *string
}

// Models lists the catalog tables in dependency order.
func Models() []any {
	return []any{
		&Product{},
		&ProductItem{},
		&ProductShoeSize{},
		&ProductClothSize{},
	}
}
