package domain

import "time"

type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Slug      string    `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Category) TableName() string { return "categories" }

// Subcategory belongs to exactly one Category.
type Subcategory struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CategoryID int64     `json:"category_id" gorm:"not null;index"`
	Category   *Category `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Name       string    `json:"name" gorm:"type:text;not null"`
	Slug       string    `json:"slug" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Subcategory) TableName() string { return "subcategories" }

type Brand struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Brand) TableName() string { return "brands" }

type Color struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Hex       *string   `json:"hex,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Color) TableName() string { return "colors" }

type ShoeSize struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Label string `json:"label" gorm:"type:text;not null"`
}

func (ShoeSize) TableName() string { return "shoe_sizes" }

type ClothSize struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Label string `json:"label" gorm:"type:text;not null"`
}

func (ClothSize) TableName() string { return "cloth_sizes" }

// Models lists the reference tables in dependency order.
func Models() []any {
	return []any{
		&Category{},
		&Subcategory{},
		&Brand{},
		&Color{},
		&ShoeSize{},
		&ClothSize{},
	}
}
