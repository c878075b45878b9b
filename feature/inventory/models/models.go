package models

import (
	"fmt"
	"time"

	"par-manager/core/catalog"
)

// Location is a physical stocking location.
type Location struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(191);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Location) TableName() string {
	return "locations"
}

// MaterialType is a product category.
type MaterialType struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(191);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (MaterialType) TableName() string {
	return "material_types"
}

// Vendor is a supplier.
type Vendor struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(191);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}

// Product is a catalog item with a global PAR stored in tenths.
type Product struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SKU            string    `gorm:"column:sku;type:varchar(191);uniqueIndex;not null"`
	Name           string    `gorm:"column:name;type:varchar(255);not null"`
	MaterialTypeID *int64    `gorm:"column:material_type_id;index"`
	VendorID       *int64    `gorm:"column:vendor_id;index"`
	ParTenths      int64     `gorm:"column:par_tenths;not null;default:0"`
	Notes          string    `gorm:"column:notes;type:text"`
	Active         bool      `gorm:"column:active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductLocation assigns a product to a location.
type ProductLocation struct {
	ProductID  int64 `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	LocationID int64 `gorm:"column:location_id;primaryKey;autoIncrement:false;index"`
}

func (ProductLocation) TableName() string {
	return "product_locations"
}

// OnHand is the stocked quantity of a product at a location, in tenths.
type OnHand struct {
	ProductID  int64     `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	LocationID int64     `gorm:"column:location_id;primaryKey;autoIncrement:false;index"`
	QtyTenths  int64     `gorm:"column:qty_tenths;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (OnHand) TableName() string {
	return "on_hand"
}

// All returns every model in migration order.
func All() []any {
	return []any{
		&Location{},
		&MaterialType{},
		&Vendor{},
		&Product{},
		&ProductLocation{},
		&OnHand{},
	}
}

// EntityTable maps a reference kind to its table.
func EntityTable(kind catalog.EntityKind) (string, error) {
	switch kind {
	case catalog.KindLocation:
		return Location{}.TableName(), nil
	case catalog.KindMaterialType:
		return MaterialType{}.TableName(), nil
	case catalog.KindVendor:
		return Vendor{}.TableName(), nil
	default:
		return "", catalog.Validation("kind", fmt.Sprintf("unknown entity kind %q", kind))
	}
}

// Entity is the shared shape of the reference tables, used with an
// explicit table name.
type Entity struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// ExpectedColumns lists the columns each table must carry.
func ExpectedColumns() map[string][]string {
	entity := []string{"id", "name", "created_at"}
	return map[string][]string{
		Location{}.TableName():     entity,
		MaterialType{}.TableName(): entity,
		Vendor{}.TableName():       entity,
		Product{}.TableName(): {
			"id", "sku", "name", "material_type_id", "vendor_id",
			"par_tenths", "notes", "active", "created_at", "updated_at",
		},
		ProductLocation{}.TableName(): {"product_id", "location_id"},
		OnHand{}.TableName():          {"product_id", "location_id", "qty_tenths", "updated_at"},
	}
}
