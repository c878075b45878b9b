package checks

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ProductRef identifies a product in a catalog report.
type ProductRef struct {
	ID   int64  `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// OnHandRef identifies an on-hand row.
type OnHandRef struct {
	ProductID  int64  `json:"product_id"`
	SKU        string `json:"sku"`
	LocationID int64  `json:"location_id"`
	Location   string `json:"location"`
	QtyTenths  int64  `json:"qty_tenths"`
}

// CatalogReport lists rows that are valid but will not show up the way a
// user expects on the purchase list.
type CatalogReport struct {
	Clean bool `json:"clean"`
	// OrphanOnHand are on-hand rows whose pair is not assigned; the purchase
	// list ignores them.
	OrphanOnHand []OnHandRef `json:"orphan_on_hand"`
	// Unassigned are active products with no location.
	Unassigned []ProductRef `json:"unassigned"`
	// NoVendor are active products listed under the "No Vendor" bucket.
	NoVendor []ProductRef `json:"no_vendor"`
}

// CheckCatalog runs the catalog consistency queries.
func CheckCatalog(ctx context.Context, db *gorm.DB) (*CatalogReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	db = db.WithContext(ctx)

	report := &CatalogReport{
		OrphanOnHand: []OnHandRef{},
		Unassigned:   []ProductRef{},
		NoVendor:     []ProductRef{},
	}

	err := db.Table("on_hand AS oh").
		Select("oh.product_id, p.sku, oh.location_id, COALESCE(l.name, '') AS location, oh.qty_tenths").
		Joins("JOIN products p ON p.id = oh.product_id").
		Joins("LEFT JOIN locations l ON l.id = oh.location_id").
		Joins("LEFT JOIN product_locations pl ON pl.product_id = oh.product_id AND pl.location_id = oh.location_id").
		Where("pl.product_id IS NULL").
		Order("p.sku, oh.location_id").
		Scan(&report.OrphanOnHand).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orphan on-hand rows: %w", err)
	}

	err = db.Table("products AS p").
		Select("p.id, p.sku, p.name").
		Joins("LEFT JOIN product_locations pl ON pl.product_id = p.id").
		Where("p.active = ? AND pl.product_id IS NULL", true).
		Order("p.sku").
		Scan(&report.Unassigned).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unassigned products: %w", err)
	}

	err = db.Table("products AS p").
		Select("p.id, p.sku, p.name").
		Where("p.active = ? AND p.vendor_id IS NULL", true).
		Order("p.sku").
		Scan(&report.NoVendor).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products without vendor: %w", err)
	}

	report.Clean = len(report.OrphanOnHand) == 0 && len(report.Unassigned) == 0 && len(report.NoVendor) == 0
	return report, nil
}
