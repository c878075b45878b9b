package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"par-manager/core/catalog"
	"par-manager/core/quantity"
	"par-manager/feature/inventory/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the GORM implementation of the catalog storage contract,
// including every optional batch interface.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

var (
	_ catalog.ProductReader         = (*Store)(nil)
	_ catalog.OnHandReader          = (*Store)(nil)
	_ catalog.ImportStore           = (*Store)(nil)
	_ catalog.EntityBatchWriter     = (*Store)(nil)
	_ catalog.ProductBatchWriter    = (*Store)(nil)
	_ catalog.AssignmentBatchWriter = (*Store)(nil)
	_ catalog.OnHandBatchWriter     = (*Store)(nil)
)

// NewStore wraps db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// DB exposes the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the inventory tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate inventory schema: %w", err)
	}
	return nil
}

type productRow struct {
	ID           int64
	SKU          string
	Name         string
	ParTenths    int64
	MaterialType *string
	Vendor       *string
}

// ListActiveProducts returns active products ordered by id. Only on-hand rows
// whose (product, location) pair is assigned are included.
func (s *Store) ListActiveProducts(ctx context.Context) ([]catalog.ProductStock, error) {
	db := s.db.WithContext(ctx)

	var rows []productRow
	err := db.Table("products AS p").
		Select("p.id, p.sku, p.name, p.par_tenths, mt.name AS material_type, v.name AS vendor").
		Joins("LEFT JOIN material_types mt ON mt.id = p.material_type_id").
		Joins("LEFT JOIN vendors v ON v.id = p.vendor_id").
		Where("p.active = ?", true).
		Order("p.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var stock []models.OnHand
	err = db.Table("on_hand AS oh").
		Select("oh.product_id, oh.location_id, oh.qty_tenths, oh.updated_at").
		Joins("JOIN product_locations pl ON pl.product_id = oh.product_id AND pl.location_id = oh.location_id").
		Joins("JOIN products p ON p.id = oh.product_id").
		Where("p.active = ?", true).
		Order("oh.product_id, oh.location_id").
		Scan(&stock).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list on-hand: %w", err)
	}

	byProduct := make(map[int64][]catalog.OnHand, len(rows))
	for _, oh := range stock {
		byProduct[oh.ProductID] = append(byProduct[oh.ProductID], catalog.OnHand{
			LocationID: oh.LocationID,
			Qty:        quantity.Tenths(oh.QtyTenths),
			UpdatedAt:  oh.UpdatedAt,
		})
	}

	products := make([]catalog.ProductStock, 0, len(rows))
	for _, r := range rows {
		onHand := byProduct[r.ID]
		if onHand == nil {
			onHand = []catalog.OnHand{}
		}
		products = append(products, catalog.ProductStock{
			ID:           r.ID,
			SKU:          r.SKU,
			Name:         r.Name,
			MaterialType: deref(r.MaterialType),
			Vendor:       deref(r.Vendor),
			Par:          quantity.Tenths(r.ParTenths),
			OnHand:       onHand,
		})
	}
	return products, nil
}

// SumOnHandByProduct totals assigned on-hand rows per product.
func (s *Store) SumOnHandByProduct(ctx context.Context) (map[int64]quantity.Tenths, error) {
	type sumRow struct {
		ProductID int64
		Total     int64
	}
	var rows []sumRow
	err := s.db.WithContext(ctx).Table("on_hand AS oh").
		Select("oh.product_id, SUM(oh.qty_tenths) AS total").
		Joins("JOIN product_locations pl ON pl.product_id = oh.product_id AND pl.location_id = oh.location_id").
		Group("oh.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum on-hand: %w", err)
	}

	sums := make(map[int64]quantity.Tenths, len(rows))
	for _, r := range rows {
		sums[r.ProductID] = quantity.Tenths(r.Total)
	}
	return sums, nil
}

// ImportSnapshot loads names, SKUs and assignments for import planning.
func (s *Store) ImportSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	db := s.db.WithContext(ctx)
	snap := &catalog.Snapshot{
		Products:    make(map[string]int64),
		Assignments: make(map[int64]map[int64]struct{}),
	}

	for _, kind := range catalog.EntityKinds {
		entities, err := listEntities(db, kind)
		if err != nil {
			return nil, err
		}
		switch kind {
		case catalog.KindLocation:
			snap.Locations = entities
		case catalog.KindMaterialType:
			snap.MaterialTypes = entities
		case catalog.KindVendor:
			snap.Vendors = entities
		}
	}

	var products []models.Product
	if err := db.Select("id", "sku").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for _, p := range products {
		snap.Products[catalog.NormalizeSKU(p.SKU)] = p.ID
	}

	var pairs []models.ProductLocation
	if err := db.Find(&pairs).Error; err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	for _, pl := range pairs {
		if snap.Assignments[pl.ProductID] == nil {
			snap.Assignments[pl.ProductID] = make(map[int64]struct{})
		}
		snap.Assignments[pl.ProductID][pl.LocationID] = struct{}{}
	}

	return snap, nil
}

func listEntities(db *gorm.DB, kind catalog.EntityKind) ([]catalog.Entity, error) {
	table, err := models.EntityTable(kind)
	if err != nil {
		return nil, err
	}
	var rows []models.Entity
	if err := db.Table(table).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	entities := make([]catalog.Entity, 0, len(rows))
	for _, r := range rows {
		entities = append(entities, catalog.Entity{ID: r.ID, Name: r.Name})
	}
	return entities, nil
}

// UpsertEntityByName returns the id of the named entity, creating it if
// absent. Names match case-insensitively after trimming.
func (s *Store) UpsertEntityByName(ctx context.Context, kind catalog.EntityKind, name string) (int64, bool, error) {
	return getOrCreateEntity(s.db.WithContext(ctx), kind, name)
}

// UpsertEntitiesByName get-or-creates every name in one transaction.
func (s *Store) UpsertEntitiesByName(ctx context.Context, kind catalog.EntityKind, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			id, _, err := getOrCreateEntity(tx, kind, name)
			if err != nil {
				return err
			}
			ids[strings.TrimSpace(name)] = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func getOrCreateEntity(db *gorm.DB, kind catalog.EntityKind, name string) (int64, bool, error) {
	table, err := models.EntityTable(kind)
	if err != nil {
		return 0, false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false, catalog.Validation("name", fmt.Sprintf("%s name is required", kind))
	}

	var existing models.Entity
	err = db.Table(table).Where("LOWER(name) = LOWER(?)", name).Take(&existing).Error
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, fmt.Errorf("failed to look up %s %q: %w", kind, name, err)
	}

	rec := models.Entity{Name: name}
	res := db.Table(table).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		return 0, false, fmt.Errorf("failed to create %s %q: %w", kind, name, res.Error)
	}
	if res.RowsAffected == 0 || rec.ID == 0 {
		// created concurrently by someone else
		if err := db.Table(table).Where("LOWER(name) = LOWER(?)", name).Take(&existing).Error; err != nil {
			return 0, false, fmt.Errorf("failed to look up %s %q: %w", kind, name, err)
		}
		return existing.ID, false, nil
	}
	return rec.ID, true, nil
}

// UpsertProduct inserts a new SKU, or handles an existing one per mode:
// update overwrites name, material type, vendor and par (and notes when
// supplied); skip leaves the row untouched.
func (s *Store) UpsertProduct(ctx context.Context, sku string, fields catalog.ProductFields, mode catalog.DedupMode) (int64, bool, error) {
	return s.upsertProduct(s.db.WithContext(ctx), sku, fields, mode)
}

// UpsertProducts upserts every product in one transaction.
func (s *Store) UpsertProducts(ctx context.Context, writes []catalog.ProductWrite, mode catalog.DedupMode) (map[string]int64, error) {
	ids := make(map[string]int64, len(writes))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, w := range writes {
			id, _, err := s.upsertProduct(tx, w.SKU, w.Fields, mode)
			if err != nil {
				return err
			}
			ids[catalog.NormalizeSKU(w.SKU)] = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) upsertProduct(db *gorm.DB, sku string, fields catalog.ProductFields, mode catalog.DedupMode) (int64, bool, error) {
	sku = catalog.NormalizeSKU(sku)
	if sku == "" {
		return 0, false, catalog.Validation("sku", "sku is required")
	}
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return 0, false, catalog.Validation("name", "name is required")
	}

	var existing models.Product
	err := db.Where("sku = ?", sku).Take(&existing).Error
	switch {
	case err == nil:
		if mode == catalog.ModeSkip {
			return existing.ID, false, nil
		}
		updates := map[string]any{
			"name":             name,
			"material_type_id": fields.MaterialTypeID,
			"vendor_id":        fields.VendorID,
			"par_tenths":       int64(fields.Par),
			"active":           true,
			"updated_at":       s.now(),
		}
		if notes := strings.TrimSpace(fields.Notes); notes != "" {
			updates["notes"] = notes
		}
		if err := db.Model(&models.Product{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return 0, false, fmt.Errorf("failed to update product %s: %w", sku, err)
		}
		return existing.ID, false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		p := models.Product{
			SKU:            sku,
			Name:           name,
			MaterialTypeID: fields.MaterialTypeID,
			VendorID:       fields.VendorID,
			ParTenths:      int64(fields.Par),
			Notes:          strings.TrimSpace(fields.Notes),
			Active:         true,
		}
		if err := db.Create(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return 0, false, catalog.Conflict("sku", fmt.Sprintf("sku %s already exists", sku))
			}
			return 0, false, fmt.Errorf("failed to insert product %s: %w", sku, err)
		}
		return p.ID, true, nil

	default:
		return 0, false, fmt.Errorf("failed to look up product %s: %w", sku, err)
	}
}

// ReplaceProductLocations deletes every assignment of the product, then
// inserts locationIDs, in one transaction.
func (s *Store) ReplaceProductLocations(ctx context.Context, productID int64, locationIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductLocation{}).Error; err != nil {
			return fmt.Errorf("failed to clear locations of product %d: %w", productID, err)
		}
		return addAssignments(tx, productID, locationIDs)
	})
}

// AddProductLocations inserts missing assignments; existing ones stay.
func (s *Store) AddProductLocations(ctx context.Context, productID int64, locationIDs []int64) error {
	return addAssignments(s.db.WithContext(ctx), productID, locationIDs)
}

// AddAssignments adds assignments for many products in one transaction.
func (s *Store) AddAssignments(ctx context.Context, assignments map[int64][]int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for productID, locationIDs := range assignments {
			if err := addAssignments(tx, productID, locationIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

func addAssignments(db *gorm.DB, productID int64, locationIDs []int64) error {
	if len(locationIDs) == 0 {
		return nil
	}
	rows := make([]models.ProductLocation, 0, len(locationIDs))
	seen := make(map[int64]struct{}, len(locationIDs))
	for _, id := range locationIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, models.ProductLocation{ProductID: productID, LocationID: id})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to assign locations to product %d: %w", productID, err)
	}
	return nil
}

// UpsertOnHand overwrites the quantity of a (product, location) pair.
func (s *Store) UpsertOnHand(ctx context.Context, productID, locationID int64, qty quantity.Tenths) error {
	return s.upsertOnHand(s.db.WithContext(ctx), productID, locationID, qty)
}

// UpsertOnHandBatch overwrites many quantities in one transaction.
func (s *Store) UpsertOnHandBatch(ctx context.Context, writes []catalog.OnHandWrite) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, w := range writes {
			if err := s.upsertOnHand(tx, w.ProductID, w.LocationID, w.Qty); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) upsertOnHand(db *gorm.DB, productID, locationID int64, qty quantity.Tenths) error {
	if qty < 0 {
		qty = 0
	}
	row := models.OnHand{
		ProductID:  productID,
		LocationID: locationID,
		QtyTenths:  int64(qty),
		UpdatedAt:  s.now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"qty_tenths", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert on-hand for product %d at location %d: %w", productID, locationID, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
