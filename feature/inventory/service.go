package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"par-manager/core/catalog"
	"par-manager/core/quantity"
	"par-manager/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductInput is a direct create or edit of a product.
type ProductInput struct {
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	MaterialTypeID *int64  `json:"material_type_id"`
	VendorID       *int64  `json:"vendor_id"`
	Par            float64 `json:"par"`
	Notes          string  `json:"notes"`
	Active         *bool   `json:"active"`
}

// Product is the API view of a product row.
type Product struct {
	ID             int64           `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	MaterialTypeID *int64          `json:"material_type_id"`
	VendorID       *int64          `json:"vendor_id"`
	Par            quantity.Tenths `json:"par"`
	Notes          string          `json:"notes"`
	Active         bool            `json:"active"`
	LocationIDs    []int64         `json:"location_ids"`
}

// Service performs direct catalog edits. Unlike imports, every uniqueness
// violation and dangling reference is reported to the caller.
type Service struct {
	store    *Store
	logger   *zap.Logger
	onChange func()
}

// NewService creates a direct-edit service. onChange, if set, runs after every
// successful write.
func NewService(store *Store, logger *zap.Logger, onChange func()) *Service {
	return &Service{store: store, logger: logger, onChange: onChange}
}

func (s *Service) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *Service) db(ctx context.Context) *gorm.DB {
	return s.store.db.WithContext(ctx)
}

// ListProducts returns active products with resolved names and stock.
func (s *Service) ListProducts(ctx context.Context) ([]catalog.ProductStock, error) {
	return s.store.ListActiveProducts(ctx)
}

// GetProduct returns one product with its assigned locations.
func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p models.Product
	if err := s.db(ctx).Take(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NotFound("id", fmt.Sprintf("product %d not found", id))
		}
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}

	var locationIDs []int64
	if err := s.db(ctx).Model(&models.ProductLocation{}).
		Where("product_id = ?", id).
		Order("location_id").
		Pluck("location_id", &locationIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to load locations of product %d: %w", id, err)
	}
	if locationIDs == nil {
		locationIDs = []int64{}
	}

	return &Product{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		MaterialTypeID: p.MaterialTypeID,
		VendorID:       p.VendorID,
		Par:            quantity.Tenths(p.ParTenths),
		Notes:          p.Notes,
		Active:         p.Active,
		LocationIDs:    locationIDs,
	}, nil
}

func (s *Service) validateProduct(ctx context.Context, in *ProductInput) error {
	in.SKU = catalog.NormalizeSKU(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.SKU == "" {
		return catalog.Validation("sku", "sku is required")
	}
	if in.Name == "" {
		return catalog.Validation("name", "name is required")
	}
	if !quantity.Valid(in.Par) {
		return catalog.Validation("par", "par must be a non-negative number")
	}
	if in.MaterialTypeID != nil {
		if err := s.requireEntity(ctx, catalog.KindMaterialType, *in.MaterialTypeID, "material_type_id"); err != nil {
			return err
		}
	}
	if in.VendorID != nil {
		if err := s.requireEntity(ctx, catalog.KindVendor, *in.VendorID, "vendor_id"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) requireEntity(ctx context.Context, kind catalog.EntityKind, id int64, field string) error {
	table, err := models.EntityTable(kind)
	if err != nil {
		return err
	}
	var count int64
	if err := s.db(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up %s %d: %w", kind, id, err)
	}
	if count == 0 {
		return catalog.NotFound(field, fmt.Sprintf("%s %d not found", kind, id))
	}
	return nil
}

func (s *Service) requireProduct(ctx context.Context, id int64) error {
	var count int64
	if err := s.db(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up product %d: %w", id, err)
	}
	if count == 0 {
		return catalog.NotFound("id", fmt.Sprintf("product %d not found", id))
	}
	return nil
}

// CreateProduct inserts a product. A taken SKU is a ConflictError.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	if err := s.validateProduct(ctx, &in); err != nil {
		return nil, err
	}

	p := models.Product{
		SKU:            in.SKU,
		Name:           in.Name,
		MaterialTypeID: in.MaterialTypeID,
		VendorID:       in.VendorID,
		ParTenths:      int64(quantity.FromFloat(in.Par)),
		Notes:          in.Notes,
		Active:         true,
	}
	if err := s.db(ctx).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, catalog.Conflict("sku", fmt.Sprintf("sku %s already exists", in.SKU))
		}
		return nil, fmt.Errorf("failed to create product %s: %w", in.SKU, err)
	}
	if in.Active != nil && !*in.Active {
		if err := s.db(ctx).Model(&p).Update("active", false).Error; err != nil {
			return nil, fmt.Errorf("failed to deactivate product %s: %w", in.SKU, err)
		}
	}

	s.logger.Info("Product created", zap.Int64("id", p.ID), zap.String("sku", p.SKU))
	s.changed()
	return s.GetProduct(ctx, p.ID)
}

// UpdateProduct overwrites a product's fields.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*Product, error) {
	if err := s.requireProduct(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateProduct(ctx, &in); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"sku":              in.SKU,
		"name":             in.Name,
		"material_type_id": in.MaterialTypeID,
		"vendor_id":        in.VendorID,
		"par_tenths":       int64(quantity.FromFloat(in.Par)),
		"notes":            in.Notes,
	}
	if in.Active != nil {
		updates["active"] = *in.Active
	}
	if err := s.db(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, catalog.Conflict("sku", fmt.Sprintf("sku %s already exists", in.SKU))
		}
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}

	s.logger.Info("Product updated", zap.Int64("id", id), zap.String("sku", in.SKU))
	s.changed()
	return s.GetProduct(ctx, id)
}

// SetProductLocations replaces the product's assignment set.
func (s *Service) SetProductLocations(ctx context.Context, productID int64, locationIDs []int64) error {
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}
	for _, id := range locationIDs {
		if err := s.requireEntity(ctx, catalog.KindLocation, id, "location_ids"); err != nil {
			return err
		}
	}
	if err := s.store.ReplaceProductLocations(ctx, productID, locationIDs); err != nil {
		return err
	}
	s.changed()
	return nil
}

// SetOnHand writes the quantity at an assigned location. Writing to a
// location the product is not assigned to is a ValidationError.
func (s *Service) SetOnHand(ctx context.Context, productID, locationID int64, qty float64) error {
	if !quantity.Valid(qty) {
		return catalog.Validation("qty", "quantity must be a non-negative number")
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	var count int64
	if err := s.db(ctx).Model(&models.ProductLocation{}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if count == 0 {
		return catalog.Validation("location_id", fmt.Sprintf("product %d is not assigned to location %d", productID, locationID))
	}

	if err := s.store.UpsertOnHand(ctx, productID, locationID, quantity.FromFloat(qty)); err != nil {
		return err
	}
	s.changed()
	return nil
}

// DeleteProduct removes a product with its assignments and on-hand rows.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.requireProduct(ctx, id); err != nil {
		return err
	}
	err := s.db(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.OnHand{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductLocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	s.logger.Info("Product deleted", zap.Int64("id", id))
	s.changed()
	return nil
}

// ListEntities returns a reference table sorted by name.
func (s *Service) ListEntities(ctx context.Context, kind catalog.EntityKind) ([]catalog.Entity, error) {
	entities, err := listEntities(s.db(ctx), kind)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return strings.ToLower(entities[i].Name) < strings.ToLower(entities[j].Name)
	})
	return entities, nil
}

// CreateEntity inserts a named entity. An existing name is a ConflictError.
func (s *Service) CreateEntity(ctx context.Context, kind catalog.EntityKind, name string) (*catalog.Entity, error) {
	id, created, err := s.store.UpsertEntityByName(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if !created {
		return nil, catalog.Conflict("name", fmt.Sprintf("%s %q already exists", kind, name))
	}
	s.changed()
	return &catalog.Entity{ID: id, Name: name}, nil
}

// RenameEntity renames an entity, refusing names already taken.
func (s *Service) RenameEntity(ctx context.Context, kind catalog.EntityKind, id int64, name string) error {
	table, err := models.EntityTable(kind)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Validation("name", fmt.Sprintf("%s name is required", kind))
	}
	if err := s.requireEntity(ctx, kind, id, "id"); err != nil {
		return err
	}

	var taken int64
	if err := s.db(ctx).Table(table).Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).Count(&taken).Error; err != nil {
		return fmt.Errorf("failed to check %s name: %w", kind, err)
	}
	if taken > 0 {
		return catalog.Conflict("name", fmt.Sprintf("%s %q already exists", kind, name))
	}

	if err := s.db(ctx).Table(table).Where("id = ?", id).Update("name", name).Error; err != nil {
		return fmt.Errorf("failed to rename %s %d: %w", kind, id, err)
	}
	s.changed()
	return nil
}

// DeleteEntity removes a reference entity.
//
// Vendors and material types are nulled on referencing products first.
// A location that is still assigned or stocked is refused with a
// ConflictError unless force is set, which removes those rows too.
func (s *Service) DeleteEntity(ctx context.Context, kind catalog.EntityKind, id int64, force bool) error {
	table, err := models.EntityTable(kind)
	if err != nil {
		return err
	}
	if err := s.requireEntity(ctx, kind, id, "id"); err != nil {
		return err
	}

	if kind == catalog.KindLocation && !force {
		var refs int64
		if err := s.db(ctx).Model(&models.ProductLocation{}).Where("location_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to count assignments: %w", err)
		}
		var stocked int64
		if err := s.db(ctx).Model(&models.OnHand{}).Where("location_id = ?", id).Count(&stocked).Error; err != nil {
			return fmt.Errorf("failed to count on-hand rows: %w", err)
		}
		if refs+stocked > 0 {
			return catalog.Conflict("id", fmt.Sprintf("location %d is still referenced by %d assignments and %d on-hand rows", id, refs, stocked))
		}
	}

	err = s.db(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case catalog.KindLocation:
			if err := tx.Where("location_id = ?", id).Delete(&models.OnHand{}).Error; err != nil {
				return err
			}
			if err := tx.Where("location_id = ?", id).Delete(&models.ProductLocation{}).Error; err != nil {
				return err
			}
		case catalog.KindMaterialType:
			if err := tx.Model(&models.Product{}).Where("material_type_id = ?", id).Update("material_type_id", nil).Error; err != nil {
				return err
			}
		case catalog.KindVendor:
			if err := tx.Model(&models.Product{}).Where("vendor_id = ?", id).Update("vendor_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Table(table).Where("id = ?", id).Delete(&models.Entity{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}

	s.logger.Info("Entity deleted", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Bool("force", force))
	s.changed()
	return nil
}
