package persistence

import (
	"context"
	"errors"

	"github.com/craftbase/backend/internal/domain/catalog"
	"github.com/craftbase/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIngredientRepository implements IngredientRepository using GORM,
// bound to a single tenant at construction time.
type GormIngredientRepository struct {
	db       *gorm.DB
	tenantID uuid.UUID
}

// NewGormIngredientRepository creates an ingredient repository bound to a tenant
func NewGormIngredientRepository(db *gorm.DB, tenantID uuid.UUID) *GormIngredientRepository {
	return &GormIngredientRepository{db: db, tenantID: tenantID}
}

func (r *GormIngredientRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("tenant_id = ?", r.tenantID)
}

// FindByID finds an ingredient by its ID within the bound tenant
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Ingredient, error) {
	var ingredient catalog.Ingredient
	if err := r.scoped(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs finds multiple ingredients by their IDs
func (r *GormIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Ingredient, error) {
	if len(ids) == 0 {
		return []catalog.Ingredient{}, nil
	}
	var ingredients []catalog.Ingredient
	if err := r.scoped(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindAll finds all ingredients matching the filter
func (r *GormIngredientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Ingredient, error) {
	var ingredients []catalog.Ingredient
	query := r.scoped(ctx).Model(&catalog.Ingredient{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR supplier LIKE ?", pattern, pattern)
	}
	if kind, ok := filter.Filters["kind"]; ok {
		query = query.Where("kind = ?", kind)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Count counts the bound tenant's ingredients
func (r *GormIngredientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.scoped(ctx).Model(&catalog.Ingredient{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an ingredient. The tenant key always comes from
// the binding, never from the caller.
func (r *GormIngredientRepository) Save(ctx context.Context, ingredient *catalog.Ingredient) error {
	ingredient.TenantID = r.tenantID
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// Delete deletes an ingredient within the bound tenant
func (r *GormIngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&catalog.Ingredient{}, "tenant_id = ? AND id = ?", r.tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormIngredientRepository implements IngredientRepository
var _ catalog.IngredientRepository = (*GormIngredientRepository)(nil)
