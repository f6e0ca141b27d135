package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new custom category. The (owner, name, type)
// triple must be unique.
func (s *categoryService) CreateCategory(ownerID, name string, categoryType models.CategoryType, color, icon string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("owner_id = ? AND name = ? AND type = ?", ownerID, name, categoryType).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		OwnerID:  ownerID,
		Name:     name,
		Type:     categoryType,
		IsCustom: true,
		Color:    color,
		Icon:     icon,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetCategories retrieves a paginated list of categories for an owner.
func (s *categoryService) GetCategories(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{}).Where("owner_id = ?", ownerID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("type, name").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoriesByType retrieves categories of one type for an owner.
func (s *categoryService) GetCategoriesByType(ownerID string, categoryType models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{}).Where("owner_id = ? AND type = ?", ownerID, categoryType)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("name").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID returns a category if it belongs to the owner.
func (s *categoryService) GetCategoryByID(ownerID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND owner_id = ?", categoryID, ownerID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a category's display fields. Renaming must not
// collide with an existing (name, type) pair for the owner.
func (s *categoryService) UpdateCategory(ownerID, categoryID, name, color, icon string) (*models.Category, error) {
	category, err := s.GetCategoryByID(ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" && name != category.Name {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("owner_id = ? AND name = ? AND type = ? AND id <> ?", ownerID, name, category.Type, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}
	if icon != "" {
		updates["icon"] = icon
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a category and cascades to its dependent
// ledger entries and recurring definitions in one transaction.
func (s *categoryService) DeleteCategory(ownerID, categoryID string) error {
	category, err := s.GetCategoryByID(ownerID, categoryID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ? AND owner_id = ?", categoryID, ownerID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ? AND owner_id = ?", categoryID, ownerID).
			Delete(&models.RecurringTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaults creates any missing default categories for the owner and
// returns the owner's full category list. Safe to call repeatedly.
func (s *categoryService) SeedDefaults(ownerID string) ([]models.Category, error) {
	for _, def := range models.DefaultCategories {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("owner_id = ? AND name = ? AND type = ?", ownerID, def.Name, def.Type).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			continue
		}

		category := models.Category{
			OwnerID:  ownerID,
			Name:     def.Name,
			Type:     def.Type,
			IsCustom: false,
			Color:    def.Color,
			Icon:     def.Icon,
		}
		if err := s.db.Create(&category).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	var categories []models.Category
	if err := s.db.Where("owner_id = ?", ownerID).Order("type, name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
