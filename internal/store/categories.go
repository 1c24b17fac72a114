package store

import (
	"context"
	"errors"
	"strings"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"

	"gorm.io/gorm"
)

// Categories lists every category by name.
func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory adds a category to the vocabulary.
func (s *Store) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, catalog.ErrInvalidRecord
	}
	cat := models.Category{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryExists
		}
		return tx.Create(&cat).Error
	})
	return cat, err
}

// RenameCategory changes the name of a category. Games keep their link to
// it and pick up the new name.
func (s *Store) RenameCategory(ctx context.Context, id uint, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, catalog.ErrInvalidRecord
	}
	var cat models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, id).Error; err != nil {
			return notFound(err)
		}
		var clash models.Category
		err := tx.Where("name = ? AND id <> ?", name, id).First(&clash).Error
		if err == nil {
			return ErrCategoryExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		cat.Name = name
		return tx.Save(&cat).Error
	})
	return cat, err
}

// DeleteCategory removes a category and unlinks it from every game.
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM game_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		return nil
	})
}
