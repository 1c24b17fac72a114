package store

import (
	"context"
	"errors"
	"strings"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"

	"gorm.io/gorm"
)

// CreateUser stores a new user. The first user of a fresh catalogue becomes
// its admin.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).Where("nickname = ? OR email = ?", u.Nickname, u.Email).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrUserExists
		}

		var total int64
		if err := tx.Model(&models.User{}).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			u.Role = models.RoleAdmin
		} else if u.Role == "" {
			u.Role = models.RoleUser
		}
		return tx.Create(u).Error
	})
}

// UserByLogin finds a user by nickname or email.
func (s *Store) UserByLogin(ctx context.Context, login string) (models.User, error) {
	login = strings.TrimSpace(login)
	var u models.User
	if err := s.db.WithContext(ctx).Where("nickname = ? OR email = ?", login, login).First(&u).Error; err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}

// UserByID finds a user by primary key.
func (s *Store) UserByID(ctx context.Context, id uint) (models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return models.User{}, notFound(err)
	}
	return u, nil
}

// CreateHousehold creates a household and moves the user into it.
func (s *Store) CreateHousehold(ctx context.Context, userID uint, name string) (models.Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Household{}, catalog.ErrInvalidRecord
	}
	h := models.Household{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		result := tx.Model(&models.User{}).Where("id = ?", userID).Update("household_id", h.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return models.Household{}, err
	}
	return s.householdWithMembers(ctx, h.ID)
}

// JoinHousehold moves the user into an existing household.
func (s *Store) JoinHousehold(ctx context.Context, userID, householdID uint) (models.Household, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var h models.Household
		if err := tx.First(&h, householdID).Error; err != nil {
			return notFound(err)
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("household_id", householdID).Error
	})
	if err != nil {
		return models.Household{}, err
	}
	return s.householdWithMembers(ctx, householdID)
}

// HouseholdOf returns the user's household with its members.
func (s *Store) HouseholdOf(ctx context.Context, userID uint) (models.Household, error) {
	u, err := s.UserByID(ctx, userID)
	if err != nil {
		return models.Household{}, err
	}
	if u.HouseholdID == nil {
		return models.Household{}, catalog.ErrNotFound
	}
	return s.householdWithMembers(ctx, *u.HouseholdID)
}

// HouseholdMembers returns the nicknames of everyone sharing the user's
// household, the user included. A user without a household gets nil.
func (s *Store) HouseholdMembers(ctx context.Context, userID uint) ([]string, error) {
	h, err := s.HouseholdOf(ctx, userID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]string, 0, len(h.Members))
	for _, m := range h.Members {
		out = append(out, m.Nickname)
	}
	return out, nil
}

func (s *Store) householdWithMembers(ctx context.Context, id uint) (models.Household, error) {
	var h models.Household
	err := s.db.WithContext(ctx).Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("nickname ASC")
	}).First(&h, id).Error
	if err != nil {
		return models.Household{}, notFound(err)
	}
	return h, nil
}
