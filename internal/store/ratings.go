package store

import (
	"context"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"
)

// AddRating stores a user's score for an existing game.
func (s *Store) AddRating(ctx context.Context, r *models.Rating) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", r.GameID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return catalog.ErrNotFound
	}
	return s.db.WithContext(ctx).Create(r).Error
}

// RatingsByUser returns one page of the user's ratings, newest first, and
// the total count.
func (s *Store) RatingsByUser(ctx context.Context, userID uint, page, limit int) ([]models.Rating, int64, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	return Paginate[models.Rating](q, page, limit)
}
