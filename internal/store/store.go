// Package store persists the catalogue with GORM and hands out read-only
// snapshots of it as catalog records.
package store

import (
	"errors"

	"boardshelf/backend/internal/catalog"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateID is returned when a game with the same ID already exists.
	ErrDuplicateID = errors.New("a game with this id already exists")
	// ErrUserExists is returned when a nickname or email is taken.
	ErrUserExists = errors.New("nickname or email already exists")
	// ErrCategoryExists is returned when a category name is taken.
	ErrCategoryExists = errors.New("category already exists")
	// ErrAlreadyResolved is returned when a submission was already reviewed.
	ErrAlreadyResolved = errors.New("submission already reviewed")
)

// Store provides GORM-based persistence for the catalogue.
type Store struct{ db *gorm.DB }

// New returns a Store backed by db. The schema must already be migrated.
func New(db *gorm.DB) *Store { return &Store{db: db} }

// notFound maps gorm.ErrRecordNotFound onto catalog.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.ErrNotFound
	}
	return err
}

// Paginate runs q for one page of T and returns the page together with the
// total number of matching rows.
func Paginate[T any](q *gorm.DB, page, limit int) ([]T, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var totalItems int64
	if err := q.Session(&gorm.Session{}).Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	if int64(page-1) > totalItems/int64(limit) {
		return []T{}, totalItems, nil
	}

	var results []T
	offset := (page - 1) * limit
	if err := q.Session(&gorm.Session{}).Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, totalItems, nil
}
