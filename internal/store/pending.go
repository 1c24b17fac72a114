package store

import (
	"context"
	"encoding/json"
	"fmt"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"

	"gorm.io/gorm"
)

// SubmitPending queues a record for admin review.
func (s *Store) SubmitPending(ctx context.Context, userID uint, rec catalog.Record) (models.PendingGame, error) {
	if err := rec.Validate(); err != nil {
		return models.PendingGame{}, err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return models.PendingGame{}, fmt.Errorf("encode submission: %w", err)
	}
	p := models.PendingGame{SubmittedByID: userID, Payload: payload, Status: models.PendingOpen}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.PendingGame{}, err
	}
	return p, nil
}

// PendingList returns submissions with the given status, oldest first.
func (s *Store) PendingList(ctx context.Context, status models.PendingStatus) ([]models.PendingGame, error) {
	var out []models.PendingGame
	err := s.db.WithContext(ctx).Preload("SubmittedBy").
		Where("status = ?", status).Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

// Pending returns one submission and its decoded record.
func (s *Store) Pending(ctx context.Context, id uint) (models.PendingGame, catalog.Record, error) {
	var p models.PendingGame
	if err := s.db.WithContext(ctx).Preload("SubmittedBy").First(&p, id).Error; err != nil {
		return models.PendingGame{}, catalog.Record{}, notFound(err)
	}
	rec, err := DecodePending(p)
	return p, rec, err
}

// DecodePending decodes the record carried by a submission.
func DecodePending(p models.PendingGame) (catalog.Record, error) {
	var rec catalog.Record
	if err := json.Unmarshal(p.Payload, &rec); err != nil {
		return catalog.Record{}, fmt.Errorf("decode submission %d: %w", p.ID, err)
	}
	return rec, nil
}

// ResolvePending marks an open submission approved or denied.
func (s *Store) ResolvePending(ctx context.Context, id uint, status models.PendingStatus) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := openPending(tx, id); err != nil {
			return err
		}
		return markResolved(tx, id, status)
	})
}

// ApprovePending inserts the submitted record, credited to its submitter,
// and marks the submission approved. Both happen in one transaction: a
// submission that is no longer open leaves the catalogue untouched.
func (s *Store) ApprovePending(ctx context.Context, id uint) (models.PendingGame, catalog.Record, error) {
	var (
		p   models.PendingGame
		rec catalog.Record
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if p, err = openPending(tx, id); err != nil {
			return err
		}
		if rec, err = DecodePending(p); err != nil {
			return err
		}
		if err := rec.Validate(); err != nil {
			return err
		}
		rec = withID(rec)
		submitter := p.SubmittedByID
		if err := insertGame(tx, rec, &submitter); err != nil {
			return err
		}
		return markResolved(tx, id, models.PendingApproved)
	})
	if err != nil {
		return models.PendingGame{}, catalog.Record{}, err
	}
	created, err := s.Game(ctx, rec.ID)
	return p, created, err
}

func openPending(tx *gorm.DB, id uint) (models.PendingGame, error) {
	var p models.PendingGame
	if err := tx.Preload("SubmittedBy").First(&p, id).Error; err != nil {
		return models.PendingGame{}, notFound(err)
	}
	if p.Status != models.PendingOpen {
		return models.PendingGame{}, ErrAlreadyResolved
	}
	return p, nil
}

// markResolved only moves a submission out of the open state; a concurrent
// reviewer that got there first makes it fail with ErrAlreadyResolved.
func markResolved(tx *gorm.DB, id uint, status models.PendingStatus) error {
	res := tx.Model(&models.PendingGame{}).
		Where("id = ? AND status = ?", id, models.PendingOpen).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyResolved
	}
	return nil
}
