package store

import (
	"context"
	"errors"
	"strings"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Records returns a snapshot of the whole catalogue ordered by name. The
// snapshot is what the duplicate detector and the filter engine work on.
func (s *Store) Records(ctx context.Context) ([]catalog.Record, error) {
	var games []models.Game
	if err := s.db.WithContext(ctx).Preload("Categories").Order("name ASC, id ASC").Find(&games).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Record, 0, len(games))
	for i := range games {
		out = append(out, toRecord(&games[i]))
	}
	return out, nil
}

// Game returns a single record.
func (s *Store) Game(ctx context.Context, id string) (catalog.Record, error) {
	var g models.Game
	if err := s.db.WithContext(ctx).Preload("Categories").First(&g, "id = ?", id).Error; err != nil {
		return catalog.Record{}, notFound(err)
	}
	return toRecord(&g), nil
}

// CreateGame persists rec. A record without an ID gets a fresh UUID. IDs
// are unique: a second record with the same ID fails with ErrDuplicateID.
func (s *Store) CreateGame(ctx context.Context, rec catalog.Record, createdBy *uint) (catalog.Record, error) {
	if err := rec.Validate(); err != nil {
		return catalog.Record{}, err
	}
	rec = withID(rec)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertGame(tx, rec, createdBy)
	})
	if err != nil {
		return catalog.Record{}, err
	}
	return s.Game(ctx, rec.ID)
}

// UpdateGame replaces every field of the game with id by the fields of rec.
// The ID itself never changes.
func (s *Store) UpdateGame(ctx context.Context, id string, rec catalog.Record) (catalog.Record, error) {
	if err := rec.Validate(); err != nil {
		return catalog.Record{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Game
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		g := fromRecord(rec)
		g.ID = existing.ID
		g.CreatedAt = existing.CreatedAt
		g.CreatedByID = existing.CreatedByID
		if err := tx.Omit("Categories").Save(&g).Error; err != nil {
			return err
		}

		cats, err := findOrCreateCategories(tx, rec.Categories)
		if err != nil {
			return err
		}
		assoc := tx.Model(&g).Association("Categories")
		if len(cats) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(cats)
	})
	if err != nil {
		return catalog.Record{}, err
	}
	return s.Game(ctx, id)
}

// DeleteGame removes a game together with its category links and ratings.
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g models.Game
		if err := tx.First(&g, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&g).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("game_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
}

func withID(rec catalog.Record) catalog.Record {
	rec = rec.Clone()
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	return rec
}

// insertGame writes rec inside tx. rec must already carry its ID.
func insertGame(tx *gorm.DB, rec catalog.Record, createdBy *uint) error {
	var count int64
	if err := tx.Model(&models.Game{}).Where("id = ?", rec.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateID
	}

	cats, err := findOrCreateCategories(tx, rec.Categories)
	if err != nil {
		return err
	}
	g := fromRecord(rec)
	g.CreatedByID = createdBy
	g.Categories = cats
	if err := tx.Create(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func findOrCreateCategories(tx *gorm.DB, names []string) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var cat models.Category
		if err := tx.Where(models.Category{Name: name}).FirstOrCreate(&cat).Error; err != nil {
			return nil, err
		}
		out = append(out, &cat)
	}
	return out, nil
}
