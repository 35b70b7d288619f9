package blob

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/emrgen/wiki/internal/model"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

// GormStore keeps objects as rows of the blobs table.
type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) Get(ctx context.Context, key string) (*Object, error) {
	var row model.Blob
	err := g.db.WithContext(ctx).Where("name = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &Object{Key: row.Name, Data: row.Data, Generation: row.Generation}, nil
}

// Put runs the generation check and the write in one transaction. Updates of
// an existing row also match on the generation read, so a concurrent writer
// that slipped in between is reported as a conflict.
func (g *GormStore) Put(ctx context.Context, key string, data []byte, ifGeneration int64) (int64, error) {
	var generation int64

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Blob
		err := tx.Where("name = ?", key).First(&current).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		exists := err == nil

		if err := checkGeneration(current.Generation, ifGeneration); err != nil {
			return err
		}
		generation = current.Generation + 1

		if !exists {
			return tx.Create(&model.Blob{
				Name:       key,
				Data:       data,
				Generation: generation,
			}).Error
		}

		res := tx.Model(&model.Blob{}).
			Where("name = ? AND generation = ?", key, current.Generation).
			Updates(map[string]any{"data": data, "generation": generation})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return generation, nil
}

func (g *GormStore) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	err := g.db.WithContext(ctx).Model(&model.Blob{}).
		Where("substr(name, 1, ?) = ?", utf8.RuneCountInString(prefix), prefix).
		Order("name").
		Pluck("name", &keys).Error

	return keys, err
}

func (g *GormStore) Delete(ctx context.Context, key string) error {
	res := g.db.WithContext(ctx).Where("name = ?", key).Delete(&model.Blob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Close() error {
	db, err := g.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
