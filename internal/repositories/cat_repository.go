package repositories

import (
	"context"
	"errors"

	"github.com/vbokhan/spy-cat-agency/internal/models"
)

var ErrCatNotFound = errors.New("cat not found")

type CatRepository interface {
	GetById(ctx context.Context, id int64) (models.Cat, error)
	GetAll(ctx context.Context, skip, limit int) ([]models.Cat, error)
	GetByIdWithTx(ctx context.Context, tx *Tx, id int64) (models.Cat, error)
	AddWithTx(ctx context.Context, tx *Tx, cat models.Cat) models.Cat
	UpdateWithTx(ctx context.Context, tx *Tx, id int64, update models.CatUpdate) (models.Cat, error)
	DeleteByIdWithTx(ctx context.Context, tx *Tx, id int64) error
	ExistsByNameAndBreed(ctx context.Context, name, breed string) (bool, error)
	ExistsByNameAndBreedWithTx(ctx context.Context, tx *Tx, name, breed string) bool
	SetMissionWithTx(ctx context.Context, tx *Tx, catId, missionId int64) error
}

type MemoryCatRepository struct {
	store *Store
}

func NewMemoryCatRepository(store *Store) *MemoryCatRepository {
	return &MemoryCatRepository{store: store}
}

func (m *MemoryCatRepository) GetById(ctx context.Context, id int64) (models.Cat, error) {
	var cat models.Cat
	err := m.store.View(ctx, func(tx *Tx) error {
		var err error
		cat, err = m.GetByIdWithTx(ctx, tx, id)
		return err
	})
	return cat, err
}

func (m *MemoryCatRepository) GetByIdWithTx(ctx context.Context, tx *Tx, id int64) (models.Cat, error) {
	cat, ok := tx.store.cats[id]
	if !ok {
		return models.Cat{}, ErrCatNotFound
	}
	return cat, nil
}

func (m *MemoryCatRepository) GetAll(ctx context.Context, skip, limit int) ([]models.Cat, error) {
	var cats []models.Cat
	err := m.store.View(ctx, func(tx *Tx) error {
		for _, id := range window(tx.store.catOrder, skip, limit) {
			cats = append(cats, tx.store.cats[id])
		}
		return nil
	})
	return cats, err
}

func (m *MemoryCatRepository) AddWithTx(ctx context.Context, tx *Tx, cat models.Cat) models.Cat {
	cat.Id = tx.store.nextCatId
	cat.MissionId = 0
	tx.store.nextCatId++
	tx.store.cats[cat.Id] = cat
	tx.store.catOrder = append(tx.store.catOrder, cat.Id)
	return cat
}

func (m *MemoryCatRepository) UpdateWithTx(ctx context.Context, tx *Tx, id int64, update models.CatUpdate) (models.Cat, error) {
	cat, ok := tx.store.cats[id]
	if !ok {
		return models.Cat{}, ErrCatNotFound
	}
	cat.Salary = update.Salary
	tx.store.cats[id] = cat
	return cat, nil
}

func (m *MemoryCatRepository) DeleteByIdWithTx(ctx context.Context, tx *Tx, id int64) error {
	if _, ok := tx.store.cats[id]; !ok {
		return ErrCatNotFound
	}
	delete(tx.store.cats, id)
	tx.store.catOrder = removeId(tx.store.catOrder, id)
	return nil
}

func (m *MemoryCatRepository) ExistsByNameAndBreed(ctx context.Context, name, breed string) (bool, error) {
	var exists bool
	err := m.store.View(ctx, func(tx *Tx) error {
		exists = m.ExistsByNameAndBreedWithTx(ctx, tx, name, breed)
		return nil
	})
	return exists, err
}

func (m *MemoryCatRepository) ExistsByNameAndBreedWithTx(ctx context.Context, tx *Tx, name, breed string) bool {
	for _, cat := range tx.store.cats {
		if cat.Name == name && cat.Breed == breed {
			return true
		}
	}
	return false
}

// SetMissionWithTx writes the cat side of the cat<->mission link; 0 clears it.
func (m *MemoryCatRepository) SetMissionWithTx(ctx context.Context, tx *Tx, catId, missionId int64) error {
	cat, ok := tx.store.cats[catId]
	if !ok {
		return ErrCatNotFound
	}
	cat.MissionId = missionId
	tx.store.cats[catId] = cat
	return nil
}
