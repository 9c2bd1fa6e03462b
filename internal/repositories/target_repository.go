package repositories

import (
	"context"
	"errors"

	"github.com/vbokhan/spy-cat-agency/internal/models"
)

var ErrTargetNotFound = errors.New("target not found")

type TargetRepository interface {
	GetByIdWithTx(ctx context.Context, tx *Tx, id int64) (models.Target, error)
	GetByMissionIdWithTx(ctx context.Context, tx *Tx, missionId int64) []models.Target
	AddWithTx(ctx context.Context, tx *Tx, target models.Target) models.Target
	UpdateNotesWithTx(ctx context.Context, tx *Tx, id int64, notes string) (models.Target, error)
	CompleteWithTx(ctx context.Context, tx *Tx, id int64) (models.Target, error)
	DeleteWithTx(ctx context.Context, tx *Tx, id int64) error
}

type MemoryTargetRepository struct {
	store *Store
}

func NewMemoryTargetRepository(store *Store) *MemoryTargetRepository {
	return &MemoryTargetRepository{store: store}
}

func (m *MemoryTargetRepository) GetByIdWithTx(ctx context.Context, tx *Tx, id int64) (models.Target, error) {
	target, ok := tx.store.targets[id]
	if !ok {
		return models.Target{}, ErrTargetNotFound
	}
	return target, nil
}

func (m *MemoryTargetRepository) GetByMissionIdWithTx(ctx context.Context, tx *Tx, missionId int64) []models.Target {
	var targets []models.Target
	for _, id := range tx.store.targetOrder {
		t := tx.store.targets[id]
		if t.MissionId == missionId {
			targets = append(targets, t)
		}
	}
	return targets
}

func (m *MemoryTargetRepository) AddWithTx(ctx context.Context, tx *Tx, target models.Target) models.Target {
	target.Id = tx.store.nextTargetId
	target.Completed = false
	tx.store.nextTargetId++
	tx.store.targets[target.Id] = target
	tx.store.targetOrder = append(tx.store.targetOrder, target.Id)
	return target
}

func (m *MemoryTargetRepository) UpdateNotesWithTx(ctx context.Context, tx *Tx, id int64, notes string) (models.Target, error) {
	target, ok := tx.store.targets[id]
	if !ok {
		return models.Target{}, ErrTargetNotFound
	}
	target.Notes = notes
	tx.store.targets[id] = target
	return target, nil
}

func (m *MemoryTargetRepository) CompleteWithTx(ctx context.Context, tx *Tx, id int64) (models.Target, error) {
	target, ok := tx.store.targets[id]
	if !ok {
		return models.Target{}, ErrTargetNotFound
	}
	target.Completed = true
	tx.store.targets[id] = target
	return target, nil
}

func (m *MemoryTargetRepository) DeleteWithTx(ctx context.Context, tx *Tx, id int64) error {
	if _, ok := tx.store.targets[id]; !ok {
		return ErrTargetNotFound
	}
	delete(tx.store.targets, id)
	tx.store.targetOrder = removeId(tx.store.targetOrder, id)
	return nil
}
