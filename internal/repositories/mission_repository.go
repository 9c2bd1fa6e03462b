package repositories

import (
	"context"
	"errors"

	"github.com/vbokhan/spy-cat-agency/internal/models"
)

var ErrMissionNotFound = errors.New("mission not found")

type MissionRepository interface {
	GetByIdWithTx(ctx context.Context, tx *Tx, id int64) (models.Mission, error)
	GetAllWithTx(ctx context.Context, tx *Tx, skip, limit int) []models.Mission
	AddWithTx(ctx context.Context, tx *Tx) models.Mission
	AssignWithTx(ctx context.Context, tx *Tx, missionId, catId int64) error
	CompleteWithTx(ctx context.Context, tx *Tx, id int64) error
	DeleteWithTx(ctx context.Context, tx *Tx, id int64) error
}

type MemoryMissionRepository struct {
	store *Store
}

func NewMemoryMissionRepository(store *Store) *MemoryMissionRepository {
	return &MemoryMissionRepository{store: store}
}

func (m *MemoryMissionRepository) GetByIdWithTx(ctx context.Context, tx *Tx, id int64) (models.Mission, error) {
	mission, ok := tx.store.missions[id]
	if !ok {
		return models.Mission{}, ErrMissionNotFound
	}
	return mission, nil
}

func (m *MemoryMissionRepository) GetAllWithTx(ctx context.Context, tx *Tx, skip, limit int) []models.Mission {
	var missions []models.Mission
	for _, id := range window(tx.store.missionOrder, skip, limit) {
		missions = append(missions, tx.store.missions[id])
	}
	return missions
}

func (m *MemoryMissionRepository) AddWithTx(ctx context.Context, tx *Tx) models.Mission {
	mission := models.Mission{Id: tx.store.nextMissionId}
	tx.store.nextMissionId++
	tx.store.missions[mission.Id] = mission
	tx.store.missionOrder = append(tx.store.missionOrder, mission.Id)
	return mission
}

func (m *MemoryMissionRepository) AssignWithTx(ctx context.Context, tx *Tx, missionId, catId int64) error {
	mission, ok := tx.store.missions[missionId]
	if !ok {
		return ErrMissionNotFound
	}
	mission.CatId = catId
	tx.store.missions[missionId] = mission
	return nil
}

func (m *MemoryMissionRepository) CompleteWithTx(ctx context.Context, tx *Tx, id int64) error {
	mission, ok := tx.store.missions[id]
	if !ok {
		return ErrMissionNotFound
	}
	mission.Completed = true
	tx.store.missions[id] = mission
	return nil
}

func (m *MemoryMissionRepository) DeleteWithTx(ctx context.Context, tx *Tx, id int64) error {
	if _, ok := tx.store.missions[id]; !ok {
		return ErrMissionNotFound
	}
	delete(tx.store.missions, id)
	tx.store.missionOrder = removeId(tx.store.missionOrder, id)
	return nil
}
