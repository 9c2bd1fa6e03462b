package services

import (
	"context"
	"errors"

	"github.com/vbokhan/spy-cat-agency/internal/models"
	"github.com/vbokhan/spy-cat-agency/internal/myerrors"
	"github.com/vbokhan/spy-cat-agency/internal/repositories"
)

type MissionService interface {
	Add(ctx context.Context, create models.MissionCreate) (models.Mission, error)
	GetById(ctx context.Context, id int64) (models.Mission, error)
	GetAll(ctx context.Context, query models.PaginationQuery) ([]models.Mission, error)
	Assign(ctx context.Context, missionId, catId int64) (models.Mission, error)
	UpdateTargetNotes(ctx context.Context, missionId, targetId int64, update models.TargetUpdate) (models.Target, error)
	CompleteTarget(ctx context.Context, missionId, targetId int64) (models.Target, error)
	Delete(ctx context.Context, id int64) error
}

type DefaultMissionService struct {
	store       *repositories.Store
	missionRepo repositories.MissionRepository
	targetRepo  repositories.TargetRepository
	catRepo     repositories.CatRepository
}

func NewDefaultMissionService(store *repositories.Store, missionRepo repositories.MissionRepository, targetRepo repositories.TargetRepository, catRepo repositories.CatRepository) *DefaultMissionService {
	return &DefaultMissionService{
		store:       store,
		missionRepo: missionRepo,
		targetRepo:  targetRepo,
		catRepo:     catRepo,
	}
}

// Add creates a mission together with its 1-3 targets in one transaction.
// The target set is fixed for the mission's lifetime.
func (d *DefaultMissionService) Add(ctx context.Context, create models.MissionCreate) (models.Mission, error) {
	if len(create.Targets) < 1 || len(create.Targets) > 3 {
		return models.Mission{}, myerrors.InvalidInput("a mission must have between 1 and 3 targets")
	}

	var mission models.Mission
	err := d.store.WithTransaction(ctx, func(tx *repositories.Tx) error {
		mission = d.missionRepo.AddWithTx(ctx, tx)
		for _, t := range create.Targets {
			target := d.targetRepo.AddWithTx(ctx, tx, models.Target{
				MissionId: mission.Id,
				Name:      t.Name,
				Country:   t.Country,
				Notes:     t.Notes,
			})
			mission.Targets = append(mission.Targets, target)
		}
		return nil
	})
	if err != nil {
		return models.Mission{}, err
	}
	return mission, nil
}

func (d *DefaultMissionService) GetById(ctx context.Context, id int64) (models.Mission, error) {
	var mission models.Mission
	err := d.store.View(ctx, func(tx *repositories.Tx) error {
		var err error
		mission, err = d.getResolvedWithTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return models.Mission{}, err
	}
	return mission, nil
}

func (d *DefaultMissionService) GetAll(ctx context.Context, query models.PaginationQuery) ([]models.Mission, error) {
	skip, limit := query.Window()
	var missions []models.Mission
	err := d.store.View(ctx, func(tx *repositories.Tx) error {
		for _, row := range d.missionRepo.GetAllWithTx(ctx, tx, skip, limit) {
			row.Targets = d.targetRepo.GetByMissionIdWithTx(ctx, tx, row.Id)
			missions = append(missions, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return missions, nil
}

// Assign links a cat and a mission, both sides in one transaction. A cat
// whose previous mission has completed is free to take a new one.
func (d *DefaultMissionService) Assign(ctx context.Context, missionId, catId int64) (models.Mission, error) {
	var mission models.Mission
	err := d.store.WithTransaction(ctx, func(tx *repositories.Tx) error {
		row, err := d.missionRepo.GetByIdWithTx(ctx, tx, missionId)
		if err != nil {
			return myerrors.NotFound("mission %d not found", missionId)
		}
		cat, err := d.catRepo.GetByIdWithTx(ctx, tx, catId)
		if err != nil {
			return myerrors.NotFound("cat %d not found", catId)
		}
		if row.CatId != 0 {
			return myerrors.Conflict("mission %d is already assigned to cat %d", missionId, row.CatId)
		}
		if cat.MissionId != 0 {
			current, err := d.missionRepo.GetByIdWithTx(ctx, tx, cat.MissionId)
			if err == nil && !current.Completed {
				return myerrors.Conflict("cat %d is already on an active mission %d", catId, cat.MissionId)
			}
		}
		if err := d.missionRepo.AssignWithTx(ctx, tx, missionId, catId); err != nil {
			return err
		}
		if err := d.catRepo.SetMissionWithTx(ctx, tx, catId, missionId); err != nil {
			return err
		}
		mission, err = d.getResolvedWithTx(ctx, tx, missionId)
		return err
	})
	if err != nil {
		return models.Mission{}, err
	}
	return mission, nil
}

func (d *DefaultMissionService) UpdateTargetNotes(ctx context.Context, missionId, targetId int64, update models.TargetUpdate) (models.Target, error) {
	var target models.Target
	err := d.store.WithTransaction(ctx, func(tx *repositories.Tx) error {
		mission, err := d.missionRepo.GetByIdWithTx(ctx, tx, missionId)
		if err != nil {
			return myerrors.NotFound("mission %d not found", missionId)
		}
		if mission.Completed {
			return myerrors.Forbidden("cannot update notes on a completed mission")
		}
		current, err := d.getMissionTargetWithTx(ctx, tx, missionId, targetId)
		if err != nil {
			return err
		}
		if current.Completed {
			return myerrors.Forbidden("cannot update notes on a completed target")
		}
		target, err = d.targetRepo.UpdateNotesWithTx(ctx, tx, targetId, update.Notes)
		return err
	})
	if err != nil {
		return models.Target{}, err
	}
	return target, nil
}

// CompleteTarget is idempotent on an already-completed target. When the last
// target completes, the mission completes and the cat's mission link is
// cleared; the mission keeps its catId as a record of who completed it.
func (d *DefaultMissionService) CompleteTarget(ctx context.Context, missionId, targetId int64) (models.Target, error) {
	var target models.Target
	err := d.store.WithTransaction(ctx, func(tx *repositories.Tx) error {
		mission, err := d.missionRepo.GetByIdWithTx(ctx, tx, missionId)
		if err != nil {
			return myerrors.NotFound("mission %d not found", missionId)
		}
		if mission.Completed {
			return myerrors.Forbidden("mission is already complete, cannot modify targets")
		}
		current, err := d.getMissionTargetWithTx(ctx, tx, missionId, targetId)
		if err != nil {
			return err
		}
		if current.Completed {
			target = current
			return nil
		}
		target, err = d.targetRepo.CompleteWithTx(ctx, tx, targetId)
		if err != nil {
			return err
		}

		for _, t := range d.targetRepo.GetByMissionIdWithTx(ctx, tx, missionId) {
			if !t.Completed {
				return nil
			}
		}
		if err := d.missionRepo.CompleteWithTx(ctx, tx, missionId); err != nil {
			return err
		}
		if mission.CatId != 0 {
			if err := d.catRepo.SetMissionWithTx(ctx, tx, mission.CatId, 0); err != nil && !errors.Is(err, repositories.ErrCatNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Target{}, err
	}
	return target, nil
}

// Delete cascades over the mission's targets. An incomplete mission whose
// cat link is still mutual cannot be deleted.
func (d *DefaultMissionService) Delete(ctx context.Context, id int64) error {
	return d.store.WithTransaction(ctx, func(tx *repositories.Tx) error {
		mission, err := d.missionRepo.GetByIdWithTx(ctx, tx, id)
		if err != nil {
			return myerrors.NotFound("mission %d not found", id)
		}
		if mission.CatId != 0 && !mission.Completed {
			cat, err := d.catRepo.GetByIdWithTx(ctx, tx, mission.CatId)
			if err == nil && cat.MissionId == id {
				return myerrors.Forbidden("cannot delete a mission that is currently assigned to a cat and is not complete")
			}
		}
		for _, t := range d.targetRepo.GetByMissionIdWithTx(ctx, tx, id) {
			if err := d.targetRepo.DeleteWithTx(ctx, tx, t.Id); err != nil {
				return err
			}
		}
		return d.missionRepo.DeleteWithTx(ctx, tx, id)
	})
}

func (d *DefaultMissionService) getResolvedWithTx(ctx context.Context, tx *repositories.Tx, id int64) (models.Mission, error) {
	mission, err := d.missionRepo.GetByIdWithTx(ctx, tx, id)
	if err != nil {
		return models.Mission{}, myerrors.NotFound("mission %d not found", id)
	}
	mission.Targets = d.targetRepo.GetByMissionIdWithTx(ctx, tx, id)
	return mission, nil
}

func (d *DefaultMissionService) getMissionTargetWithTx(ctx context.Context, tx *repositories.Tx, missionId, targetId int64) (models.Target, error) {
	target, err := d.targetRepo.GetByIdWithTx(ctx, tx, targetId)
	if err != nil || target.MissionId != missionId {
		return models.Target{}, myerrors.NotFound("target %d not found in mission %d", targetId, missionId)
	}
	return target, nil
}
