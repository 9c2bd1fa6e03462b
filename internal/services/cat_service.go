package services

import (
	"context"
	"errors"

	"github.com/vbokhan/spy-cat-agency/internal/models"
	"github.com/vbokhan/spy-cat-agency/internal/myerrors"
	"github.com/vbokhan/spy-cat-agency/internal/repositories"
	"github.com/vbokhan/spy-cat-agency/pkg/catapi"
)

type CatService interface {
	Add(ctx context.Context, cat models.Cat) (models.Cat, error)
	GetById(ctx context.Context, id int64) (models.Cat, error)
	GetAll(ctx context.Context, query models.PaginationQuery) ([]models.Cat, error)
	Update(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error)
	DeleteById(ctx context.Context, id int64) error
}

type DefaultCatService struct {
	store       *repositories.Store
	catRepo     repositories.CatRepository
	missionRepo repositories.MissionRepository
	catAPI      catapi.CatAPI
}

func NewDefaultCatService(store *repositories.Store, catRepo repositories.CatRepository, missionRepo repositories.MissionRepository, catAPI catapi.CatAPI) *DefaultCatService {
	return &DefaultCatService{
		store:       store,
		catRepo:     catRepo,
		missionRepo: missionRepo,
		catAPI:      catAPI,
	}
}

// Add checks (name, breed) uniqueness before asking the breed api, so a
// duplicate is reported as a conflict even while the api is down. The check
// runs again inside the insert transaction because the store lock is not
// held across the network call.
func (d *DefaultCatService) Add(ctx context.Context, cat models.Cat) (models.Cat, error) {
	exists, err := d.catRepo.ExistsByNameAndBreed(ctx, cat.Name, cat.Breed)
	if err != nil {
		return models.Cat{}, err
	}
	if exists {
		return models.Cat{}, myerrors.Conflict("a cat with the same name and breed already exists")
	}

	if _, err := d.catAPI.ValidateBreed(ctx, cat.Breed); err != nil {
		return models.Cat{}, err
	}

	var newCat models.Cat
	err = d.store.WithTransaction(ctx, func(tx *repositories.Tx) error {
		if d.catRepo.ExistsByNameAndBreedWithTx(ctx, tx, cat.Name, cat.Breed) {
			return myerrors.Conflict("a cat with the same name and breed already exists")
		}
		newCat = d.catRepo.AddWithTx(ctx, tx, cat)
		return nil
	})
	if err != nil {
		return models.Cat{}, err
	}
	return newCat, nil
}

func (d *DefaultCatService) GetById(ctx context.Context, id int64) (models.Cat, error) {
	cat, err := d.catRepo.GetById(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCatNotFound) {
			return models.Cat{}, myerrors.NotFound("cat %d not found", id)
		}
		return models.Cat{}, err
	}
	return cat, nil
}

func (d *DefaultCatService) GetAll(ctx context.Context, query models.PaginationQuery) ([]models.Cat, error) {
	skip, limit := query.Window()
	return d.catRepo.GetAll(ctx, skip, limit)
}

func (d *DefaultCatService) Update(ctx context.Context, id int64, update models.CatUpdate) (models.Cat, error) {
	var updated models.Cat
	err := d.store.WithTransaction(ctx, func(tx *repositories.Tx) error {
		var err error
		updated, err = d.catRepo.UpdateWithTx(ctx, tx, id, update)
		if errors.Is(err, repositories.ErrCatNotFound) {
			return myerrors.NotFound("cat %d not found", id)
		}
		return err
	})
	if err != nil {
		return models.Cat{}, err
	}
	return updated, nil
}

// DeleteById refuses to remove a cat whose mission link points at an
// incomplete mission.
func (d *DefaultCatService) DeleteById(ctx context.Context, id int64) error {
	return d.store.WithTransaction(ctx, func(tx *repositories.Tx) error {
		cat, err := d.catRepo.GetByIdWithTx(ctx, tx, id)
		if err != nil {
			return myerrors.NotFound("cat %d not found", id)
		}
		if cat.MissionId != 0 {
			mission, err := d.missionRepo.GetByIdWithTx(ctx, tx, cat.MissionId)
			if err == nil && !mission.Completed {
				return myerrors.Forbidden("cannot delete cat assigned to an active mission")
			}
		}
		return d.catRepo.DeleteByIdWithTx(ctx, tx, id)
	})
}
