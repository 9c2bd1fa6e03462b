package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbokhan/spy-cat-agency/internal/models"
	"github.com/vbokhan/spy-cat-agency/internal/myerrors"
	"github.com/vbokhan/spy-cat-agency/internal/repositories"
	"github.com/vbokhan/spy-cat-agency/internal/services"
	"github.com/vbokhan/spy-cat-agency/pkg/catapi"
)

// fakeCatAPI answers from a fixed breed list without the network.
type fakeCatAPI struct {
	breeds []catapi.Breed
	err    error
}

func (f *fakeCatAPI) ValidateBreed(ctx context.Context, name string) (catapi.Breed, error) {
	if f.err != nil {
		return catapi.Breed{}, f.err
	}
	for _, breed := range f.breeds {
		if strings.EqualFold(breed.Name, name) {
			return breed, nil
		}
	}
	return catapi.Breed{}, catapi.ErrBreedNotFound
}

type env struct {
	store    *repositories.Store
	api      *fakeCatAPI
	cats     *services.DefaultCatService
	missions *services.DefaultMissionService
}

func newEnv() *env {
	store := repositories.NewStore()
	catRepo := repositories.NewMemoryCatRepository(store)
	missionRepo := repositories.NewMemoryMissionRepository(store)
	targetRepo := repositories.NewMemoryTargetRepository(store)
	api := &fakeCatAPI{breeds: []catapi.Breed{
		{Id: "abys", Name: "Abyssinian"},
		{Id: "beng", Name: "Bengal"},
		{Id: "sibe", Name: "Siberian"},
	}}
	return &env{
		store:    store,
		api:      api,
		cats:     services.NewDefaultCatService(store, catRepo, missionRepo, api),
		missions: services.NewDefaultMissionService(store, missionRepo, targetRepo, catRepo),
	}
}

func (e *env) mustAddCat(t *testing.T, name, breed string) models.Cat {
	t.Helper()
	cat, err := e.cats.Add(context.Background(), models.Cat{
		Name:              name,
		Breed:             breed,
		YearsOfExperience: 3,
		Salary:            1000,
	})
	require.NoError(t, err)
	return cat
}

func (e *env) mustAddMission(t *testing.T, targets ...models.TargetCreate) models.Mission {
	t.Helper()
	mission, err := e.missions.Add(context.Background(), models.MissionCreate{Targets: targets})
	require.NoError(t, err)
	return mission
}

func (e *env) mustCompleteMission(t *testing.T, mission models.Mission) {
	t.Helper()
	for _, target := range mission.Targets {
		_, err := e.missions.CompleteTarget(context.Background(), mission.Id, target.Id)
		require.NoError(t, err)
	}
}

func TestAddCat(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a validated cat with no mission link", func(t *testing.T) {
		e := newEnv()
		cat, err := e.cats.Add(ctx, models.Cat{Name: "Tom", Breed: "Bengal", YearsOfExperience: 1, Salary: 1000})
		require.NoError(t, err)
		assert.Equal(t, int64(1), cat.Id)
		assert.Zero(t, cat.MissionId)
	})

	t.Run("breed match is case-insensitive", func(t *testing.T) {
		e := newEnv()
		_, err := e.cats.Add(ctx, models.Cat{Name: "Tom", Breed: "bengal", Salary: 1000})
		assert.NoError(t, err)
	})

	t.Run("duplicate name and breed pair conflicts", func(t *testing.T) {
		e := newEnv()
		e.mustAddCat(t, "Tom", "Bengal")
		_, err := e.cats.Add(ctx, models.Cat{Name: "Tom", Breed: "Bengal", Salary: 500})
		assert.True(t, myerrors.IsKind(err, myerrors.KindConflict))
	})

	t.Run("same name with different breed is allowed", func(t *testing.T) {
		e := newEnv()
		e.mustAddCat(t, "Tom", "Bengal")
		_, err := e.cats.Add(ctx, models.Cat{Name: "Tom", Breed: "Siberian", Salary: 500})
		assert.NoError(t, err)
	})

	t.Run("unknown breed is rejected", func(t *testing.T) {
		e := newEnv()
		_, err := e.cats.Add(ctx, models.Cat{Name: "Fraud", Breed: "fraud", Salary: 500})
		assert.ErrorIs(t, err, catapi.ErrBreedNotFound)
	})

	t.Run("validator failure propagates unchanged", func(t *testing.T) {
		e := newEnv()
		e.api.err = catapi.ErrUnavailable
		_, err := e.cats.Add(ctx, models.Cat{Name: "Tom", Breed: "Bengal", Salary: 500})
		assert.ErrorIs(t, err, catapi.ErrUnavailable)
	})

	t.Run("duplicate wins over validator failure", func(t *testing.T) {
		e := newEnv()
		e.mustAddCat(t, "Tom", "Bengal")
		e.api.err = catapi.ErrUnavailable
		_, err := e.cats.Add(ctx, models.Cat{Name: "Tom", Breed: "Bengal", Salary: 500})
		assert.True(t, myerrors.IsKind(err, myerrors.KindConflict))
	})
}

func TestUpdateCatSalary(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites only the salary", func(t *testing.T) {
		e := newEnv()
		cat := e.mustAddCat(t, "Tom", "Bengal")
		updated, err := e.cats.Update(ctx, cat.Id, models.CatUpdate{Salary: 2500})
		require.NoError(t, err)
		assert.Equal(t, 2500.0, updated.Salary)
		assert.Equal(t, cat.Name, updated.Name)
		assert.Equal(t, cat.Breed, updated.Breed)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		e := newEnv()
		_, err := e.cats.Update(ctx, 42, models.CatUpdate{Salary: 2500})
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
	})
}

func TestGetCat(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	cat := e.mustAddCat(t, "Tom", "Bengal")

	got, err := e.cats.GetById(ctx, cat.Id)
	require.NoError(t, err)
	assert.Equal(t, cat, got)

	_, err = e.cats.GetById(ctx, 42)
	assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
}

func TestDeleteCat(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id is not found", func(t *testing.T) {
		e := newEnv()
		err := e.cats.DeleteById(ctx, 42)
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
	})

	t.Run("unassigned cat is deletable", func(t *testing.T) {
		e := newEnv()
		cat := e.mustAddCat(t, "Tom", "Bengal")
		require.NoError(t, e.cats.DeleteById(ctx, cat.Id))
		_, err := e.cats.GetById(ctx, cat.Id)
		assert.True(t, myerrors.IsKind(err, myerrors.KindNotFound))
	})

	t.Run("cat on an active mission is protected until the mission completes", func(t *testing.T) {
		e := newEnv()
		cat := e.mustAddCat(t, "Tom", "Bengal")
		mission := e.mustAddMission(t, models.TargetCreate{Name: "Alice", Country: "FR"})
		_, err := e.missions.Assign(ctx, mission.Id, cat.Id)
		require.NoError(t, err)

		err = e.cats.DeleteById(ctx, cat.Id)
		assert.True(t, myerrors.IsKind(err, myerrors.KindForbidden))

		e.mustCompleteMission(t, mission)

		freed, err := e.cats.GetById(ctx, cat.Id)
		require.NoError(t, err)
		assert.Zero(t, freed.MissionId)
		assert.NoError(t, e.cats.DeleteById(ctx, cat.Id))
	})
}

func TestGetAllCats(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.mustAddCat(t, "Silky", "Bengal")
	e.mustAddCat(t, "Milky", "Bengal")
	e.mustAddCat(t, "Morgana", "Bengal")

	cats, err := e.cats.GetAll(ctx, models.PaginationQuery{})
	require.NoError(t, err)
	require.Len(t, cats, 3)

	cats, err = e.cats.GetAll(ctx, models.PaginationQuery{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Milky", cats[0].Name)

	cats, err = e.cats.GetAll(ctx, models.PaginationQuery{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, cats)
}
