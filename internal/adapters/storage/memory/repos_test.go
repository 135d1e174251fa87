package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pettrackr/internal/domain/feeding"
	"pettrackr/internal/domain/owners"
	"pettrackr/internal/domain/pets"
	"pettrackr/internal/domain/sessions"
	"pettrackr/internal/domain/vetvisits"
)

func TestOwnerRepo_EmailIndex(t *testing.T) {
	ctx := context.Background()
	repo := NewOwnerRepo()

	require.NoError(t, repo.Create(ctx, owners.Owner{ID: "o1", Email: "a@x.com"}))
	require.ErrorIs(t, repo.Create(ctx, owners.Owner{ID: "o2", Email: "a@x.com"}), owners.ErrConflict)
	require.NoError(t, repo.Create(ctx, owners.Owner{ID: "o2", Email: "b@x.com"}))

	// cambiar a un email tomado
	require.ErrorIs(t, repo.Update(ctx, owners.Owner{ID: "o2", Email: "a@x.com"}), owners.ErrConflict)

	// cambiar email libera el anterior
	require.NoError(t, repo.Update(ctx, owners.Owner{ID: "o1", Email: "c@x.com"}))
	_, err := repo.GetByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, owners.ErrNotFound)

	o, err := repo.GetByEmail(ctx, "c@x.com")
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)

	require.NoError(t, repo.Delete(ctx, "o1"))
	_, err = repo.GetByEmail(ctx, "c@x.com")
	assert.ErrorIs(t, err, owners.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "o1"), owners.ErrNotFound)
}

func TestPetRepo_ListByOwnerOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p2", OwnerID: "o1", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerID: "o1", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p3", OwnerID: "o2", CreatedAt: base}))

	items, err := repo.ListByOwner(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "p2", items[1].ID)

	items, err = repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFeedingRepo_SortedByTimeAndDeleteByPet(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedingRepo()

	require.NoError(t, repo.Create(ctx, feeding.Schedule{ID: "f1", PetID: "p1", Time: "18:00"}))
	require.NoError(t, repo.Create(ctx, feeding.Schedule{ID: "f2", PetID: "p1", Time: "08:00"}))
	require.NoError(t, repo.Create(ctx, feeding.Schedule{ID: "f3", PetID: "p2", Time: "12:00"}))

	items, err := repo.ListByPet(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "08:00", items[0].Time)
	assert.Equal(t, "18:00", items[1].Time)

	require.NoError(t, repo.DeleteByPet(ctx, "p1"))
	items, err = repo.ListByPet(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = repo.GetByID(ctx, "f3")
	assert.NoError(t, err)
}

func TestVetVisitRepo_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewVetVisitRepo()
	d := func(day int) time.Time { return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, repo.Create(ctx, vetvisits.VetVisit{ID: "v1", PetID: "p1", VisitDate: d(1)}))
	require.NoError(t, repo.Create(ctx, vetvisits.VetVisit{ID: "v2", PetID: "p1", VisitDate: d(20)}))

	items, err := repo.ListByPet(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "v2", items[0].ID)
}

func TestSessionRepo_Roundtrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo()

	require.NoError(t, repo.Save(ctx, sessions.Session{ID: "s1", OwnerID: "o1"}))
	s, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "o1", s.OwnerID)

	require.NoError(t, repo.Delete(ctx, "s1"))
	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}
