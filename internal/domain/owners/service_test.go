package owners

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Owner
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Owner{}}
}

func (r *testRepo) Create(_ context.Context, o Owner) error {
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) Update(_ context.Context, o Owner) error {
	if _, ok := r.byID[o.ID]; !ok {
		return ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Owner, error) {
	o, ok := r.byID[id]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *testRepo) GetByEmail(_ context.Context, email string) (Owner, error) {
	for _, o := range r.byID {
		if o.Email == email {
			return o, nil
		}
	}
	return Owner{}, ErrNotFound
}

type recordingRemover struct {
	calls []string
}

func (r *recordingRemover) DeleteByOwner(_ context.Context, ownerID string) error {
	r.calls = append(r.calls, ownerID)
	return nil
}

func newTestService(pets PetRemover) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, pets)
	svc.cost = bcrypt.MinCost
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, repo
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:     "Ana",
		Email:    "  Ana@Example.COM ",
		Phone:    "555-0100",
		Password: "s3cret-pass",
	}
}

func TestRegister_NormalizesEmailAndHashesPassword(t *testing.T) {
	svc, _ := newTestService(nil)

	o, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "ana@example.com", o.Email)
	assert.NotEqual(t, "s3cret-pass", o.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte("s3cret-pass")))
	assert.Equal(t, svc.now(), o.CreatedAt)
}

func TestRegister_RequiresFields(t *testing.T) {
	svc, _ := newTestService(nil)

	cases := map[string]func(*RegisterInput){
		"no name":        func(in *RegisterInput) { in.Name = " " },
		"bad email":      func(in *RegisterInput) { in.Email = "not-an-email" },
		"no phone":       func(in *RegisterInput) { in.Phone = "" },
		"short password": func(in *RegisterInput) { in.Password = "123" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "ANA@example.com"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	created, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "ANA@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdate_PartialAndEmailUniqueness(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	a, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	other := validInput()
	other.Email = "bob@example.com"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	phone := "555-0199"
	updated, err := svc.Update(ctx, a.ID, UpdateInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Ana", updated.Name)

	taken := "Bob@example.com"
	_, err = svc.Update(ctx, a.ID, UpdateInput{Email: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	empty := ""
	_, err = svc.Update(ctx, a.ID, UpdateInput{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, "missing", UpdateInput{Phone: &phone})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_CascadesToPets(t *testing.T) {
	remover := &recordingRemover{}
	svc, repo := newTestService(remover)
	ctx := context.Background()

	o, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, o.ID))
	assert.Equal(t, []string{o.ID}, remover.calls)
	assert.Empty(t, repo.byID)

	assert.ErrorIs(t, svc.Delete(ctx, o.ID), ErrNotFound)

	ok, err := svc.Exists(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
