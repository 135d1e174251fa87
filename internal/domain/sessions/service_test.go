package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pettrackr/internal/domain/owners"
	"pettrackr/internal/ports/auth"
)

type testRepo struct {
	byID map[string]Session
}

func (r *testRepo) Save(_ context.Context, s Session) error {
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Get(_ context.Context, id string) (Session, error) {
	s, ok := r.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type testOwners struct {
	byID map[string]owners.Owner
}

func (d *testOwners) Authenticate(_ context.Context, email, password string) (owners.Owner, error) {
	for _, o := range d.byID {
		if o.Email == email && password == "pw" {
			return o, nil
		}
	}
	return owners.Owner{}, owners.ErrInvalidCredentials
}

func (d *testOwners) GetByID(_ context.Context, id string) (owners.Owner, error) {
	o, ok := d.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func setup() (*Service, *testRepo, *testOwners, *time.Time) {
	repo := &testRepo{byID: map[string]Session{}}
	dir := &testOwners{byID: map[string]owners.Owner{
		"o1": {ID: "o1", Email: "ana@example.com"},
	}}
	clock := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := NewService(repo, dir, time.Hour)
	svc.now = func() time.Time { return clock }
	return svc, repo, dir, &clock
}

func TestLoginAndResolve(t *testing.T) {
	svc, repo, _, _ := setup()
	ctx := context.Background()

	sess, o, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, "o1", sess.OwnerID)
	assert.Equal(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt)
	assert.Contains(t, repo.byID, sess.ID)

	claims, err := svc.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "o1", Email: "ana@example.com", SessionID: sess.ID}, claims)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, repo, _, _ := setup()

	_, _, err := svc.Login(context.Background(), "ana@example.com", "nope")
	assert.ErrorIs(t, err, owners.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, owners.ErrInvalidCredentials)
	assert.Empty(t, repo.byID)
}

func TestResolve_ExpiredSessionIsDropped(t *testing.T) {
	svc, repo, _, clock := setup()
	ctx := context.Background()

	sess, _, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Hour)

	_, err = svc.Resolve(ctx, sess.ID)
	assert.ErrorIs(t, err, auth.ErrNoSession)
	assert.NotContains(t, repo.byID, sess.ID)
}

func TestResolve_DeletedOwnerDropsSession(t *testing.T) {
	svc, repo, dir, _ := setup()
	ctx := context.Background()

	sess, _, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	delete(dir.byID, "o1")

	_, err = svc.Resolve(ctx, sess.ID)
	assert.ErrorIs(t, err, auth.ErrNoSession)
	assert.NotContains(t, repo.byID, sess.ID)
}

func TestLogout_Idempotent(t *testing.T) {
	svc, repo, _, _ := setup()
	ctx := context.Background()

	sess, _, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))
	require.NoError(t, svc.Logout(ctx, sess.ID))
	require.NoError(t, svc.Logout(ctx, ""))
	assert.Empty(t, repo.byID)
}

type downRepo struct{ testRepo }

var errStoreDown = errors.New("dial tcp 127.0.0.1:6379: connection refused")

func (downRepo) Get(context.Context, string) (Session, error) {
	return Session{}, errStoreDown
}

func TestResolve_StoreFailureIsNotNoSession(t *testing.T) {
	repo := &downRepo{testRepo{byID: map[string]Session{}}}
	svc := NewService(repo, &testOwners{byID: map[string]owners.Owner{}}, time.Hour)

	_, err := svc.Resolve(context.Background(), "some-session")
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, auth.ErrNoSession)
}

func TestResolve_UnknownSessionIsNoSession(t *testing.T) {
	svc, _, _, _ := setup()

	_, err := svc.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, auth.ErrNoSession)
}
