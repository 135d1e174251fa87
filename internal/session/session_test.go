package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pettrackr/internal/client"
)

type fakeAuth struct {
	me        client.Owner
	meErr     error
	loginErr  error
	logoutErr error

	// loading captura el estado visto durante la llamada
	sess    *Session
	loading State
}

func (f *fakeAuth) Me(context.Context) (client.Owner, error) {
	if f.sess != nil {
		f.loading = f.sess.State()
	}
	return f.me, f.meErr
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (client.Owner, error) {
	if f.loginErr != nil {
		return client.Owner{}, f.loginErr
	}
	return client.Owner{ID: "o1", Email: email}, nil
}

func (f *fakeAuth) Logout(context.Context) error { return f.logoutErr }

func TestInit_Authenticated(t *testing.T) {
	api := &fakeAuth{me: client.Owner{ID: "o1"}}
	s := New(api)
	api.sess = s

	require.Equal(t, StateUnauthenticated, s.State())
	require.NoError(t, s.Init(context.Background()))

	assert.Equal(t, StateLoading, api.loading)
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "o1", s.OwnerID())
}

func TestInit_UnauthorizedIsNotAnError(t *testing.T) {
	s := New(&fakeAuth{meErr: client.ErrUnauthorized})
	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Empty(t, s.OwnerID())
}

func TestInit_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("dial tcp: refused")
	s := New(&fakeAuth{meErr: boom})
	require.ErrorIs(t, s.Init(context.Background()), boom)
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestLoginAndLogout(t *testing.T) {
	api := &fakeAuth{logoutErr: errors.New("server down")}
	s := New(api)

	require.NoError(t, s.Login(context.Background(), "ana@example.com", "pw"))
	o, ok := s.Owner()
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", o.Email)

	// el logout falla en el server pero la sesión local se cierra igual
	require.Error(t, s.Logout(context.Background()))
	assert.Equal(t, StateUnauthenticated, s.State())
	_, ok = s.Owner()
	assert.False(t, ok)
}

func TestLoginFailureLeavesUnauthenticated(t *testing.T) {
	s := New(&fakeAuth{loginErr: client.ErrUnauthorized})
	require.ErrorIs(t, s.Login(context.Background(), "a@b.c", "x"), client.ErrUnauthorized)
	assert.Equal(t, StateUnauthenticated, s.State())
}

func TestExpire(t *testing.T) {
	s := New(&fakeAuth{me: client.Owner{ID: "o1"}})
	require.NoError(t, s.Init(context.Background()))
	s.Expire()
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Empty(t, s.OwnerID())
}
