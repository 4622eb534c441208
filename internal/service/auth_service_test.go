package service

import (
	"testing"

	"ldcomedy/config"
	"ldcomedy/internal/domain"
	"ldcomedy/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := config.Load()
	return NewAuthService(cfg,
		repository.NewUserRepository(db),
		repository.NewArtistRepository(db),
		repository.NewTheaterRepository(db))
}

func TestRegisterCreatesProfileForRole(t *testing.T) {
	svc := newAuthFixture(t)

	u, access, refresh, err := svc.Register("a@example.com", "stanley", "secret-pass", domain.RoleArtist)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, domain.RoleArtist, u.Role)

	p, err := svc.artists.GetByUserID(u.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "stanley", p.StageName)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newAuthFixture(t)

	_, _, _, err := svc.Register("a@example.com", "stanley", "secret-pass", domain.RoleTheater)
	require.NoError(t, err)

	_, _, _, err = svc.Register("a@example.com", "other", "secret-pass", domain.RoleArtist)
	assert.ErrorIs(t, err, ErrEmailExists)

	_, _, _, err = svc.Register("b@example.com", "stanley", "secret-pass", domain.RoleArtist)
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newAuthFixture(t)
	_, _, _, err := svc.Register("a@example.com", "stanley", "secret-pass", "ADMIN")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)
	_, _, _, err := svc.Register("a@example.com", "stanley", "secret-pass", domain.RoleArtist)
	require.NoError(t, err)

	u, access, _, err := svc.Login("a@example.com", "secret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Equal(t, "stanley", u.Username)

	_, _, _, err = svc.Login("a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, _, _, err = svc.Login("nobody@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRefreshToken(t *testing.T) {
	svc := newAuthFixture(t)
	_, _, refresh, err := svc.Register("a@example.com", "stanley", "secret-pass", domain.RoleArtist)
	require.NoError(t, err)

	access2, refresh2, err := svc.RefreshToken(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEmpty(t, refresh2)

	_, _, err = svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthFixture(t)
	u, _, _, err := svc.Register("a@example.com", "stanley", "secret-pass", domain.RoleArtist)
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(u.ID, "secret-pass", "new-secret-pass"))

	_, _, _, err = svc.Login("a@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("a@example.com", "new-secret-pass")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(u.ID, "wrong", "whatever-pass"), ErrInvalidCreds)
}
