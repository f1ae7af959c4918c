package user

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"voltport/models"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) GetByID(id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	return r.users[email], nil
}

func (r *stubUserRepo) GetAll() ([]models.User, error) { return nil, nil }
func (r *stubUserRepo) Create(u *models.User) error    { return nil }
func (r *stubUserRepo) Update(u *models.User) error    { return nil }
func (r *stubUserRepo) Delete(id string) error         { return nil }
func (r *stubUserRepo) Count() (int64, error)          { return 0, nil }

func newAuthFixture(t *testing.T, isAdmin bool) *DefaultUserService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sw0rdfish"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUserRepo{users: map[string]*models.User{
		"driver@example.com": {
			ID:           "user-1",
			Email:        "driver@example.com",
			PasswordHash: string(hash),
			IsAdmin:      isAdmin,
		},
	}}
	return &DefaultUserService{Repo: repo}
}

func TestAuthenticateAdmin_NonAdminForbidden(t *testing.T) {
	svc := newAuthFixture(t, false)

	resp, err := svc.AuthenticateAdmin("driver@example.com", "Sw0rdfish")

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAdminRequired))
}

func TestAuthenticateAdmin_WrongPasswordNotForbidden(t *testing.T) {
	svc := newAuthFixture(t, false)

	resp, err := svc.AuthenticateAdmin("driver@example.com", "wrong-password")

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAdminRequired))
}

func TestAuthenticateAdmin_UnknownEmail(t *testing.T) {
	svc := newAuthFixture(t, true)

	resp, err := svc.AuthenticateAdmin("nobody@example.com", "Sw0rdfish")

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAdminRequired))
}
