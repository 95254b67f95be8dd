package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/notify"
	"github.com/syrilster/school-leave-console/internal/session"
	"github.com/syrilster/school-leave-console/internal/validation"
)

const testSecret = "directory-secret"

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg notify.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func writeDirectory(t *testing.T, users ...User) string {
	path := filepath.Join(t.TempDir(), "users.yaml")
	b, err := yaml.Marshal(directoryFile{Users: users})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0600))
	return path
}

func hash(t *testing.T, password string) string {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func loadTestDirectory(t *testing.T, path string, mailer notify.Mailer) *Directory {
	d, err := LoadDirectory(path, testSecret, time.Hour, mailer)
	require.NoError(t, err)
	d.cost = bcrypt.MinCost
	return d
}

func TestDirectoryAuthenticate(t *testing.T) {
	path := writeDirectory(t, User{ID: "1", Name: "Admin User", Email: "admin@test.com", Role: model.RoleAdmin, PasswordHash: hash(t, "password123")})
	d := loadTestDirectory(t, path, nil)

	token, err := d.Authenticate(context.Background(), model.Credentials{Email: "ADMIN@test.com", Password: "password123"})
	require.NoError(t, err)

	identity, err := session.NewDecoder(testSecret).Decode(token)
	require.NoError(t, err)
	assert.Equal(t, model.Identity{ID: "1", Email: "admin@test.com", Name: "Admin User", Role: model.RoleAdmin}, *identity)

	_, err = d.Authenticate(context.Background(), model.Credentials{Email: "admin@test.com", Password: "wrong"})
	require.ErrorIs(t, err, session.ErrInvalidCredentials)

	_, err = d.Authenticate(context.Background(), model.Credentials{Email: "nobody@test.com", Password: "password123"})
	require.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestDirectoryRegister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	d := loadTestDirectory(t, path, nil)

	token, err := d.Register(context.Background(), model.Registration{Name: "Kemi Lawal", Email: "kemi@school.edu.ng", Password: "secret1"})
	require.NoError(t, err)

	identity, err := session.NewDecoder(testSecret).Decode(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, identity.Role)
	assert.NotEmpty(t, identity.ID)

	_, err = d.Register(context.Background(), model.Registration{Name: "Kemi Again", Email: "Kemi@school.edu.ng", Password: "secret2"})
	assert.True(t, validation.IsValidationError(err))

	reloaded := loadTestDirectory(t, path, nil)
	_, err = reloaded.Authenticate(context.Background(), model.Credentials{Email: "kemi@school.edu.ng", Password: "secret1"})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestDirectoryTokensExpire(t *testing.T) {
	path := writeDirectory(t, User{ID: "5", Name: "Tunde", Email: "tunde@school.edu.ng", Role: model.RoleEmployee, PasswordHash: hash(t, "secret1")})
	d := loadTestDirectory(t, path, nil)
	d.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := d.Authenticate(context.Background(), model.Credentials{Email: "tunde@school.edu.ng", Password: "secret1"})
	require.NoError(t, err)

	_, err = session.NewDecoder(testSecret).Decode(token)
	require.ErrorIs(t, err, session.ErrExpiredToken)
}

func TestLoadDirectory(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "users.yaml"), "", 0, nil)
	require.ErrorIs(t, err, ErrNoSigningSecret)

	path := writeDirectory(t, User{ID: "1", Email: "root@test.com", Role: "superuser"})
	_, err = LoadDirectory(path, testSecret, 0, nil)
	require.Error(t, err)
}

func TestDirectoryForgotPassword(t *testing.T) {
	path := writeDirectory(t, User{ID: "5", Name: "Tunde", Email: "tunde@school.edu.ng", Role: model.RoleEmployee, PasswordHash: hash(t, "secret1")})
	mailer := &MockMailer{}
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg notify.Message) bool {
		return len(msg.To) == 1 && msg.To[0] == "tunde@school.edu.ng"
	})).Return(nil).Once()
	d := loadTestDirectory(t, path, mailer)

	require.NoError(t, d.ForgotPassword(context.Background(), "tunde@school.edu.ng"))
	require.NoError(t, d.ForgotPassword(context.Background(), "ghost@school.edu.ng"))
	mailer.AssertExpectations(t)
}
