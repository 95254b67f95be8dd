package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/notify"
	"github.com/syrilster/school-leave-console/internal/session"
	"github.com/syrilster/school-leave-console/internal/validation"
)

const (
	filePerm   = 0600
	DefaultTTL = 8 * time.Hour
)

var ErrNoSigningSecret = errors.New("auth: local directory needs JWT_SECRET to sign tokens")

// User is one entry of the directory file.
type User struct {
	ID           model.ID   `yaml:"id"`
	Name         string     `yaml:"name"`
	Email        string     `yaml:"email"`
	Role         model.Role `yaml:"role"`
	PasswordHash string     `yaml:"passwordHash"`
}

type directoryFile struct {
	Users []User `yaml:"users"`
}

// Directory authenticates against users kept in a YAML file and signs its own
// HS256 tokens. Registration appends an employee and rewrites the file.
type Directory struct {
	mu     sync.Mutex
	path   string
	users  []User
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
	mailer notify.Mailer
}

// LoadDirectory reads the directory file. A missing file is an empty directory.
func LoadDirectory(path string, secret string, ttl time.Duration, mailer notify.Mailer) (*Directory, error) {
	if secret == "" {
		return nil, ErrNoSigningSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if mailer == nil {
		mailer = notify.LogMailer{}
	}

	d := &Directory{
		path:   path,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		mailer: mailer,
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Warn("user directory not found, starting empty")
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read user directory: %w", err)
	}

	var f directoryFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("auth: parse user directory: %w", err)
	}
	for _, u := range f.Users {
		if _, err := model.ParseRole(string(u.Role)); err != nil {
			return nil, fmt.Errorf("auth: user %s: %w", u.Email, err)
		}
	}
	d.users = f.Users
	return d, nil
}

func (d *Directory) Authenticate(ctx context.Context, creds model.Credentials) (string, error) {
	d.mu.Lock()
	u, ok := d.find(creds.Email)
	d.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)) != nil {
		log.WithContext(ctx).WithField("email", creds.Email).Info("local login rejected")
		return "", session.ErrInvalidCredentials
	}
	return d.sign(u)
}

// Register always creates an employee; admins are only added to the file by hand.
func (d *Directory) Register(ctx context.Context, reg model.Registration) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), d.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.find(reg.Email); exists {
		return "", &validation.Error{Fields: map[string]string{"email": "Email is already registered"}}
	}

	u := User{
		ID:           model.ID(uuid.NewString()),
		Name:         strings.TrimSpace(reg.Name),
		Email:        strings.TrimSpace(reg.Email),
		Role:         model.RoleEmployee,
		PasswordHash: string(hash),
	}
	users := append(append([]User(nil), d.users...), u)
	if err := d.save(users); err != nil {
		return "", err
	}
	d.users = users
	log.WithContext(ctx).WithField("id", u.ID).Info("user registered")

	return d.sign(u)
}

// ForgotPassword mails the account holder when the address is known and stays
// silent otherwise.
func (d *Directory) ForgotPassword(ctx context.Context, email string) error {
	d.mu.Lock()
	u, ok := d.find(email)
	d.mu.Unlock()
	if !ok {
		return nil
	}

	return d.mailer.Send(ctx, notify.Message{
		To:      []string{u.Email},
		Subject: "Password reset request",
		Body: fmt.Sprintf("Hello %s,\n\nA password reset was requested for your account. "+
			"Please contact the school administrator to set a new password.\n", u.Name),
	})
}

func (d *Directory) find(email string) (User, bool) {
	email = strings.TrimSpace(email)
	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return User{}, false
}

func (d *Directory) sign(u User) (string, error) {
	now := d.now()
	claims := session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d.ttl)),
		},
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// save replaces the directory file atomically.
func (d *Directory) save(users []User) error {
	b, err := yaml.Marshal(directoryFile{Users: users})
	if err != nil {
		return fmt.Errorf("auth: encode user directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".users-*.yaml")
	if err != nil {
		return fmt.Errorf("auth: write user directory: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("auth: write user directory: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("auth: write user directory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("auth: write user directory: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("auth: write user directory: %w", err)
	}
	return nil
}
