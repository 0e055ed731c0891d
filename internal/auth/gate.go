package auth

import (
	"errors"

	"backoffice-service/internal/model"
	"backoffice-service/pkg/jwtutil"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Authentication outcomes. The transport layer maps these to status codes
// and response bodies; the gate itself never touches HTTP.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("user lacks the required role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialStore looks up credential records by identifier
type CredentialStore interface {
	FindByEmail(email string) (*model.User, error)
}

// Session is the result of a successful authentication
type Session struct {
	Token string
	Name  string
}

// Gate validates credentials and enforces the admin role before issuing
// a signed token. It is stateless beyond token issuance.
type Gate struct {
	store CredentialStore
}

// NewGate creates a Gate over the given credential store
func NewGate(store CredentialStore) *Gate {
	return &Gate{store: store}
}

// Authenticate runs the login steps in order: lookup, role gate, password
// verify, token mint. Each failure maps to one of the sentinel errors above.
func (g *Gate) Authenticate(email, password string) (*Session, error) {
	user, err := g.store.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	if !user.HasRole(model.RoleAdmin) {
		return nil, ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email, user.Name, string(model.RoleAdmin))
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, Name: user.Name}, nil
}

// GormStore is the production credential store backed by the users table
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a credential store over the given database handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindByEmail looks up a user by email, mapping a missing row to ErrUserNotFound
func (s *GormStore) FindByEmail(email string) (*model.User, error) {
	var user model.User
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}
