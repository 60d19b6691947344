// Package services holds the business rules behind the HTTP handlers. Every
// method returns *apperr.Error values so the transport can map them to status codes.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"service_reporting/internal/apperr"
	"service_reporting/internal/config"
	"service_reporting/internal/domain"
	"service_reporting/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxNameLen     = 20
	maxEmailLen    = 120
	minPasswordLen = 8
)

// errInvalidCredentials is shared by the unknown-email and wrong-password paths
// so callers cannot tell which emails are registered.
var errInvalidCredentials = apperr.Auth("Invalid credentials")

// AuthService registers users, issues tokens and resolves token identities.
type AuthService struct {
	db       *gorm.DB
	secret   string
	ttl      time.Duration
	hashCost int
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, secret: cfg.JWTSecret, ttl: cfg.JWTTTL, hashCost: bcrypt.DefaultCost}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	DepartmentID uint
	Role         string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token        string
	Role         domain.Role
	DepartmentID uint
	Department   string
}

// Register creates a user with a bcrypt hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.DepartmentID == 0 {
		return nil, apperr.Validation("Missing required fields")
	}
	if err := validateNames(in.FirstName, in.LastName); err != nil {
		return nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, apperr.Validation("Invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}
	user := domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Password:     string(hash),
		DepartmentID: in.DepartmentID,
		Role:         role,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dept domain.Department
		if err := tx.First(&dept, in.DepartmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Validation("Unknown department")
			}
			return apperr.Internal("load department", err)
		}
		taken, err := emailTaken(tx, in.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("Email already exists")
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("Email already exists")
			}
			return apperr.Internal("create user", err)
		}
		user.Department = dept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and issues a token that carries only the user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Preload("Department").Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Internal("load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	token, err := utils.GenerateJWT(user.ID, s.secret, s.ttl, time.Now())
	if err != nil {
		return nil, apperr.Internal("sign token", err)
	}
	return &LoginResult{
		Token:        token,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		Department:   user.Department.Name,
	}, nil
}

// ParseToken validates a bearer token and returns the user id it names.
func (s *AuthService) ParseToken(token string) (uint, error) {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return 0, apperr.Auth("Invalid or expired token")
	}
	return claims.UserID, nil
}

// Authenticate resolves a token identity to the live user row, role included.
func (s *AuthService) Authenticate(ctx context.Context, userID uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Preload("Department").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Auth("User no longer exists")
	}
	if err != nil {
		return nil, apperr.Internal("load user", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateNames(names ...string) error {
	for _, n := range names {
		if len(n) > maxNameLen {
			return apperr.Validation("Names must be at most 20 characters")
		}
	}
	return nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || len(email) > maxEmailLen {
		return apperr.Validation("Invalid email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return apperr.Validation("Password must be at least 8 characters")
	}
	return nil
}

// emailTaken reports whether another user than exceptID already uses email.
func emailTaken(tx *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	q := tx.Model(&domain.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperr.Internal("check email", err)
	}
	return count > 0, nil
}
