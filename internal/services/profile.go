package services

import (
	"context"
	"errors"
	"strings"

	"service_reporting/internal/apperr"
	"service_reporting/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProfileService lets a user view and edit their own account.
type ProfileService struct {
	db       *gorm.DB
	hashCost int
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db, hashCost: bcrypt.DefaultCost}
}

type Profile struct {
	ID           uint        `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	DepartmentID uint        `json:"department_id"`
	Department   string      `json:"department"`
}

// ProfileUpdate holds the fields to change; nil fields are left alone.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*Profile, error) {
	user, err := loadUser(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// Update applies in to the user. The email uniqueness check and the write
// share one transaction.
func (s *ProfileService) Update(ctx context.Context, userID uint, in ProfileUpdate) (*Profile, error) {
	updates := map[string]any{}
	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return nil, apperr.Validation("First name cannot be empty")
		}
		if err := validateNames(v); err != nil {
			return nil, err
		}
		updates["first_name"] = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v == "" {
			return nil, apperr.Validation("Last name cannot be empty")
		}
		if err := validateNames(v); err != nil {
			return nil, err
		}
		updates["last_name"] = v
	}
	if in.Email != nil {
		v := normalizeEmail(*in.Email)
		if err := validateEmail(v); err != nil {
			return nil, err
		}
		updates["email"] = v
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.hashCost)
		if err != nil {
			return nil, apperr.Internal("hash password", err)
		}
		updates["password"] = string(hash)
	}

	var user *domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = loadUser(tx, userID); err != nil {
			return err
		}
		if email, ok := updates["email"].(string); ok && email != user.Email {
			taken, err := emailTaken(tx, email, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("Email already exists")
			}
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&domain.User{ID: user.ID}).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("Email already exists")
			}
			return apperr.Internal("update profile", err)
		}
		user, err = loadUser(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

func loadUser(db *gorm.DB, userID uint) (*domain.User, error) {
	var user domain.User
	err := db.Preload("Department").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("load user", err)
	}
	return &user, nil
}

func toProfile(u *domain.User) *Profile {
	return &Profile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		Department:   u.Department.Name,
	}
}
