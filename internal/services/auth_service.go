package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/shim/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	ExistsByName(name string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindActiveByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdateLastLogin(userID uint, at time.Time) error
}

type AuthService struct {
	users AuthUserRepository
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

func (service *AuthService) Register(emailRaw string, passwordRaw string, nameRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}
	name := strings.TrimSpace(nameRaw)
	if name == "" || utf8.RuneCountInString(name) > maxUserNameLength {
		return models.User{}, ErrInvalidUserName
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}
	taken, err := service.users.ExistsByName(name)
	if err != nil {
		return models.User{}, fmt.Errorf("check name: %w", err)
	}
	if taken {
		return models.User{}, ErrNameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(passwordHash),
		IsActive:     true,
		Role:         models.RoleUser,
	}
	if err := service.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the password and stamps last_login. Unknown, inactive and mismatched
// accounts all report ErrAuthCredentialsInvalid.
func (service *AuthService) Login(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}

	now := service.now().UTC()
	if err := service.users.UpdateLastLogin(user.ID, now); err != nil {
		return models.User{}, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now
	return user, nil
}

func (service *AuthService) FindActiveByID(userID uint) (models.User, error) {
	user, err := service.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
