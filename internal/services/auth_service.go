package services

import (
	"errors"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindFirstByFullName(fullName string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users    AuthUserRepository
	location *time.Location
}

func NewAuthService(users AuthUserRepository, location *time.Location) *AuthService {
	if location == nil {
		location = time.Local
	}
	return &AuthService{users: users, location: location}
}

// Register creates a customer account. Fails with ErrInvalidInput /
// ErrPasswordMismatch on bad input and ErrEmailTaken when the normalized
// email is already registered, leaving the existing record untouched.
func (service *AuthService) Register(input RegistrationInput) (models.User, error) {
	normalized, err := NormalizeRegistrationInput(input)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(normalized.Email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FullName:     normalized.FullName,
		Email:        normalized.Email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
		Phone:        normalized.Phone,
		CreatedAt:    time.Now().In(service.location),
	}
	if err := service.users.Create(&user); err != nil {
		// The unique index catches the race between the existence check and
		// the insert; report it the same way.
		return models.User{}, ErrEmailTaken
	}
	return user, nil
}

// Authenticate resolves the first account whose full name matches exactly and
// checks the password. Unknown name and wrong password are both reported as
// ErrInvalidCredentials so accounts cannot be enumerated.
func (service *AuthService) Authenticate(fullNameRaw string, passwordRaw string) (models.User, error) {
	fullName, password, err := NormalizeLoginInput(fullNameRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindFirstByFullName(fullName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}
