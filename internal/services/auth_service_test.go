package services

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	nextID uint
	users  map[uint]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]models.User)}
}

func (store *fakeUserStore) ExistsByNormalizedEmail(email string) (bool, error) {
	for _, user := range store.users {
		if strings.ToLower(strings.TrimSpace(user.Email)) == email {
			return true, nil
		}
	}
	return false, nil
}

// FindFirstByFullName resolves name collisions toward the lowest ID, matching
// the repository's ascending-ID order.
func (store *fakeUserStore) FindFirstByFullName(fullName string) (models.User, error) {
	ids := make([]int, 0, len(store.users))
	for id := range store.users {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	for _, id := range ids {
		if store.users[uint(id)].FullName == fullName {
			return store.users[uint(id)], nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (store *fakeUserStore) FindByID(userID uint) (models.User, error) {
	user, ok := store.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (store *fakeUserStore) Create(user *models.User) error {
	store.nextID++
	user.ID = store.nextID
	store.users[user.ID] = *user
	return nil
}

func registrationInputForTest(fullName string, email string) RegistrationInput {
	return RegistrationInput{
		FullName:        fullName,
		Email:           email,
		Phone:           "+15551234567",
		Password:        "secret-pass",
		ConfirmPassword: "secret-pass",
	}
}

func TestRegisterCreatesCustomerWithHashedPassword(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, time.UTC)

	user, err := service.Register(registrationInputForTest("Alice Johnson", "  Alice@Example.COM "))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Role != models.RoleUser {
		t.Fatalf("expected customer role, got %q", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "secret-pass" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-pass")); err != nil {
		t.Fatalf("expected hash to verify: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, time.UTC)

	if _, err := service.Register(registrationInputForTest("Alice Johnson", "alice@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}

	if _, err := service.Register(registrationInputForTest("Another Person", "ALICE@example.com")); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected the existing record untouched, got %d users", len(store.users))
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	service := NewAuthService(newFakeUserStore(), time.UTC)

	input := registrationInputForTest("", "alice@example.com")
	if _, err := service.Register(input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}

	input = registrationInputForTest("Alice Johnson", "alice@example.com")
	input.ConfirmPassword = "different"
	if _, err := service.Register(input); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuthenticateMatchesFullNameAndPassword(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, time.UTC)

	if _, err := service.Register(registrationInputForTest("Alice Johnson", "alice@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := service.Authenticate("  Alice Johnson  ", "secret-pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected user resolved: %q", user.Email)
	}
}

func TestAuthenticateCollapsesFailuresToInvalidCredentials(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, time.UTC)

	if _, err := service.Register(registrationInputForTest("Alice Johnson", "alice@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.Authenticate("Alice Johnson", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("Nobody Here", "secret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown name, got %v", err)
	}
	if _, err := service.Authenticate("", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty fields, got %v", err)
	}
}

func TestAuthenticateResolvesNameCollisionsToLowestID(t *testing.T) {
	store := newFakeUserStore()
	service := NewAuthService(store, time.UTC)

	if _, err := service.Register(registrationInputForTest("Alice Johnson", "first@example.com")); err != nil {
		t.Fatalf("register first: %v", err)
	}
	second := registrationInputForTest("Alice Johnson", "second@example.com")
	second.Password = "other-pass"
	second.ConfirmPassword = "other-pass"
	if _, err := service.Register(second); err != nil {
		t.Fatalf("register second: %v", err)
	}

	user, err := service.Authenticate("Alice Johnson", "secret-pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Email != "first@example.com" {
		t.Fatalf("expected the earliest account to win, got %q", user.Email)
	}

	// The later duplicate is unreachable through this login key.
	if _, err := service.Authenticate("Alice Johnson", "other-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected the later duplicate to be shadowed, got %v", err)
	}
}
