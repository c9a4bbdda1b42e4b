package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/db"
	"github.com/erickreynosop/scheduleassistant/internal/models"
	"github.com/erickreynosop/scheduleassistant/internal/security"
	"github.com/erickreynosop/scheduleassistant/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Boss accounts are never created or promoted through HTTP routes; these
// commands are the out-of-band provisioning path.

// RunPromoteCommand grants the boss role to an existing account.
func RunPromoteCommand(dbPath string, email string) error {
	database, user, err := openAndFindUser(dbPath, email)
	if err != nil {
		return err
	}

	if user.Role == models.RoleBoss {
		fmt.Printf("%s already has the boss role\n", user.Email)
		return nil
	}

	if err := db.NewUserRepository(database).UpdateRole(user.ID, models.RoleBoss); err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	fmt.Printf("Promoted %s (%s) to boss\n", user.FullName, user.Email)
	return nil
}

// RunCreateBossCommand creates a boss account from scratch, prompting for the
// password with terminal echo disabled.
func RunCreateBossCommand(dbPath string, fullName string, email string, phone string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return errors.New("full name is required")
	}
	normalizedEmail, err := normalizeCommandEmail(email)
	if err != nil {
		return err
	}

	password, err := promptPasswordTwice()
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	users := db.NewUserRepository(database)
	exists, err := users.ExistsByNormalizedEmail(normalizedEmail)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return fmt.Errorf("email %s is already registered", normalizedEmail)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FullName:     fullName,
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		Role:         models.RoleBoss,
		Phone:        strings.TrimSpace(phone),
		CreatedAt:    time.Now(),
	}
	if err := users.Create(&user); err != nil {
		return fmt.Errorf("create boss account: %w", err)
	}

	fmt.Printf("Created boss account %s (%s)\n", user.FullName, user.Email)
	return nil
}

// RunResetPasswordCommand replaces an account's password with a generated
// temporary one and prints it.
func RunResetPasswordCommand(dbPath string, email string) error {
	database, user, err := openAndFindUser(dbPath, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	if err := db.NewUserRepository(database).UpdatePassword(user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Println("Password reset successful")
	fmt.Printf("Temporary password for %s: %s\n", user.Email, temporaryPassword)
	return nil
}

func openAndFindUser(dbPath string, email string) (*gorm.DB, models.User, error) {
	normalizedEmail, err := normalizeCommandEmail(email)
	if err != nil {
		return nil, models.User{}, err
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, models.User{}, fmt.Errorf("database init failed: %w", err)
	}

	user, err := db.NewUserRepository(database).FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.User{}, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return nil, models.User{}, fmt.Errorf("load user: %w", err)
	}
	return database, user, nil
}

func normalizeCommandEmail(email string) (string, error) {
	normalized := services.NormalizeEmail(email)
	if normalized == "" {
		return "", errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", fmt.Errorf("invalid email address: %w", err)
	}
	return normalized, nil
}

func promptPasswordTwice() (string, error) {
	fmt.Print("Password: ")
	first, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password confirmation: %w", err)
	}

	password := string(first)
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	if password != string(second) {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
