package services

import "strings"

// NormalizeEmail lowercases and trims an email for the case-insensitive
// uniqueness check. Unlike the login key, emails are unique by schema.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

type RegistrationInput struct {
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// NormalizeRegistrationInput trims the identity fields and enforces the
// required-field and password-confirmation rules.
func NormalizeRegistrationInput(input RegistrationInput) (RegistrationInput, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = NormalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.FullName == "" || input.Email == "" || input.Password == "" {
		return RegistrationInput{}, ErrInvalidInput
	}
	if input.Password != input.ConfirmPassword {
		return RegistrationInput{}, ErrPasswordMismatch
	}
	return input, nil
}

// NormalizeLoginInput trims the login full name and rejects empty fields.
// The password is left untouched so hashes match what was registered.
func NormalizeLoginInput(fullNameRaw string, password string) (string, string, error) {
	fullName := strings.TrimSpace(fullNameRaw)
	if fullName == "" || password == "" {
		return "", "", ErrInvalidInput
	}
	return fullName, password, nil
}
