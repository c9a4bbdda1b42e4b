package api

import (
	"errors"
	"strings"

	"github.com/erickreynosop/scheduleassistant/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ShowCreateAccount(c *fiber.Ctx) error {
	return handler.render(c, "create_account", fiber.Map{
		"Title": "Schedule Assistant | Create Account",
	})
}

func (handler *Handler) CreateAccount(c *fiber.Ctx) error {
	input := registrationInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.redirectWithNotice(c, "/create-account", "All fields are required.")
	}

	_, err := handler.authService.Register(services.RegistrationInput{
		FullName:        input.FullName,
		Email:           input.Email,
		Phone:           input.Phone,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return handler.redirectWithNotice(c, "/create-account", "All fields are required.")
		case errors.Is(err, services.ErrPasswordMismatch):
			return handler.redirectWithNotice(c, "/create-account", "Passwords do not match.")
		case errors.Is(err, services.ErrEmailTaken):
			return handler.redirectWithNotice(c, "/create-account", "That email is already registered.")
		default:
			return c.Status(fiber.StatusInternalServerError).SendString("failed to create account")
		}
	}

	return handler.redirectWithNotice(c, "/", "Account created! You can log in now.")
}

func (handler *Handler) ShowForgotPassword(c *fiber.Ctx) error {
	return handler.render(c, "forgot_password", fiber.Map{
		"Title": "Schedule Assistant | Forgot Password",
	})
}

// ForgotPassword is a stub: it always reports that a reset link was sent.
// No email is delivered and no enumeration signal leaks.
func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if email == "" {
		return handler.redirectWithNotice(c, "/forgot-password", "Please enter your email.")
	}
	return handler.redirectWithNotice(c, "/", "If that email is registered, a reset link has been sent.")
}
