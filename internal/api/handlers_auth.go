package api

import (
	"errors"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

func (handler *Handler) ShowLogin(c *fiber.Ctx) error {
	return handler.render(c, "login", fiber.Map{
		"Title": "Schedule Assistant | Log In",
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := time.Now().In(handler.location)
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return handler.redirectWithNotice(c, "/", "Too many login attempts. Please try again later.")
	}

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.redirectWithNotice(c, "/", "Please enter both your full name and password.")
	}

	user, err := handler.authService.Authenticate(input.FullName, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return handler.redirectWithNotice(c, "/", "Please enter both your full name and password.")
		case errors.Is(err, services.ErrInvalidCredentials):
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptsWindow)
			return handler.redirectWithNotice(c, "/", "Invalid credentials.")
		default:
			return c.Status(fiber.StatusInternalServerError).SendString("failed to log in")
		}
	}

	handler.loginLimiter.reset(limiterKey)
	if err := handler.setAuthCookie(c, &user); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to create session")
	}

	if user.Role.CanSeeAllAppointments() {
		return c.Redirect(currentCalendarPath(now), fiber.StatusSeeOther)
	}
	return c.Redirect("/main", fiber.StatusSeeOther)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return handler.redirectWithNotice(c, "/", "You have been logged out.")
}

func (handler *Handler) ShowMain(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.redirectWithNotice(c, "/", "Please log in first.")
	}
	return handler.render(c, "main", fiber.Map{
		"Title": "Schedule Assistant",
		"Name":  user.FullName,
	})
}
