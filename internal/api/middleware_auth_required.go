package api

import "github.com/gofiber/fiber/v2"

// AuthRequired loads the session user into the request context, redirecting
// to the login page with a flash when there is no valid session. It layers
// beneath RestrictFromBoss: routes carrying both run the boss check first.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.redirectWithNotice(c, "/", "Please log in first.")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}
