package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes declares each route's guard chain in place: boss
// restriction first, then the authentication requirement. Boss-only actions
// carry no middleware and perform both checks inside the handler so failures
// surface as flash redirects.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	app.Get("/", handler.ShowLogin)
	app.Post("/", handler.Login)
	app.Get("/logout", handler.Logout)
	app.Get("/main", handler.RestrictFromBoss, handler.AuthRequired, handler.ShowMain)

	app.Get("/create-account", handler.RestrictFromBoss, handler.ShowCreateAccount)
	app.Post("/create-account", handler.RestrictFromBoss, handler.CreateAccount)
	app.Get("/forgot-password", handler.ShowForgotPassword)
	app.Post("/forgot-password", handler.ForgotPassword)

	app.Get("/appointments/new", handler.RestrictFromBoss, handler.AuthRequired, handler.ShowNewAppointment)
	app.Post("/appointments/new", handler.RestrictFromBoss, handler.AuthRequired, handler.CreateAppointment)
	app.Get("/appointments", handler.RestrictFromBoss, handler.AuthRequired, handler.ListAppointments)
	app.Post("/appointments/:id/cancel", handler.RestrictFromBoss, handler.AuthRequired, handler.CancelAppointment)

	app.Post("/appointments/:id/delete", handler.DeleteAppointment)
	app.Post("/boss/appointments/:id/cancel", handler.BossCancelAppointment)

	app.Get("/calendar", handler.AuthRequired, handler.ShowCalendar)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
