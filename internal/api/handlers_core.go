package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// render executes a page template into the shared base layout, folding the
// pending flash messages into the view data.
func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}

	if data == nil {
		data = fiber.Map{}
	}
	if _, present := data["Flash"]; !present {
		data["Flash"] = handler.popFlashCookie(c)
	}
	if _, present := data["CurrentUser"]; !present {
		if user, authenticated := currentUser(c); authenticated {
			data["CurrentUser"] = user
		}
	}
	if _, present := data["CSRFToken"]; !present {
		if token, ok := c.Locals("csrf").(string); ok {
			data["CSRFToken"] = token
		}
	}

	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", data); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}
