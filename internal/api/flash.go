package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FlashPayload carries the one-shot messages shown after a redirect. Notice
// is the primary outcome message; Warning is a secondary caveat appended to
// an otherwise successful action (e.g. SMS delivery failure).
type FlashPayload struct {
	Notice  string `json:"notice,omitempty"`
	Warning string `json:"warning,omitempty"`
}

func (handler *Handler) setFlashCookie(c *fiber.Ctx, payload FlashPayload) {
	payload.Notice = strings.TrimSpace(payload.Notice)
	payload.Warning = strings.TrimSpace(payload.Warning)
	if payload.Notice == "" && payload.Warning == "" {
		handler.clearFlashCookie(c)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(serialized)

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

func (handler *Handler) popFlashCookie(c *fiber.Ctx) FlashPayload {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return FlashPayload{}
	}
	handler.clearFlashCookie(c)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return FlashPayload{}
	}

	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return FlashPayload{}
	}
	payload.Notice = strings.TrimSpace(payload.Notice)
	payload.Warning = strings.TrimSpace(payload.Warning)
	return payload
}

func (handler *Handler) clearFlashCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
