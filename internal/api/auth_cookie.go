package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const authCookiePurpose = "auth"

// setAuthCookie establishes the session: an HS256 JWT carrying the user id
// and role, sealed into an HttpOnly cookie.
func (handler *Handler) setAuthCookie(c *fiber.Ctx, user *models.User) error {
	token, err := handler.buildAuthToken(user, authTokenTTL)
	if err != nil {
		return err
	}

	sealed, err := handler.cookieCodec.seal(authCookiePurpose, []byte(token))
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(authTokenTTL),
	})
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) buildAuthToken(user *models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = authTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

// authenticateRequest resolves the session cookie to a live user record.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawCookie := strings.TrimSpace(c.Cookies(authCookieName))
	if rawCookie == "" {
		return nil, errors.New("missing auth cookie")
	}

	tokenValue, err := handler.cookieCodec.open(authCookiePurpose, rawCookie)
	if err != nil {
		return nil, errors.New("invalid token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(string(tokenValue), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
