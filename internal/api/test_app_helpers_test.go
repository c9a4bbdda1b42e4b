package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/db"
	"github.com/erickreynosop/scheduleassistant/internal/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newBookingTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "scheduleassistant-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, "test-secret-key", time.UTC, false, nil)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func createBookingTestUser(t *testing.T, database *gorm.DB, fullName string, email string, phone string, password string, role models.Role) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		FullName:     fullName,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(passwordHash),
		Role:         role,
		Phone:        phone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createBookingTestAppointment(t *testing.T, database *gorm.DB, ownerID uint, startAt time.Time, servicesList string) models.Appointment {
	t.Helper()

	appointment := models.Appointment{
		UserID:   ownerID,
		Title:    strings.Split(servicesList, ", ")[0],
		StartAt:  startAt,
		Services: servicesList,
	}
	if err := database.Create(&appointment).Error; err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return appointment
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, fullName string, password string) string {
	t.Helper()

	form := url.Values{
		"fullname": {fullName},
		"password": {password},
	}
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}

	t.Fatal("auth cookie is missing in login response")
	return ""
}

func postFormWithCookie(t *testing.T, app *fiber.App, authCookie string, path string, form url.Values) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func getPageWithCookie(t *testing.T, app *fiber.App, authCookie string, path string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func readResponseBody(t *testing.T, response *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func flashFromResponse(t *testing.T, response *http.Response) FlashPayload {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name != flashCookieName || cookie.Value == "" {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
		if err != nil {
			t.Fatalf("decode flash cookie: %v", err)
		}
		payload := FlashPayload{}
		if err := json.Unmarshal(decoded, &payload); err != nil {
			t.Fatalf("unmarshal flash cookie: %v", err)
		}
		return payload
	}

	t.Fatal("flash cookie is missing in response")
	return FlashPayload{}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func expectRedirect(t *testing.T, response *http.Response, path string) {
	t.Helper()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if got := response.Header.Get("Location"); got != path {
		t.Fatalf("expected redirect to %q, got %q", path, got)
	}
}
