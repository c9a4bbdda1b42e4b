package api

import (
	"fmt"
	"html/template"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/db"
	"github.com/erickreynosop/scheduleassistant/internal/services"
	"github.com/erickreynosop/scheduleassistant/web"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	templates    map[string]*template.Template
	cookieCodec  *secureCookieCodec
	sms          *services.SMSSender
	repositories *db.Repositories
	authService  *services.AuthService
	bookings     *services.BookingService
	loginLimiter *attemptLimiter
}

type loginInput struct {
	FullName string `json:"fullname" form:"fullname"`
	Password string `json:"password" form:"password"`
}

type registrationInput struct {
	FullName        string `json:"fullname" form:"fullname"`
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm" form:"confirm"`
}

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const authTokenTTL = 12 * time.Hour

var templatePages = []string{
	"login",
	"create_account",
	"forgot_password",
	"main",
	"appointments",
	"create_appointment",
	"calendar",
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, cookieSecure bool, sms *services.SMSSender) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if sms == nil {
		sms = services.NewSMSSender("", "", "")
	}

	cookieCodec, err := newSecureCookieCodec([]byte(secret))
	if err != nil {
		return nil, err
	}

	funcMap := template.FuncMap{
		"formatDate": func(value time.Time, layout string) string {
			if value.IsZero() {
				return ""
			}
			return value.Format(layout)
		},
	}

	templates := make(map[string]*template.Template, len(templatePages))
	for _, page := range templatePages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(
			web.Templates,
			"templates/base.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		templates:    templates,
		cookieCodec:  cookieCodec,
		sms:          sms,
		repositories: repositories,
		authService:  services.NewAuthService(repositories.Users, location),
		bookings:     services.NewBookingService(repositories.Appointments, location),
		loginLimiter: newAttemptLimiter(),
	}, nil
}
