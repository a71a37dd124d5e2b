package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hotbrew/cafe-order/internal/hash"
	"github.com/hotbrew/cafe-order/internal/logging"
	"github.com/hotbrew/cafe-order/internal/models"
)

const accessTokenTTL = 12 * time.Hour

// AuthHTTP issues access tokens for staff accounts. New registrations get
// the staff role; promotion to admin happens out of band.
type AuthHTTP struct {
	DB        *gorm.DB
	JWTSecret []byte
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req credentials
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		l.Warn("register_failed", "status", 400, "reason", "missing credentials")
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	var existing models.User
	err := h.DB.WithContext(ctx).Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		l.Warn("register_failed", "status", 409, "reason", "user exists")
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "hash failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{Username: req.Username, PasswordHash: pwHash, Role: "staff"}
	if err := h.DB.WithContext(ctx).Create(&user).Error; err != nil {
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"id": user.ID, "username": user.Username, "role": user.Role,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req credentials
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		l.Warn("login_failed", "status", 401, "reason", "unknown user")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "bad password")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "sign failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"access_token": signed})
}
