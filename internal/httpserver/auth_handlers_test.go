package httpserver

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hotbrew/cafe-order/internal/models"
)

// loginAs registers a user, bumps its role directly in the database, and
// returns a signed access token for it.
func loginAs(t *testing.T, e *echo.Echo, db *gorm.DB, username, role string) string {
	t.Helper()

	creds := credentials{Username: username, Password: "hunter22"}
	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	err := db.Model(&models.User{}).Where("username = ?", username).Update("role", role).Error
	require.NoError(t, err)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", creds, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestRegisterEndpoint(t *testing.T) {
	e, db := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", credentials{Username: "barista", Password: "hunter22"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decodeBody(t, rec, &body)
	assert.NotZero(t, body.ID)
	assert.Equal(t, "barista", body.Username)
	assert.Equal(t, "staff", body.Role)

	var stored models.User
	require.NoError(t, db.Where("username = ?", "barista").First(&stored).Error)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/register", credentials{Username: "barista", Password: "other"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/register", credentials{Username: "", Password: "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	creds := credentials{Username: "barista", Password: "hunter22"}
	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", creds, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &body)

	token, err := jwt.Parse(body.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "staff", claims["role"])
	assert.NotZero(t, claims["sub"])

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", credentials{Username: "barista", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", credentials{Username: "nobody", Password: "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsBadTokens(t *testing.T) {
	e, _ := newTestServer(t)

	// Garbage token.
	rec := doJSON(t, e, http.MethodPost, "/api/menus", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with a different secret.
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 1, "role": "admin"})
	signed, err := other.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	rec = doJSON(t, e, http.MethodPost, "/api/menus", nil, signed)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
