package http

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/auth/register", "", bytes.NewReader([]byte("invalid json")), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", decode(t, w).Error.Code)
}

func TestAuthHandler_Register(t *testing.T) {
	ts := newTestServer(t)

	t.Run("employee", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": "joko",
			"name":     "Joko",
			"password": "secret99",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var data struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		}
		decodeData(t, w, &data)
		assert.Equal(t, "joko", data.Username)
		assert.Equal(t, "karyawan", data.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": "budi",
			"name":     "Budi Lain",
			"password": "secret99",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("admin needs an admin session", func(t *testing.T) {
		payload := map[string]string{
			"username": "boss",
			"name":     "Boss",
			"password": "secret99",
			"role":     "admin",
		}
		w := ts.doJSON(t, http.MethodPost, "/api/auth/register", "", payload)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.doJSON(t, http.MethodPost, "/api/auth/register", ts.login(t, "admin"), payload)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("validation", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": "x",
			"password": "123",
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		details := decode(t, w).Error.Details
		assert.Contains(t, details, "username")
		assert.Contains(t, details, "name")
		assert.Contains(t, details, "password")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	ts := newTestServer(t)

	t.Run("sets refresh cookie", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "budi",
			"password": handlerTestPassword,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var refresh *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == refreshTokenCookieName {
				refresh = c
			}
		}
		require.NotNil(t, refresh)
		assert.NotEmpty(t, refresh.Value)
		assert.True(t, refresh.HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "budi",
			"password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := ts.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "nobody",
			"password": handlerTestPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_ProfileAndLogout(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "budi")

	w := ts.do(t, http.MethodGet, "/api/auth/profile", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, w, &profile)
	assert.Equal(t, "u-budi", profile.ID)
	assert.Equal(t, "Budi", profile.Name)

	w = ts.do(t, http.MethodPost, "/api/auth/logout", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/auth/profile", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RegisterWithRevokedToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "admin")
	payload := map[string]string{
		"username": "mallory",
		"name":     "Mallory",
		"password": "secret99",
		"role":     "admin",
	}

	w := ts.do(t, http.MethodPost, "/api/auth/logout", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.doJSON(t, http.MethodPost, "/api/auth/register", token, payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())

	exists, err := ts.users.ExistsByUsername(context.Background(), "mallory")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAuthHandler_RegisterWithRefreshToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": handlerTestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var tokens struct {
		RefreshToken string `json:"refreshToken"`
	}
	decodeData(t, w, &tokens)

	w = ts.doJSON(t, http.MethodPost, "/api/auth/register", tokens.RefreshToken, map[string]string{
		"username": "mallory",
		"name":     "Mallory",
		"password": "secret99",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RoleChangeRevokesTokens(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.login(t, "admin")

	w := ts.doJSON(t, http.MethodPost, "/api/auth/register", adminToken, map[string]string{
		"username": "boss",
		"name":     "Boss",
		"password": handlerTestPassword,
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var boss struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &boss)

	bossToken := ts.login(t, "boss")
	w = ts.do(t, http.MethodGet, "/api/users", bossToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.doJSON(t, http.MethodPut, "/api/users/"+boss.ID, adminToken, map[string]string{"role": "karyawan"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/users", bossToken, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/api/users", adminToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code, "the acting admin keeps its session")
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "sari",
		"password": handlerTestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var tokens struct {
		RefreshToken string `json:"refreshToken"`
	}
	decodeData(t, w, &tokens)

	w = ts.doJSON(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &refreshed)
	assert.NotEmpty(t, refreshed.Token)

	w = ts.doJSON(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	ts := newTestServer(t)

	w := ts.doJSON(t, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"username":    "sari",
		"newPassword": "brandnew1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "sari",
		"password": "brandnew1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_ResetAdminPassword(t *testing.T) {
	ts := newTestServer(t)
	payload := map[string]string{
		"username":    "admin",
		"newPassword": "takeover1",
	}

	w := ts.doJSON(t, http.MethodPost, "/api/auth/reset-password", "", payload)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = ts.doJSON(t, http.MethodPost, "/api/auth/reset-password", ts.login(t, "budi"), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.doJSON(t, http.MethodPost, "/api/auth/reset-password", ts.login(t, "admin"), payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = ts.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "takeover1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutes(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/shifts", "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/shifts", "not-a-jwt", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("employee cannot list users", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/users", ts.login(t, "budi"), nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin lists users", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/users?limit=2", ts.login(t, "admin"), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var data struct {
			TotalCount int64  `json:"totalCount"`
			Showing    string `json:"showing"`
		}
		decodeData(t, w, &data)
		assert.Equal(t, int64(3), data.TotalCount)
		assert.Equal(t, "1-2 of 3", data.Showing)
	})
}
