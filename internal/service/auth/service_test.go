package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/willykudo/pionix/internal/domain/auth"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/cache"
	"github.com/willykudo/pionix/internal/pkg/jwt"
	"github.com/willykudo/pionix/internal/pkg/validator"
	"github.com/willykudo/pionix/internal/testutil"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type fixture struct {
	svc      auth.AuthService
	users    *testutil.UserRepo
	tokens   *testutil.JWTRepo
	jwt      *jwt.JWTService
	password string
	admin    user.User
}

func newFixture(t *testing.T, users ...user.User) fixture {
	t.Helper()
	jwtSvc, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, cache.NewMemoryStore())
	require.NoError(t, err)

	userRepo := testutil.NewUserRepo(users...)
	tokenRepo := testutil.NewJWTRepo()
	return fixture{
		svc:    NewAuthService(testutil.NoopTx{}, userRepo, jwtSvc, tokenRepo),
		users:  userRepo,
		tokens: tokenRepo,
		jwt:    jwtSvc,
	}
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func seededFixture(t *testing.T) fixture {
	admin := user.User{ID: "u-admin", Username: "admin", Name: "Admin", Role: user.RoleAdmin, PasswordHash: hashed(t, "secret123")}
	budi := user.User{ID: "u-budi", Username: "budi", Name: "Budi", Role: user.RoleEmployee, PasswordHash: hashed(t, "password1")}
	f := newFixture(t, admin, budi)
	f.admin = admin
	f.password = "password1"
	return f
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("employee by default", func(t *testing.T) {
		f := seededFixture(t)
		resp, err := f.svc.Register(ctx, auth.RegisterRequest{Username: "sari", Name: "Sari", Password: "hunter22"})
		require.NoError(t, err)
		assert.Equal(t, "karyawan", resp.Role)

		stored, err := f.users.GetByUsername(ctx, "sari")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := seededFixture(t)
		_, err := f.svc.Register(ctx, auth.RegisterRequest{Username: "budi", Name: "Budi 2", Password: "hunter22"})
		assert.ErrorIs(t, err, user.ErrUsernameExists)
	})

	t.Run("validation", func(t *testing.T) {
		f := seededFixture(t)
		_, err := f.svc.Register(ctx, auth.RegisterRequest{Username: "x", Password: "123"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		m := verrs.ToMap()
		assert.Contains(t, m, "username")
		assert.Contains(t, m, "name")
		assert.Contains(t, m, "password")
	})

	t.Run("first admin bootstraps", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.Register(ctx, auth.RegisterRequest{Username: "root", Name: "Root", Password: "hunter22", Role: "admin"})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
	})

	t.Run("admin needs admin session", func(t *testing.T) {
		f := seededFixture(t)
		req := auth.RegisterRequest{Username: "boss", Name: "Boss", Password: "hunter22", Role: "admin"}

		_, err := f.svc.Register(ctx, req)
		assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

		employeeCtx := testutil.WithSession(ctx, user.User{ID: "u-budi", Role: user.RoleEmployee})
		_, err = f.svc.Register(employeeCtx, req)
		assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

		adminCtx := testutil.WithSession(ctx, f.admin)
		_, err = f.svc.Register(adminCtx, req)
		assert.NoError(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := seededFixture(t)

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Username: "budi", Password: f.password}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "u-budi", resp.User.ID)

	userID, revoked, err := f.tokens.IsRefreshTokenRevoked(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u-budi", userID)
	assert.False(t, revoked)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "budi", Password: "wrong"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "whatever"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshAndLogout(t *testing.T) {
	ctx := context.Background()
	f := seededFixture(t)

	login, err := f.svc.Login(ctx, auth.LoginRequest{Username: "budi", Password: f.password}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken, "access tokens cannot be used to refresh")

	require.NoError(t, f.svc.Logout(ctx, auth.LogoutRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken}))
	assert.True(t, f.jwt.IsTokenRevoked(ctx, login.AccessToken))

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	assert.NoError(t, f.svc.Logout(ctx, auth.LogoutRequest{RefreshToken: "unknown"}), "unknown refresh tokens are ignored")
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	f := seededFixture(t)

	login, err := f.svc.Login(ctx, auth.LoginRequest{Username: "budi", Password: f.password}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	require.NoError(t, f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Username: "budi", NewPassword: "brandnew"}))

	_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "budi", Password: f.password}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "budi", Password: "brandnew"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked, "reset signs out existing sessions")

	err = f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Username: "ghost", NewPassword: "brandnew"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestResetPassword_AdminAccount(t *testing.T) {
	ctx := context.Background()
	f := seededFixture(t)
	req := auth.ResetPasswordRequest{Username: "admin", NewPassword: "takeover1"}

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, req), user.ErrAdminPrivilegeRequired)
	budi, _ := f.users.GetByID(ctx, "u-budi")
	assert.ErrorIs(t, f.svc.ResetPassword(testutil.WithSession(ctx, budi), req), user.ErrAdminPrivilegeRequired)

	_, err := f.svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "secret123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err, "password unchanged")

	require.NoError(t, f.svc.ResetPassword(testutil.WithSession(ctx, f.admin), req))
	_, err = f.svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "takeover1"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
}
