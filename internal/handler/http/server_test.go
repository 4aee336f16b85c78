package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/willykudo/pionix/internal/domain/shift"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/cache"
	"github.com/willykudo/pionix/internal/pkg/calendar"
	"github.com/willykudo/pionix/internal/pkg/jwt"
	attendanceService "github.com/willykudo/pionix/internal/service/attendance"
	authService "github.com/willykudo/pionix/internal/service/auth"
	productService "github.com/willykudo/pionix/internal/service/product"
	rentalService "github.com/willykudo/pionix/internal/service/rental"
	reportService "github.com/willykudo/pionix/internal/service/report"
	shiftService "github.com/willykudo/pionix/internal/service/shift"
	userService "github.com/willykudo/pionix/internal/service/user"
	"github.com/willykudo/pionix/internal/testutil"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestPassword   = "password123"
)

var handlerTestLoc, _ = time.LoadLocation("Asia/Jakarta")

type testServer struct {
	handler     http.Handler
	users       *testutil.UserRepo
	shifts      *testutil.ShiftRepo
	attendances *testutil.AttendanceRepo
	products    *testutil.ProductRepo
	rentals     *testutil.RentalRepo
	files       *testutil.FileService
}

// newTestServer wires the real router and services over in-memory repositories. Budi is
// scheduled on an all-day shift spanning yesterday to tomorrow so check-in works at any hour.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)
	admin := user.User{ID: "u-admin", Username: "admin", Name: "Admin", Role: user.RoleAdmin, PasswordHash: string(hash)}
	budi := user.User{ID: "u-budi", Username: "budi", Name: "Budi", Role: user.RoleEmployee, PasswordHash: string(hash)}
	sari := user.User{ID: "u-sari", Username: "sari", Name: "Sari", Role: user.RoleEmployee, PasswordHash: string(hash)}

	today := calendar.DateOf(time.Now(), handlerTestLoc)
	allDay := shift.Shift{
		ID:         "s-all-day",
		ShiftType:  shift.ShiftTypeMorning,
		StartDate:  today.AddDays(-1),
		EndDate:    today.AddDays(1),
		ShiftStart: calendar.Clock{Hour: 0},
		ShiftEnd:   calendar.Clock{Hour: 23, Minute: 59},
		Employees:  []shift.Employee{{ID: budi.ID, Name: budi.Name}},
	}

	ts := &testServer{
		users:       testutil.NewUserRepo(admin, budi, sari),
		shifts:      testutil.NewShiftRepo(allDay),
		attendances: testutil.NewAttendanceRepo(handlerTestLoc),
		products:    testutil.NewProductRepo(),
		rentals:     testutil.NewRentalRepo(),
		files:       &testutil.FileService{},
	}

	jwtSvc, err := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp, cache.NewMemoryStore())
	require.NoError(t, err)

	tx := testutil.NoopTx{}
	reportSvc := reportService.NewReportService(ts.attendances, ts.products, handlerTestLoc)
	handlers := Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(tx, ts.users, jwtSvc, testutil.NewJWTRepo()), false),
		User:       NewUserHandler(userService.NewUserService(ts.users, jwtSvc)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(tx, ts.attendances, ts.shifts, ts.files, handlerTestLoc), reportSvc),
		Shift:      NewShiftHandler(shiftService.NewShiftService(tx, ts.shifts, ts.users, handlerTestLoc)),
		Product:    NewProductHandler(productService.NewProductService(ts.products)),
		Rental:     NewRentalHandler(rentalService.NewRentalService(ts.rentals, ts.files, handlerTestLoc)),
		Report:     NewReportHandler(reportSvc),
	}
	ts.handler = NewRouter(RouterConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		Env:            "test",
		LogLevel:       slog.LevelError,
	}, jwtSvc, handlers)
	return ts
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return ts.do(t, method, path, token, body, "application/json")
}

// login returns an access token for username.
func (ts *testServer) login(t *testing.T, username string) string {
	t.Helper()
	w := ts.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": handlerTestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}
