package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/handler/http/middleware"
	"github.com/willykudo/pionix/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level

	// UploadsDir is served read-only under /uploads when set.
	UploadsDir string
}

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Attendance AttendanceHandler
	Shift      ShiftHandler
	Product    ProductHandler
	Rental     RentalHandler
	Report     ReportHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pionix"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data", "application/x-www-form-urlencoded"))
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))

		r.Route("/auth", func(r chi.Router) {
			// Register and reset-password read an optional session for admin-only cases.
			r.With(middleware.AuthOptional(JWTService)).Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.With(middleware.AuthOptional(JWTService)).Post("/reset-password", h.Auth.ResetPassword)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthRequired(JWTService))
				r.Get("/profile", h.User.Profile)
				r.With(middleware.RequirePermission(user.PermissionEditOwnProfile)).Put("/profile", h.User.UpdateProfile)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.AdminOnly).Get("/", h.User.List)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.With(middleware.AdminOnly).Delete("/{id}", h.User.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
				r.Get("/", h.Attendance.List)
				r.Get("/open", h.Attendance.GetOpenSession)
				r.Get("/today", h.Shift.Today)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/export", h.Attendance.Export)
				r.Get("/{id}", h.Attendance.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
					r.Post("/checkin", h.Attendance.CheckIn)
					r.Post("/checkout/{id}", h.Attendance.CheckOut)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionShiftViewOwn))
				r.Get("/", h.Shift.List)
				r.Get("/calendar", h.Shift.Calendar)
				r.Get("/today", h.Shift.Today)
				r.Get("/{id}", h.Shift.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", h.Shift.Create)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionProductView))
				r.Get("/", h.Product.List)
				r.Get("/low-stock", h.Product.LowStock)
				r.Get("/{id}", h.Product.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionProductManage))
					r.Post("/", h.Product.Create)
					r.Put("/{id}", h.Product.Update)
					r.Delete("/{id}", h.Product.Delete)
				})
			})

			r.Route("/rentals", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionRentalView))
				r.Get("/", h.Rental.List)
				r.Get("/{id}", h.Rental.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRentalManage))
					r.Post("/", h.Rental.Create)
					r.Put("/{id}", h.Rental.Update)
					r.Delete("/{id}", h.Rental.Delete)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/attendance", h.Report.AttendanceSummary)
				r.With(middleware.RequirePermission(user.PermissionProductManage)).Get("/stock", h.Report.Stock)
			})
		})
	})
	return r
}
