package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/willykudo/pionix/internal/config"
	appHTTP "github.com/willykudo/pionix/internal/handler/http"
	"github.com/willykudo/pionix/internal/pkg/cache"
	"github.com/willykudo/pionix/internal/pkg/cron"
	"github.com/willykudo/pionix/internal/pkg/database"
	"github.com/willykudo/pionix/internal/pkg/jwt"
	"github.com/willykudo/pionix/internal/pkg/storage"
	"github.com/willykudo/pionix/internal/repository/postgresql"
	serviceAttendance "github.com/willykudo/pionix/internal/service/attendance"
	serviceAuth "github.com/willykudo/pionix/internal/service/auth"
	"github.com/willykudo/pionix/internal/service/file"
	serviceProduct "github.com/willykudo/pionix/internal/service/product"
	serviceRental "github.com/willykudo/pionix/internal/service/rental"
	serviceReport "github.com/willykudo/pionix/internal/service/report"
	serviceShift "github.com/willykudo/pionix/internal/service/shift"
	serviceUser "github.com/willykudo/pionix/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// run owns every resource it opens; its deferred cleanups complete before main exits.
func run(cfg *config.Config) error {
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	scheduler := cron.NewScheduler()

	var revocations cache.RevocationStore
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		revocations = cache.NewRedisStore(redisClient, "")
	} else {
		memoryStore := cache.NewMemoryStore()
		cron.RegisterPruneJob(scheduler, memoryStore)
		revocations = memoryStore
		slog.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, revocations)
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db, loc)
	productRepo := postgresql.NewProductRepository(db)
	rentalRepo := postgresql.NewRentalRepository(db)

	authService := serviceAuth.NewAuthService(tx, userRepo, JWTService, JWTRepository)
	userService := serviceUser.NewUserService(userRepo, JWTService)
	shiftService := serviceShift.NewShiftService(tx, shiftRepo, userRepo, loc)
	attendanceService := serviceAttendance.NewAttendanceService(tx, attendanceRepo, shiftRepo, fileService, loc)
	productService := serviceProduct.NewProductService(productRepo)
	rentalService := serviceRental.NewRentalService(rentalRepo, fileService, loc)
	reportService := serviceReport.NewReportService(attendanceRepo, productRepo, loc)

	cron.NewAttendanceJobs(attendanceRepo).RegisterJobs(scheduler)
	cron.NewInventoryJobs(productRepo).RegisterJobs(scheduler)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			UploadsDir:     fileStorage.BasePath(),
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authService, cfg.App.Env == "production"),
			User:       appHTTP.NewUserHandler(userService),
			Attendance: appHTTP.NewAttendanceHandler(attendanceService, reportService),
			Shift:      appHTTP.NewShiftHandler(shiftService),
			Product:    appHTTP.NewProductHandler(productService),
			Rental:     appHTTP.NewRentalHandler(rentalService),
			Report:     appHTTP.NewReportHandler(reportService),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
