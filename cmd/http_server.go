package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/inventory-management/internal"
	"github.com/frahmantamala/inventory-management/internal/auth"
	authPostgres "github.com/frahmantamala/inventory-management/internal/auth/postgres"
	"github.com/frahmantamala/inventory-management/internal/catalog"
	catalogPostgres "github.com/frahmantamala/inventory-management/internal/catalog/postgres"
	"github.com/frahmantamala/inventory-management/internal/group"
	groupPostgres "github.com/frahmantamala/inventory-management/internal/group/postgres"
	"github.com/frahmantamala/inventory-management/internal/item"
	itemPostgres "github.com/frahmantamala/inventory-management/internal/item/postgres"
	"github.com/frahmantamala/inventory-management/internal/request"
	requestPostgres "github.com/frahmantamala/inventory-management/internal/request/postgres"
	"github.com/frahmantamala/inventory-management/internal/transport/rest"
	"github.com/frahmantamala/inventory-management/internal/user"
	userPostgres "github.com/frahmantamala/inventory-management/internal/user/postgres"
	"github.com/frahmantamala/inventory-management/pkg/logger"
	"github.com/frahmantamala/inventory-management/pkg/storage"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	gdb := deps.GormDB
	lg := deps.Logger

	// Auth
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(gdb)
	authService := auth.NewService(authRepo, tokenGen)
	authHandler := auth.NewHandler(authService)
	rbac := auth.NewRBACAuthorization(lg)

	// Users and roles
	userRepo := userPostgres.NewUserRepository(gdb)
	userService := user.NewService(userRepo, cfg.Security.BCryptCost, lg)
	userHandler := user.NewHandler(userService)

	// Items and assignments
	fileStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		return fmt.Errorf("init upload storage: %w", err)
	}
	itemRepo := itemPostgres.NewItemRepository(gdb)
	assignmentRepo := itemPostgres.NewAssignmentRepository(gdb)
	itemService := item.NewService(itemRepo, assignmentRepo, userService, lg)
	itemHandler := item.NewHandler(itemService, fileStore, cfg.Storage.MaxUploadSize)

	// Item requests
	requestRepo := requestPostgres.NewRequestRepository(gdb)
	requestService := request.NewService(requestRepo, lg)
	requestHandler := request.NewHandler(requestService)

	// Groups
	groupRepo := groupPostgres.NewGroupRepository(gdb)
	groupService := group.NewService(groupRepo, itemService, lg)
	groupHandler := group.NewHandler(groupService)

	// Catalog
	categoryRepo := catalogPostgres.NewCategoryRepository(gdb)
	areaRepo := catalogPostgres.NewAreaRepository(gdb)
	catalogService := catalog.NewService(categoryRepo, areaRepo, lg)
	catalogHandler := catalog.NewHandler(catalogService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:    authHandler,
		User:    userHandler,
		Item:    itemHandler,
		Request: requestHandler,
		Group:   groupHandler,
		Catalog: catalogHandler,
	}, rbac, lg)

	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	router := chi.NewRouter()

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		GormDB: gdb,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
