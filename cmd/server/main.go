package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"staffpanel/internal/config"
	"staffpanel/internal/database"
	"staffpanel/internal/handler"
	"staffpanel/internal/middleware"
	"staffpanel/internal/repository"
	"staffpanel/internal/seed"
	"staffpanel/internal/session"
	"staffpanel/internal/view"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	users := repository.NewUserRepository(db)
	departments := repository.NewDepartmentRepository(db)
	employees := repository.NewEmployeeRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := seed.Run(ctx, cfg, users, departments, employees, logger); err != nil {
		return err
	}

	views, err := view.New()
	if err != nil {
		return err
	}

	sessions := session.NewManager(cfg.SessionSecret, logger)
	defer sessions.Close()

	rsp := handler.NewResponder(views, sessions, logger)
	authHandler := handler.NewAuthHandler(users, sessions, rsp, logger)
	departmentHandler := handler.NewDepartmentHandler(departments, sessions, rsp)
	employeeHandler := handler.NewEmployeeHandler(employees, departments, sessions, rsp)
	dashboardHandler := handler.NewDashboardHandler(departments, employees, sessions, rsp)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handler.Root(sessions))
	mux.HandleFunc("GET /auth/login", authHandler.LoginPage)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /dashboard", dashboardHandler.Index)

	mux.HandleFunc("GET /departments", departmentHandler.Index)
	mux.HandleFunc("GET /departments/create", departmentHandler.CreateForm)
	mux.HandleFunc("POST /departments", departmentHandler.Create)
	mux.HandleFunc("GET /departments/{id}", departmentHandler.Show)
	mux.HandleFunc("GET /departments/{id}/edit", departmentHandler.EditForm)
	mux.HandleFunc("PUT /departments/{id}", departmentHandler.Update)
	mux.HandleFunc("DELETE /departments/{id}", departmentHandler.Delete)

	mux.HandleFunc("GET /employees", employeeHandler.Index)
	mux.HandleFunc("GET /employees/create", employeeHandler.CreateForm)
	mux.HandleFunc("POST /employees", employeeHandler.Create)
	mux.HandleFunc("GET /employees/{id}", employeeHandler.Show)
	mux.HandleFunc("GET /employees/{id}/edit", employeeHandler.EditForm)
	mux.HandleFunc("PUT /employees/{id}", employeeHandler.Update)
	mux.HandleFunc("DELETE /employees/{id}", employeeHandler.Delete)

	var root http.Handler = mux
	root = middleware.RequireAuth(sessions)(root)
	root = middleware.Negotiate(root)
	root = middleware.MethodOverride(root)
	root = middleware.Logging(logger)(root)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("port", cfg.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("server stopped")
	return nil
}
