// Package main initializes and starts the task tracker server, setting up
// configuration, logging, the database connection, repositories, services
// and HTTP handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/lampochky/tasktracker/internal/auth"
	"github.com/lampochky/tasktracker/internal/config"
	"github.com/lampochky/tasktracker/internal/db"
	"github.com/lampochky/tasktracker/internal/logger"
	"github.com/lampochky/tasktracker/internal/repository"
	"github.com/lampochky/tasktracker/internal/server/handler/http"
	"github.com/lampochky/tasktracker/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("token signing secret is required")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	projectRepo := repository.NewPostgresProjectRepository(postgresDB)
	listRepo := repository.NewPostgresListRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)
	tagRepo := repository.NewPostgresTagRepository(postgresDB)
	messageRepo := repository.NewPostgresMessageRepository(postgresDB)
	membershipRepo := repository.NewPostgresMembershipRepository(postgresDB)

	// Token plumbing shared by login and the request middleware.
	tokens := auth.NewTokenService(options.JWTSecret, options.TokenLifetime)
	resolver := auth.NewCredentialResolver(tokens, userRepo)

	// Initialize business-logic services.
	memberships := service.NewMembershipService(membershipRepo)
	guard := service.NewGuard(memberships)
	authService := service.NewAuthService(userRepo, tokens)
	projectService := service.NewProjectService(projectRepo, userRepo, memberships, guard)
	listService := service.NewListService(listRepo, projectRepo, guard)
	taskService := service.NewTaskService(taskRepo, listRepo, tagRepo, userRepo, guard)
	tagService := service.NewTagService(tagRepo, projectRepo, guard)
	messageService := service.NewMessageService(messageRepo, taskRepo, guard)

	// Build the router with middleware and routes.
	router := http.NewRouter(http.Handlers{
		Auth:    &http.AuthHandler{AuthService: authService},
		Project: &http.ProjectHandler{ProjectService: projectService},
		List:    &http.ListHandler{ListService: listService},
		Task:    &http.TaskHandler{TaskService: taskService},
		Tag:     &http.TagHandler{TagService: tagService},
		Message: &http.MessageHandler{MessageService: messageService},
	}, resolver, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
