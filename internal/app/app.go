package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/zhihungchen/FittedIn/internal/config"
	"github.com/zhihungchen/FittedIn/internal/db"
	"github.com/zhihungchen/FittedIn/internal/repository"
	"github.com/zhihungchen/FittedIn/internal/service"
	"github.com/zhihungchen/FittedIn/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	UserService         *service.UserService
	ProfileService      *service.ProfileService
	EmailService        *service.EmailService
	GoalService         *service.GoalService
	ConnectionService   *service.ConnectionService
	PostService         *service.PostService
	FeedService         *service.FeedService
	ActivityService     *service.ActivityService
	NotificationService *service.NotificationService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	connectionRepository := repository.NewConnectionRepository(database)
	postRepository := repository.NewPostRepository(database)
	engagementRepository := repository.NewEngagementRepository(database)
	activityRepository := repository.NewActivityRepository(database)
	notificationRepository := repository.NewNotificationRepository(database)

	// Storage (optional in development, avatar uploads disabled without it)
	var fileStorage storage.Storage
	if cfg.S3Bucket != "" {
		fileStorage, err = storage.New(storage.Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Endpoint:      cfg.S3Endpoint,
			PresignExpiry: cfg.S3PresignExpiry,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %v", err)
		}
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	activityService := service.NewActivityService(activityRepository)
	notificationService := service.NewNotificationService(notificationRepository)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository, fileStorage)
	profileService := service.NewProfileService(profileRepository, connectionRepository, activityService)
	goalService := service.NewGoalService(goalRepository, activityService)
	connectionService := service.NewConnectionService(connectionRepository, userRepository, notificationService, activityService)
	postService := service.NewPostService(postRepository, engagementRepository, userRepository, notificationService)
	feedService := service.NewFeedService(postRepository, engagementRepository, connectionRepository, userRepository)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		ProfileService:      profileService,
		EmailService:        emailService,
		GoalService:         goalService,
		ConnectionService:   connectionService,
		PostService:         postService,
		FeedService:         feedService,
		ActivityService:     activityService,
		NotificationService: notificationService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
