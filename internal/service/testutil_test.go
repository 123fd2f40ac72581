package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/zhihungchen/FittedIn/internal/db"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
)

// testEnv wires the full service graph on an in-memory database.
type testEnv struct {
	db            *sqlx.DB
	auth          *AuthService
	users         *UserService
	profiles      *ProfileService
	goals         *GoalService
	connections   *ConnectionService
	posts         *PostService
	feed          *FeedService
	activities    *ActivityService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	// In-memory sqlite is per-connection, so the pool must stay at one.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	connectionRepo := repository.NewConnectionRepository(database)
	postRepo := repository.NewPostRepository(database)
	engagementRepo := repository.NewEngagementRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	emailService := NewEmailService("", "noreply@test.local", "http://localhost:8090", "FittedIn", true)
	activityService := NewActivityService(activityRepo)
	notificationService := NewNotificationService(notificationRepo)

	return &testEnv{
		db:            database,
		auth:          NewAuthService(userRepo, profileRepo, emailService, "test-secret", time.Hour),
		users:         NewUserService(userRepo, nil),
		profiles:      NewProfileService(profileRepo, connectionRepo, activityService),
		goals:         NewGoalService(goalRepo, activityService),
		connections:   NewConnectionService(connectionRepo, userRepo, notificationService, activityService),
		posts:         NewPostService(postRepo, engagementRepo, userRepo, notificationService),
		feed:          NewFeedService(postRepo, engagementRepo, connectionRepo, userRepo),
		activities:    activityService,
		notifications: notificationService,
	}
}

const testPassword = "correct-horse-battery"

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()

	user, err := e.auth.Register(fmt.Sprintf("%s@test.local", name), testPassword, name)
	require.NoError(t, err)
	return user
}

// connect establishes an accepted connection between two users.
func (e *testEnv) connect(t *testing.T, a, b *model.User) *model.Connection {
	t.Helper()

	conn, err := e.connections.SendRequest(a.ID, b.ID)
	require.NoError(t, err)
	conn, err = e.connections.Accept(conn.ID, b.ID)
	require.NoError(t, err)
	return conn
}

func strPtr(s string) *string         { return &s }
func floatPtr(f float64) *float64     { return &f }
func intPtr(n int) *int               { return &n }
func boolPtr(b bool) *bool            { return &b }
func timePtr(ts time.Time) *time.Time { return &ts }
