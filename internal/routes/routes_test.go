package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhihungchen/FittedIn/internal/app"
	"github.com/zhihungchen/FittedIn/internal/config"
	"github.com/zhihungchen/FittedIn/internal/db"
	"github.com/zhihungchen/FittedIn/internal/repository"
	"github.com/zhihungchen/FittedIn/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
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

	emailService := service.NewEmailService("", "noreply@test.local", "http://localhost:8090", "FittedIn", true)
	activityService := service.NewActivityService(activityRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	authService := service.NewAuthService(userRepo, profileRepo, emailService, "test-secret", time.Hour)

	a := &app.App{
		Cfg:                 &config.Config{AppEnv: "development"},
		DB:                  database,
		AuthService:         authService,
		UserService:         service.NewUserService(userRepo, nil),
		ProfileService:      service.NewProfileService(profileRepo, connectionRepo, activityService),
		EmailService:        emailService,
		GoalService:         service.NewGoalService(goalRepo, activityService),
		ConnectionService:   service.NewConnectionService(connectionRepo, userRepo, notificationService, activityService),
		PostService:         service.NewPostService(postRepo, engagementRepo, userRepo, notificationService),
		FeedService:         service.NewFeedService(postRepo, engagementRepo, connectionRepo, userRepo),
		ActivityService:     activityService,
		NotificationService: notificationService,
	}

	srv := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func registerUser(t *testing.T, srv *httptest.Server, name string) (string, string) {
	t.Helper()

	status, payload := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":        fmt.Sprintf("%s@test.local", name),
		"password":     "correct-horse-battery",
		"display_name": name,
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, payload["success"])

	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	user, _ := payload["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(string)
	require.NotEmpty(t, id)
	return token, id
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, payload := doJSON(t, srv, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "ok", payload["status"])
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	token, userID := registerUser(t, srv, "alice")

	// The credential hash never appears in responses.
	status, payload := doJSON(t, srv, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	user := payload["user"].(map[string]any)
	assert.Equal(t, userID, user["id"])
	assert.Equal(t, "alice@test.local", user["email"])
	_, hasHash := user["password_hash"]
	assert.False(t, hasHash)

	// Missing and malformed tokens are unauthorized.
	status, payload = doJSON(t, srv, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, payload["success"])

	status, _ = doJSON(t, srv, http.MethodGet, "/api/users/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Login with wrong password.
	status, payload = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@test.local",
		"password": "wrong-password-123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "invalid email or password", payload["message"])
}

func TestGoalEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token, _ := registerUser(t, srv, "alice")

	status, payload := doJSON(t, srv, http.MethodPost, "/api/goals", token, map[string]any{
		"title":        "Run 100 km",
		"category":     "cardio",
		"target_value": 100,
		"unit":         "km",
	})
	require.Equal(t, http.StatusCreated, status)
	goal := payload["goal"].(map[string]any)
	goalID := goal["id"].(string)
	assert.Equal(t, "active", goal["status"])

	status, payload = doJSON(t, srv, http.MethodPatch, "/api/goals/"+goalID+"/progress", token, map[string]any{
		"current_value": 100,
	})
	require.Equal(t, http.StatusOK, status)
	goal = payload["goal"].(map[string]any)
	assert.Equal(t, "completed", goal["status"])

	// Validation errors map to 400 with a message.
	status, payload = doJSON(t, srv, http.MethodPost, "/api/goals", token, map[string]any{
		"category":     "cardio",
		"target_value": 100,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "title is required", payload["message"])

	status, _ = doJSON(t, srv, http.MethodGet, "/api/goals/does-not-exist", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestConnectionAndFeedEndpoints(t *testing.T) {
	srv := newTestServer(t)
	aliceToken, _ := registerUser(t, srv, "alice")
	bobToken, bobID := registerUser(t, srv, "bob")

	status, payload := doJSON(t, srv, http.MethodPost, "/api/connections", aliceToken, map[string]any{
		"receiver_id": bobID,
	})
	require.Equal(t, http.StatusCreated, status)
	conn := payload["connection"].(map[string]any)
	connID := conn["id"].(string)

	// Duplicate request conflicts.
	status, _ = doJSON(t, srv, http.MethodPost, "/api/connections", aliceToken, map[string]any{
		"receiver_id": bobID,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, srv, http.MethodPost, "/api/connections/"+connID+"/accept", bobToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, payload = doJSON(t, srv, http.MethodPost, "/api/posts", bobToken, map[string]any{
		"content": "first ride",
	})
	require.Equal(t, http.StatusCreated, status)
	post := payload["post"].(map[string]any)
	postID := post["id"].(string)

	status, _ = doJSON(t, srv, http.MethodPost, "/api/posts/"+postID+"/like", aliceToken, nil)
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, srv, http.MethodPost, "/api/posts/"+postID+"/like", aliceToken, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, payload = doJSON(t, srv, http.MethodGet, "/api/posts/feed", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	posts := payload["posts"].([]any)
	require.Len(t, posts, 1)
	feedPost := posts[0].(map[string]any)
	assert.Equal(t, true, feedPost["is_liked"])
	assert.Equal(t, float64(1), feedPost["like_count"])

	// Bob was notified about the request and the like.
	status, payload = doJSON(t, srv, http.MethodGet, "/api/notifications/unread-count", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), payload["count"])
}
