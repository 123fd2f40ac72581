package routes

import (
	"net/http"

	"github.com/zhihungchen/FittedIn/internal/app"
	"github.com/zhihungchen/FittedIn/internal/handler"
	"github.com/zhihungchen/FittedIn/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.UserService)
	profile := handler.NewProfileHandler(app.ProfileService)
	goal := handler.NewGoalHandler(app.GoalService)
	connection := handler.NewConnectionHandler(app.ConnectionService)
	post := handler.NewPostHandler(app.PostService, app.FeedService)
	activity := handler.NewActivityHandler(app.ActivityService)
	notification := handler.NewNotificationHandler(app.NotificationService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /api/health", health.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// Users
	mux.HandleFunc("GET /api/users/me", middleware.RequireAuth(user.Me))
	mux.HandleFunc("PATCH /api/users/me", middleware.RequireAuth(user.UpdateMe))
	mux.HandleFunc("POST /api/users/me/avatar", middleware.RequireAuth(user.UploadAvatar))
	mux.HandleFunc("GET /api/users/{id}", middleware.RequireAuth(user.ByID))

	// Profiles
	mux.HandleFunc("GET /api/profiles/me", middleware.RequireAuth(profile.Me))
	mux.HandleFunc("PUT /api/profiles/me", middleware.RequireAuth(profile.UpdateMe))
	mux.HandleFunc("GET /api/profiles/{userId}", middleware.RequireAuth(profile.ByUserID))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.ByID))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("PATCH /api/goals/{id}/progress", middleware.RequireAuth(goal.Progress))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Connections
	mux.HandleFunc("POST /api/connections", middleware.RequireAuth(connection.SendRequest))
	mux.HandleFunc("GET /api/connections", middleware.RequireAuth(connection.List))
	mux.HandleFunc("GET /api/connections/pending", middleware.RequireAuth(connection.Pending))
	mux.HandleFunc("POST /api/connections/{id}/accept", middleware.RequireAuth(connection.Accept))
	mux.HandleFunc("POST /api/connections/{id}/reject", middleware.RequireAuth(connection.Reject))
	mux.HandleFunc("POST /api/connections/{id}/block", middleware.RequireAuth(connection.Block))
	mux.HandleFunc("DELETE /api/connections/{id}", middleware.RequireAuth(connection.Remove))

	// Posts & feed
	mux.HandleFunc("GET /api/posts/feed", middleware.RequireAuth(post.Feed))
	mux.HandleFunc("GET /api/posts/user/{userId}", middleware.RequireAuth(post.UserPosts))
	mux.HandleFunc("POST /api/posts", middleware.RequireAuth(post.Create))
	mux.HandleFunc("PUT /api/posts/{id}", middleware.RequireAuth(post.Update))
	mux.HandleFunc("DELETE /api/posts/{id}", middleware.RequireAuth(post.Delete))
	mux.HandleFunc("POST /api/posts/{id}/like", middleware.RequireAuth(post.Like))
	mux.HandleFunc("DELETE /api/posts/{id}/like", middleware.RequireAuth(post.Unlike))
	mux.HandleFunc("POST /api/posts/{id}/comments", middleware.RequireAuth(post.Comment))
	mux.HandleFunc("GET /api/posts/{id}/comments", middleware.RequireAuth(post.Comments))
	mux.HandleFunc("DELETE /api/comments/{id}", middleware.RequireAuth(post.DeleteComment))

	// Activities
	mux.HandleFunc("GET /api/activities", middleware.RequireAuth(activity.List))

	// Notifications
	mux.HandleFunc("GET /api/notifications", middleware.RequireAuth(notification.List))
	mux.HandleFunc("GET /api/notifications/unread-count", middleware.RequireAuth(notification.UnreadCount))
	mux.HandleFunc("PATCH /api/notifications/read-all", middleware.RequireAuth(notification.MarkAllRead))
	mux.HandleFunc("PATCH /api/notifications/{id}/read", middleware.RequireAuth(notification.MarkRead))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
