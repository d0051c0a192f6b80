package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers mounted under /api
type Handlers struct {
	Auth   *AuthHandler
	Course *CourseHandler
	Lesson *LessonHandler
}

// RateLimit configures throttling of the credential endpoints
type RateLimit struct {
	Limiter  Limiter
	Requests int
	Window   time.Duration
}

func (r *RateLimit) middleware() []gin.HandlerFunc {
	if r == nil || r.Limiter == nil {
		return nil
	}
	return []gin.HandlerFunc{RateLimitMiddleware(r.Limiter, r.Requests, r.Window, IPBasedKey)}
}

// RegisterRoutes mounts the auth, course and lesson endpoints on api.
// Course and lesson routes require a bearer token.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, requireAuth gin.HandlerFunc, limit *RateLimit) {
	throttle := limit.middleware()

	auth := api.Group("/auth")
	{
		auth.POST("/register", append(throttle, h.Auth.Register)...)
		auth.POST("/login", append(throttle, h.Auth.Login)...)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
	}

	courses := api.Group("/courses", requireAuth)
	{
		courses.GET("/search", h.Course.Search)
		courses.GET("/:id/summary", h.Course.GetSummary)
		courses.POST("", h.Course.Create)
		courses.PUT("/:id", h.Course.Update)
		courses.DELETE("/:id", h.Course.Delete)
		courses.PATCH("/:id/publish", h.Course.Publish)
		courses.PATCH("/:id/unpublish", h.Course.Unpublish)
	}

	lessons := api.Group("/lessons", requireAuth)
	{
		lessons.GET("/course/:courseId", h.Lesson.ListByCourse)
		lessons.POST("/course/:courseId", h.Lesson.Create)
		lessons.POST("/course/:courseId/reorder", h.Lesson.Reorder)
		lessons.PUT("/:id", h.Lesson.Update)
		lessons.DELETE("/:id", h.Lesson.Delete)
	}
}
