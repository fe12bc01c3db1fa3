package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/middleware"
	"github.com/peakplay/coaching-api/internal/models"
	"github.com/peakplay/coaching-api/internal/service"
	"github.com/peakplay/coaching-api/pkg/logger"
	"github.com/peakplay/coaching-api/pkg/middleware/cors"
	"github.com/peakplay/coaching-api/pkg/middleware/requestid"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	AuthService    *service.AuthService
	Auth           *AuthHandler
	Availability   *AvailabilityHandler
	Bookings       *BookingHandler
	Submissions    *SubmissionHandler
	Payments       *PaymentHandler
	FriendCodes    *FriendCodeHandler
	Blog           *BlogHandler
	Contact        *ContactHandler
	Discord        *DiscordHandler
	SEO            *SEOHandler
	Observability  *MetricsHandler
	RateCounter    middleware.RateCounter
	APIPrefix      string
	AllowedOrigins []string
	ContactLimit   int64
	ContactWindow  time.Duration
}

// NewRouter builds the gin engine with the full route table.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(cors.New(deps.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	// Root-level files and probes sit outside the API prefix.
	r.GET("/sitemap.xml", deps.SEO.Sitemap)
	r.GET("/robots.txt", deps.SEO.Robots)
	r.GET("/health", deps.Observability.Health)
	r.GET("/ready", deps.Observability.Ready)
	r.GET("/metrics", deps.Observability.Prometheus)

	api := r.Group(deps.APIPrefix)

	api.GET("/availability/slots", deps.Availability.ListSlots)

	api.POST("/bookings", deps.Bookings.Create)

	api.POST("/submissions", deps.Submissions.Create)

	api.GET("/payments/catalog", deps.Payments.Catalog)
	api.POST("/payments/checkout", deps.Payments.CreateCheckout)
	api.GET("/payments/session/:session_id", deps.Payments.GetBySession)
	api.GET("/payments/success", deps.Payments.Success)
	api.GET("/payments/cancel", deps.Payments.Cancel)

	api.POST("/friend-codes/validate", deps.FriendCodes.Validate)
	api.POST("/friend-codes/redeem", deps.FriendCodes.Redeem)

	api.GET("/blog", deps.Blog.ListPublished)
	api.GET("/blog/:slug", deps.Blog.GetBySlug)

	api.POST("/contact",
		middleware.RateLimit(deps.RateCounter, "contact", deps.ContactLimit, deps.ContactWindow, deps.Logger),
		deps.Contact.Send)

	api.GET("/discord/authorize", deps.Discord.Authorize)
	api.GET("/discord/callback", deps.Discord.Callback)

	admin := api.Group("/admin")
	admin.POST("/auth/login", deps.Auth.Login)
	admin.POST("/auth/refresh", deps.Auth.Refresh)

	guarded := admin.Group("")
	guarded.Use(middleware.JWT(deps.AuthService))
	guarded.Use(middleware.RequireRoles(models.RoleOwner, models.RoleCoach))

	guarded.POST("/auth/logout", deps.Auth.Logout)
	guarded.POST("/auth/change-password", deps.Auth.ChangePassword)
	guarded.GET("/auth/me", deps.Auth.Me)

	guarded.GET("/bookings", deps.Bookings.List)
	guarded.GET("/bookings/export", deps.Bookings.Export)
	guarded.GET("/bookings/:id", deps.Bookings.Get)
	guarded.PATCH("/bookings/:id", deps.Bookings.Update)

	guarded.GET("/submissions", deps.Submissions.List)
	guarded.GET("/submissions/export", deps.Submissions.Export)
	guarded.GET("/submissions/:id", deps.Submissions.Get)
	guarded.PATCH("/submissions/:id", deps.Submissions.Update)
	guarded.POST("/submissions/:id/archive", deps.Submissions.Archive)

	guarded.POST("/availability/slots", deps.Availability.CreateSlot)
	guarded.PATCH("/availability/slots/:id", deps.Availability.UpdateSlot)
	guarded.DELETE("/availability/slots/:id", deps.Availability.DeleteSlot)
	guarded.GET("/availability/exceptions", deps.Availability.ListExceptions)
	guarded.POST("/availability/exceptions", deps.Availability.CreateException)
	guarded.DELETE("/availability/exceptions/:id", deps.Availability.DeleteException)

	guarded.GET("/friend-codes", deps.FriendCodes.List)
	guarded.POST("/friend-codes", deps.FriendCodes.Create)
	guarded.PATCH("/friend-codes/:id", deps.FriendCodes.Update)
	guarded.DELETE("/friend-codes/:id", deps.FriendCodes.Delete)

	guarded.GET("/blog", deps.Blog.List)
	guarded.POST("/blog", deps.Blog.Create)
	guarded.GET("/blog/:id", deps.Blog.Get)
	guarded.PATCH("/blog/:id", deps.Blog.Update)
	guarded.DELETE("/blog/:id", deps.Blog.Delete)

	guarded.POST("/notifications/test", deps.Contact.TestNotification)

	return r
}
