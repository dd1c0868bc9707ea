package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/internal/interfaces/http/handlers"
	"github.com/turtacn/warrify/internal/interfaces/http/middleware"
)

// Messages returned with 429 per rate limit bucket.
const (
	apiLimitMessage     = "Too many requests. Please slow down."
	authLimitMessage    = "Too many attempts, please try again after 15 minutes."
	invoiceCheckMessage = "Too many checks. Please wait."
)

// RouterConfig aggregates the handlers and middleware the route tree needs.
// Nil handlers leave their routes unregistered.
type RouterConfig struct {
	Mode string

	AuthHandler          *handlers.AuthHandler
	ProductHandler       *handlers.ProductHandler
	NotificationHandler  *handlers.NotificationHandler
	AssistantHandler     *handlers.AssistantHandler
	AccountHandler       *handlers.AccountHandler
	ServiceCenterHandler *handlers.ServiceCenterHandler
	HealthHandler        *handlers.HealthHandler

	AuthMiddleware *middleware.AuthMiddleware
	CORS           middleware.CORSConfig
	Limiter        middleware.Limiter
	RateLimits     config.RateLimitConfig

	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	// MetricsPath mounts the collector on this router when non-empty.
	MetricsPath string

	Logger logging.Logger
}

// NewRouter builds the gin engine serving the whole API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogging(log.Named("http"), middleware.DefaultLoggingConfig()),
		middleware.Metrics(cfg.Metrics),
		middleware.Recovery(log),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORS, log),
	)

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil && cfg.MetricsPath != "" {
		r.GET(cfg.MetricsPath, gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api")
	if cfg.RateLimits.Enabled {
		api.Use(middleware.RateLimit(cfg.Limiter, rule("api", cfg.RateLimits.API, apiLimitMessage), cfg.Metrics))
	}

	registerPublicRoutes(api, cfg)

	private := api.Group("")
	if cfg.AuthMiddleware != nil {
		private.Use(cfg.AuthMiddleware.Handler())
	}
	registerProductRoutes(private, cfg)
	registerNotificationRoutes(private, cfg.NotificationHandler)
	registerAssistantRoutes(private, cfg.AssistantHandler)
	registerAccountRoutes(private, cfg.AccountHandler)

	return r
}

func rule(bucket string, r config.RateRule, message string) middleware.RateRule {
	return middleware.RateRule{Bucket: bucket, Limit: r.Limit, Window: r.Window, Message: message}
}

func limited(cfg RouterConfig, bucket string, r config.RateRule, message string) gin.HandlerFunc {
	if !cfg.RateLimits.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(cfg.Limiter, rule(bucket, r, message), cfg.Metrics)
}

func registerPublicRoutes(api *gin.RouterGroup, cfg RouterConfig) {
	if h := cfg.AuthHandler; h != nil {
		authLimit := limited(cfg, "auth", cfg.RateLimits.Auth, authLimitMessage)
		api.POST("/auth/signup", authLimit, h.Signup)
		api.POST("/auth/login", authLimit, h.Login)
	}
	if h := cfg.ServiceCenterHandler; h != nil {
		api.GET("/service", h.Brands)
		api.GET("/service/:brand", h.Lookup)
	}
	if h := cfg.AccountHandler; h != nil {
		api.GET("/admin/stats", h.Stats)
	}
}

func registerProductRoutes(api *gin.RouterGroup, cfg RouterConfig) {
	h := cfg.ProductHandler
	if h == nil {
		return
	}
	products := api.Group("/products")
	products.GET("", h.List)
	products.POST("", h.Create)
	products.GET("/check-invoice", limited(cfg, "invoice_check", cfg.RateLimits.InvoiceCheck, invoiceCheckMessage), h.CheckInvoice)
	products.GET("/upcoming/expiring", h.UpcomingExpiring)
	products.GET("/:id", h.Get)
	products.PUT("/:id", h.Update)
	products.DELETE("/:id", h.Delete)
	products.GET("/:id/risk-assessment", h.RiskAssessment)

	api.POST("/upload/invoice", h.UploadInvoice)
	api.GET("/invoices/*key", h.Invoice)

	if n := cfg.NotificationHandler; n != nil {
		products.POST("/send-claim-email", n.SendClaim)
	}
}

func registerNotificationRoutes(api *gin.RouterGroup, h *handlers.NotificationHandler) {
	if h == nil {
		return
	}
	api.GET("/notifications", h.List)
	api.POST("/notifications/test", h.SendTest)
}

func registerAssistantRoutes(api *gin.RouterGroup, h *handlers.AssistantHandler) {
	if h == nil {
		return
	}
	api.POST("/assistant", h.Chat)
	api.GET("/ai/insights", h.Insights)
}

func registerAccountRoutes(api *gin.RouterGroup, h *handlers.AccountHandler) {
	if h == nil {
		return
	}
	api.GET("/user/profile", h.Profile)
	api.PUT("/user/profile", h.UpdateProfile)
}
