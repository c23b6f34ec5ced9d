package http

import (
	stdhttp "net/http"
	"time"

	"asset-approval-backend/internal/adapter/middleware"
	"asset-approval-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Health     *Handler
	Auth       *AuthHandler
	Users      *UserHandler
	Approvals  *ApprovalHandler
	Categories *CategoryHandler
	Assets     *AssetHandler
	Histories  *HistoryHandler
	Uploads    *UploadHandler
	Mail       *MailHandler
}

type RouteOptions struct {
	Tokens middleware.TokenParser
	// Redis enables Idempotency-Key handling on mutating approval routes; nil disables it.
	Redis          redis.Cmdable
	IdempotencyTTL time.Duration
	Metrics        stdhttp.Handler
	// MailPreview exposes /preview-template-email.
	MailPreview bool
}

func Register(e *echo.Echo, h Handlers, o RouteOptions) {
	e.GET("/health", h.Health.Health)
	if o.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(o.Metrics))
	}

	authed := middleware.Auth(o.Tokens)
	gaOnly := middleware.RequireRole(user.RoleGA)
	var idem []echo.MiddlewareFunc
	if o.Redis != nil {
		idem = append(idem, middleware.Idempotency(o.Redis, o.IdempotencyTTL))
	}

	api := e.Group("/api")

	auth := api.Group("/authentication")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh-token", h.Auth.RefreshToken)
	auth.POST("/change-password", h.Auth.ChangePassword, authed)

	users := api.Group("/users", authed)
	users.POST("/register", h.Users.Register, gaOnly)
	users.GET("", h.Users.List)
	users.GET("/profile", h.Users.Profile)
	users.PUT("/update-profile", h.Users.UpdateProfile)
	users.DELETE("/:id", h.Users.Delete, gaOnly)

	ap := api.Group("/approval", authed)
	ap.POST("", h.Approvals.Create, idem...)
	ap.GET("", h.Approvals.List)
	ap.GET("/detail/:id", h.Approvals.Detail)
	ap.GET("/signature-reviewed-position/:id", h.Approvals.ReviewedPosition)
	ap.GET("/get-previous-signature", h.Approvals.PreviousSignature)
	ap.GET("/getApprovers", h.Approvals.Approvers)
	ap.PUT("/update-status/:id", h.Approvals.UpdateStatus, idem...)
	ap.PUT("/update-position/:id", h.Approvals.UpdatePosition, idem...)
	ap.POST("/sign-approval/:id", h.Approvals.Sign, idem...)
	ap.PUT("/:id", h.Approvals.Update, idem...)
	ap.DELETE("/:id", h.Approvals.Delete, idem...)

	cat := api.Group("/category", authed)
	cat.POST("", h.Categories.Create)
	cat.GET("", h.Categories.List)
	cat.GET("/:id", h.Categories.Get)
	cat.PUT("/:id", h.Categories.Update)
	cat.DELETE("/:id", h.Categories.Delete)

	assets := api.Group("/assets", authed)
	assets.POST("", h.Assets.Create)
	assets.GET("", h.Assets.List)
	assets.GET("/:name", h.Assets.ListByName)
	assets.PUT("/:id", h.Assets.Update)
	assets.DELETE("/:id", h.Assets.Delete)

	hist := api.Group("/history", authed)
	hist.POST("", h.Histories.Create)
	hist.GET("", h.Histories.List)
	hist.GET("/:id", h.Histories.Get)

	api.POST("/upload", h.Uploads.Upload, authed)
	api.POST("/send-email/reset-password", h.Mail.ResetPassword, authed, gaOnly)

	if o.MailPreview {
		e.GET("/preview-template-email/:name", h.Mail.Preview)
	}
}
