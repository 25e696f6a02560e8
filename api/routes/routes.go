package routes

import (
	"time"

	"usherhub/api/handler"
	"usherhub/api/middleware"
	"usherhub/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Admin          *handler.AdminHandler
	Events         *handler.EventHandler
	Requests       *handler.RequestHandler
	Ushers         *handler.UsherHandler
	AuthMiddleware middleware.AuthMiddleware
	RegisterRate   *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	admin *handler.AdminHandler,
	events *handler.EventHandler,
	requests *handler.RequestHandler,
	ushers *handler.UsherHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Admin:          admin,
		Events:         events,
		Requests:       requests,
		Ushers:         ushers,
		AuthMiddleware: authMiddleware,
		RegisterRate:   middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	requireAuth := r.AuthMiddleware.RequireAuth
	requireAdmin := middleware.RequireRole(entity.UserRoleAdmin)
	requireUsher := middleware.RequireRole(entity.UserRoleUsher)

	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/register", r.Auth.Register, r.RegisterRate.Middleware())
	e.GET("/auth/me", r.Auth.Me, requireAuth)
	e.POST("/auth/logout", r.Auth.Logout, requireAuth)
	e.PUT("/auth/profile", r.Auth.UpdateProfile, requireAuth)

	admin := e.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/dashboard", r.Admin.Dashboard)
	admin.POST("/codes/generate", r.Admin.GenerateCode)
	admin.GET("/codes", r.Admin.ListCodes)
	admin.DELETE("/codes/:id", r.Admin.DeleteCode)
	admin.GET("/ushers", r.Admin.ListUshers)
	admin.PUT("/ushers/:id", r.Admin.UpdateUsher)
	admin.DELETE("/ushers/:id", r.Admin.DeactivateUsher)
	admin.DELETE("/ushers/:id/purge", r.Admin.PurgeUsher)
	admin.PATCH("/ushers/:id/visibility", r.Admin.SetVisibility)
	admin.PATCH("/ushers/:id/reject-picture", r.Admin.RejectProfilePicture)

	e.GET("/events", r.Events.List)
	e.GET("/events/:id", r.Events.Get)
	e.POST("/events", r.Events.Create, requireAuth)
	e.PUT("/events/:id", r.Events.Update, requireAuth)
	e.DELETE("/events/:id", r.Events.Delete, requireAuth, requireAdmin)

	e.POST("/requests", r.Requests.Create)
	e.GET("/requests", r.Requests.List, requireAuth, requireAdmin)
	e.GET("/requests/:id", r.Requests.Get, requireAuth, requireAdmin)
	e.PUT("/requests/:id", r.Requests.Update, requireAuth, requireAdmin)
	e.DELETE("/requests/:id", r.Requests.Delete, requireAuth, requireAdmin)

	e.GET("/ushers", r.Ushers.List)
	e.GET("/ushers/:id", r.Ushers.Get)
	e.PUT("/ushers/profile", r.Ushers.UpdateProfile, requireAuth, requireUsher)
	e.POST("/ushers/profile/image", r.Ushers.UploadProfileImage, requireAuth, requireUsher)
}
