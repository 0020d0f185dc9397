package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/campdir/campdir/internal/logging"
	"github.com/campdir/campdir/internal/ratelimit"
)

// NewRouter assembles the gin engine: request logging everywhere, rate
// limiting on the public credential endpoints, token verification on the
// authenticated ones.
func NewRouter(h *Handler, limiter *ratelimit.Limiter, logger logging.Logger, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(logger))

	engine.GET("/healthz", h.Healthz)

	api := engine.Group("/api/v1/auth")

	public := api.Group("", RateLimit(limiter))
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	public.POST("/forgot-password", h.ForgotPassword)
	public.PUT("/reset-password/:resettoken", h.ResetPassword)

	private := api.Group("", h.RequireAuth())
	private.GET("/me", h.Me)
	private.GET("/logout", h.Logout)
	private.PUT("/updatedetails", h.UpdateDetails)
	private.PUT("/updatepassword", h.UpdatePassword)

	return engine
}
