// Package router assembles the HTTP routes.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "resume_backend/internal/feature/auth/transport/handler"
	resumehandler "resume_backend/internal/feature/resume/transport/handler"
	platformhandler "resume_backend/internal/platform/http/handler"
	jwtmw "resume_backend/internal/platform/jwt"
)

// NewRouter wires the handlers. ready lists the dependencies checked by /readyz.
func NewRouter(authHandler *authhandler.AuthHandler, resumeHandler *resumehandler.ResumeHandler,
	jwtSecret string, ready map[string]platformhandler.Pinger) *gin.Engine {
	r := gin.Default()

	// The front end is a browser app served from another origin.
	r.Use(cors.New(corsConfig()))

	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/readyz", platformhandler.Ready(ready))

	authRequired := jwtmw.AuthRequired(jwtSecret)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/verify-email", authHandler.VerifyEmail)
		auth.POST("/resend-verification", authHandler.ResendVerification)
		auth.POST("/check-user-status", authHandler.CheckUserStatus)
		auth.GET("/profile", authRequired, authHandler.Profile)
	}

	r.POST("/minedata", authRequired, resumeHandler.Upload)

	resumes := r.Group("/api/resumes")
	resumes.Use(authRequired)
	{
		resumes.GET("", resumeHandler.List)
		resumes.GET("/:id", resumeHandler.Get)
		resumes.DELETE("/:id", resumeHandler.Delete)
	}

	return r
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AddAllowHeaders("Authorization")
	return cfg
}
