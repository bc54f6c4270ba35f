package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/streamchat-api/internal/container"
	"github.com/oksasatya/streamchat-api/internal/domain/repository"
	handlers "github.com/oksasatya/streamchat-api/internal/interface/http"
	"github.com/oksasatya/streamchat-api/internal/interface/middleware"
	"github.com/oksasatya/streamchat-api/pkg/helpers"
)

// AuthModule wires the identity endpoints.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/profile, POST /api/auth/profile/photo, GET /api/users/search
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with per-IP rate limiting
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/profile", m.Handler.Profile)
		auth.POST("/auth/profile/photo", m.Handler.UploadProfilePhoto)
		auth.GET("/users/search", m.Handler.Search)
	}
}
