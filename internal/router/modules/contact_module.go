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

// ContactModule wires the contact-list endpoints under /users/:userId/contacts.
// Every route requires authentication and is scoped to the owner: the
// authenticated user's id must match the path's userId.
type ContactModule struct {
	Handler *handlers.ContactHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewContactModule(h *handlers.ContactHandler, users repository.UserRepository, jwt *helpers.JWTManager) *ContactModule {
	return &ContactModule{Handler: h, Users: users, JWT: jwt}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	contacts := rg.Group("/users/:userId/contacts")
	contacts.Use(
		middleware.Auth(m.Users, m.JWT),
		middleware.RequireOwner("userId"),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		contacts.GET("", m.Handler.List)
		contacts.POST("", m.Handler.Add)
		contacts.DELETE("/:contactId", m.Handler.Delete)
	}
}
