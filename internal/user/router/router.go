// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leaguehq/league-service/internal/auth"
	"github.com/leaguehq/league-service/internal/user/handler"
	"github.com/leaguehq/league-service/internal/user/repository"
	"github.com/leaguehq/league-service/internal/user/service"
)

// RegisterRoutes registers user module routes and returns the service so
// other modules can resolve emails through it.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, manager *auth.Manager, logger *zap.SugaredLogger) service.Service {
	svc := service.New(repository.New(db), manager, logger)
	h := handler.New(svc, logger)

	users := r.Group("/users")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)
	users.GET("/check-email/:email", auth.Middleware(manager), h.CheckEmail)

	return svc
}
