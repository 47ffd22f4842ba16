package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pastrieswithlove/bakery-api/auth"
)

// SetupAuthRoutes registers the identity endpoints.
func SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuest())
	}
}
