package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"issue-tracker-api/internal/middleware"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// authAs simulates the auth middleware by injecting an identity
func authAs(userID uuid.UUID, email, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Set(middleware.ContextUserEmailKey, email)
		c.Set(middleware.ContextUserNameKey, name)
		c.Next()
	}
}
