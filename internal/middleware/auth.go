package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"issue-tracker-api/internal/domain"
	"issue-tracker-api/internal/response"
)

// Context keys set by the auth middlewares
const (
	ContextUserIDKey    = "user_id"
	ContextUserEmailKey = "user_email"
	ContextUserNameKey  = "user_name"
	ContextTokenKey     = "jwtToken"
)

// Identity is an authenticated caller as reported by the identity provider
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// TokenValidator validates tokens against the auth service
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (*Identity, error)
}

// AuthWithValidator returns a middleware that validates bearer tokens via
// the auth service, so revoked tokens are properly rejected
func AuthWithValidator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		identity, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		setIdentity(c, identity, tokenString)
		c.Next()
	}
}

// Auth returns a middleware that validates JWT tokens locally. It cannot
// see auth-service revocations; prefer AuthWithValidator when the auth
// service is reachable.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c, "Invalid subject claim")
			return
		}

		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		setIdentity(c, &Identity{UserID: userID, Email: email, Name: name}, tokenString)
		c.Next()
	}
}

// CurrentUser assembles the authenticated user from the request context
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	rawID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return nil, false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return nil, false
	}

	user := &domain.User{ID: userID}
	if email, exists := c.Get(ContextUserEmailKey); exists {
		user.Email, _ = email.(string)
	}
	if name, exists := c.Get(ContextUserNameKey); exists {
		user.Name, _ = name.(string)
	}
	return user, true
}

func setIdentity(c *gin.Context, identity *Identity, tokenString string) {
	c.Set(ContextUserIDKey, identity.UserID)
	c.Set(ContextUserEmailKey, identity.Email)
	c.Set(ContextUserNameKey, identity.Name)
	c.Set(ContextTokenKey, tokenString)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "Authorization header is required")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		abortUnauthorized(c, "Invalid authorization header format")
		return "", false
	}

	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
		Success: false,
		Error: response.ErrorPayload{
			Code:    response.ErrCodeUnauthorized,
			Message: message,
		},
	})
}
