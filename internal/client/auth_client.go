package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"issue-tracker-api/internal/metrics"
	"issue-tracker-api/internal/middleware"
)

// AuthServiceValidator validates tokens against the auth service, with a
// local JWT fallback when the auth service is unreachable
type AuthServiceValidator struct {
	authServiceURL string
	secretKey      string
	httpClient     *http.Client
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewAuthServiceValidator creates a validator backed by the auth service
func NewAuthServiceValidator(authServiceURL, secretKey string, m *metrics.Metrics, logger *zap.Logger) *AuthServiceValidator {
	return &AuthServiceValidator{
		authServiceURL: authServiceURL,
		secretKey:      secretKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		metrics: m,
		logger:  logger,
	}
}

// ValidateToken validates a token, preferring the auth service so revoked
// tokens are rejected
func (v *AuthServiceValidator) ValidateToken(ctx context.Context, tokenString string) (*middleware.Identity, error) {
	if v.authServiceURL != "" {
		identity, err := v.validateWithAuthService(ctx, tokenString)
		if err == nil {
			return identity, nil
		}
		v.logger.Debug("Auth service validation failed, falling back to local", zap.Error(err))
	}

	return v.validateLocally(tokenString)
}

func (v *AuthServiceValidator) validateWithAuthService(ctx context.Context, token string) (*middleware.Identity, error) {
	url := v.authServiceURL + "/api/auth/validate"

	reqBody, _ := json.Marshal(map[string]string{"token": token})
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := v.httpClient.Do(req)
	if v.metrics != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		v.metrics.RecordExternalAPICall("/api/auth/validate", http.MethodPost, status, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, jwt.ErrTokenInvalidClaims
	}

	var result struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(result.UserID)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		UserID: userID,
		Email:  result.Email,
		Name:   result.Name,
	}, nil
}

func (v *AuthServiceValidator) validateLocally(tokenString string) (*middleware.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(v.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	var userIDStr string
	for _, key := range []string{"sub", "userId", "user_id"} {
		if val, exists := claims[key]; exists {
			if s, ok := val.(string); ok {
				userIDStr = s
				break
			}
		}
	}
	if userIDStr == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return &middleware.Identity{
		UserID: userID,
		Email:  email,
		Name:   name,
	}, nil
}
