package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

type capturedIdentity struct {
	Found bool
	ID    uuid.UUID
	Email string
	Name  string
}

func authProbe(auth gin.HandlerFunc) (*gin.Engine, *capturedIdentity) {
	gin.SetMode(gin.TestMode)
	captured := &capturedIdentity{}

	r := gin.New()
	r.GET("/probe", auth, func(c *gin.Context) {
		user, ok := CurrentUser(c)
		captured.Found = ok
		if ok {
			captured.ID = user.ID
			captured.Email = user.Email
			captured.Name = user.Name
		}
		c.Status(http.StatusOK)
	})
	return r, captured
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	tokenString := mintToken(t, testSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "dev@example.com",
		"name":  "dev",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	r, captured := authProbe(Auth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if !captured.Found {
		t.Fatal("CurrentUser() not found after valid token")
	}
	if captured.ID != userID || captured.Email != "dev@example.com" || captured.Name != "dev" {
		t.Errorf("identity = %s/%s/%s, want claims values", captured.ID, captured.Email, captured.Name)
	}
}

func TestAuth_RejectsBadTokens(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
	}{
		{
			name:   "missing header",
			header: "",
		},
		{
			name:   "not a bearer token",
			header: "Basic dXNlcjpwYXNz",
		},
		{
			name:   "garbage token",
			header: "Bearer not.a.token",
		},
		{
			name: "wrong signing key",
			header: "Bearer " + mintToken(t, "other-secret", jwt.MapClaims{
				"sub": userID.String(),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired token",
			header: "Bearer " + mintToken(t, testSecret, jwt.MapClaims{
				"sub": userID.String(),
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			name: "subject is not a uuid",
			header: "Bearer " + mintToken(t, testSecret, jwt.MapClaims{
				"sub": "not-a-uuid",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := authProbe(Auth(testSecret))

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

// stubValidator is a TokenValidator backed by a function
type stubValidator struct {
	fn func(ctx context.Context, tokenStr string) (*Identity, error)
}

func (s *stubValidator) ValidateToken(ctx context.Context, tokenStr string) (*Identity, error) {
	return s.fn(ctx, tokenStr)
}

func TestAuthWithValidator(t *testing.T) {
	userID := uuid.New()

	t.Run("accepted token sets the identity", func(t *testing.T) {
		validator := &stubValidator{fn: func(ctx context.Context, tokenStr string) (*Identity, error) {
			if tokenStr != "opaque-token" {
				t.Errorf("validator got token %q, want opaque-token", tokenStr)
			}
			return &Identity{UserID: userID, Email: "dev@example.com", Name: "dev"}, nil
		}}

		r, captured := authProbe(AuthWithValidator(validator))

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer opaque-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if !captured.Found || captured.ID != userID {
			t.Errorf("identity = %v/%s, want %s", captured.Found, captured.ID, userID)
		}
	})

	t.Run("rejected token aborts with 401", func(t *testing.T) {
		validator := &stubValidator{fn: func(ctx context.Context, tokenStr string) (*Identity, error) {
			return nil, errors.New("revoked")
		}}

		r, _ := authProbe(AuthWithValidator(validator))

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer revoked-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestCurrentUser_MissingContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := CurrentUser(c); ok {
		t.Error("CurrentUser() = ok on empty context, want false")
	}
}
