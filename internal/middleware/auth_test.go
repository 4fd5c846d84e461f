package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-be/internal/entities"
	"storefront-be/internal/jwt"
)

func newProtectedRouter(jwtService *jwt.JWTService, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(jwtService)}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})

	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router := newProtectedRouter(jwt.NewJWTService("test-secret", time.Hour), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 without a token, got %d", w.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := newProtectedRouter(jwt.NewJWTService("test-secret", time.Hour), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "not-a-real-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for an invalid token, got %d", w.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := jwt.NewJWTService("test-secret", -time.Minute)
	token, err := expired.GenerateToken(1, entities.RoleCustomer)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	router := newProtectedRouter(jwt.NewJWTService("test-secret", time.Hour), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for an expired token, got %d", w.Code)
	}
}

func TestAuthMiddleware_RawAndBearerTokensAccepted(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken(42, entities.RoleCustomer)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	router := newProtectedRouter(jwtService, false)

	// The storefront client sends the raw token; a Bearer prefix also works.
	for _, header := range []string{token, "Bearer " + token} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for header %q, got %d", header, w.Code)
		}
	}
}

func TestRequireAdmin_CustomerDenied(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken(1, entities.RoleCustomer)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	router := newProtectedRouter(jwtService, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a customer on an admin route, got %d", w.Code)
	}
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken(1, entities.RoleAdmin)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	router := newProtectedRouter(jwtService, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for an admin, got %d", w.Code)
	}
}
