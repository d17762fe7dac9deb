package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-backend/pkg/jwt"
)

func setupProtectedRouter(t *testing.T, manager *jwt.Manager, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(manager)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r := setupProtectedRouter(t, manager)

	t.Run("valid token passes", func(t *testing.T) {
		token, _, err := manager.GenerateAccessToken(uuid.NewString(), "jean@asso.fr", "membre")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, doRequest(r, token).Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "NotBearer abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token from another secret rejected", func(t *testing.T) {
		other := jwt.NewManager("other-secret", time.Hour)
		token, _, err := other.GenerateAccessToken(uuid.NewString(), "jean@asso.fr", "membre")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, doRequest(r, token).Code)
	})
}

func TestRequireRoles(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r := setupProtectedRouter(t, manager, "admin", "secretaire")

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"secretaire", http.StatusOK},
		{"membre", http.StatusForbidden},
		{"inconnu", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			token, _, err := manager.GenerateAccessToken(uuid.NewString(), "x@asso.fr", tc.role)
			require.NoError(t, err)
			assert.Equal(t, tc.want, doRequest(r, token).Code)
		})
	}
}
