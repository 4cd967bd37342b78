package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchandising_backend/internal/models"
	"merchandising_backend/pkg/utils"
)

func testRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", AuthMiddleware())
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("/whoami", func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	token, err := utils.GenerateAccessToken(42, "merch@example.com", models.RoleMerchandiser, nil)
	require.NoError(t, err)
	r := testRouter()

	t.Run("valid token", func(t *testing.T) {
		w := doRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doRequest(r, "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleAuthMiddleware(t *testing.T) {
	merchToken, err := utils.GenerateAccessToken(42, "merch@example.com", models.RoleMerchandiser, nil)
	require.NoError(t, err)
	clientID := int64(7)
	clientToken, err := utils.GenerateAccessToken(50, "client@example.com", models.RoleClient, &clientID)
	require.NoError(t, err)

	r := testRouter(models.RoleMerchandiser, models.RoleSuperviseur)

	t.Run("allowed role", func(t *testing.T) {
		w := doRequest(r, "Bearer "+merchToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		w := doRequest(r, "Bearer "+clientToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
