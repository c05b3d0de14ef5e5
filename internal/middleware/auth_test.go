package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	require.NoError(t, redis.Init(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = redis.Close() })

	pkg.SetSecrets("test-access", "test-refresh")

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func login(t *testing.T, userID uint64) string {
	t.Helper()
	pair, err := pkg.GeneratePair(userID)
	require.NoError(t, err)
	repo := &redis.UserRepository{}
	require.NoError(t, repo.AddUserToken(userID, pair.AccessToken))
	return pair.AccessToken
}

func TestAuthMiddlewareAllowsActiveSession(t *testing.T) {
	r := newAuthRouter(t)
	token := login(t, 7)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r := newAuthRouter(t)
	token := login(t, 7)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	r := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsDisplacedSession(t *testing.T) {
	r := newAuthRouter(t)
	oldToken := login(t, 7)
	// 新登录覆盖 redis 里的会话，旧 token 作废
	repo := &redis.UserRepository{}
	require.NoError(t, repo.AddUserToken(7, "newer-session-token"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+oldToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
