package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTVerifierAcceptsValidToken(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"uid":   "uid-001",
		"email": "maria@example.com",
		"name":  "Maria",
	})

	ident, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "uid-001", ident.UID)
	require.Equal(t, "maria@example.com", ident.Email)
	require.Equal(t, "Maria", ident.DisplayName)
}

func TestJWTVerifierRejectsWrongSecret(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	token := signToken(t, "some-other-secret", jwt.MapClaims{"uid": "uid-001"})

	_, err := verifier.Verify(context.Background(), token)
	require.Error(t, err)
}

func TestJWTVerifierRequiresUID(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{"email": "maria@example.com"})

	_, err := verifier.Verify(context.Background(), token)
	require.Error(t, err)
}

func newAuthTestRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(verifier), func(c *gin.Context) {
		ident, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": ident.UID})
	})
	return r
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := newAuthTestRouter(NewJWTVerifier(testSecret))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r := newAuthTestRouter(NewJWTVerifier(testSecret))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewarePassesIdentityDownstream(t *testing.T) {
	r := newAuthTestRouter(NewJWTVerifier(testSecret))

	token := signToken(t, testSecret, jwt.MapClaims{"uid": "uid-001"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "uid-001")
}
