package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/barriolink/community-events-backend/config"
	"github.com/barriolink/community-events-backend/utils"
)

const identityKey = "identity"

// Identity carries the verified claims of the caller. Only the UID is
// guaranteed; email and display name depend on the provider account.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// TokenVerifier validates a bearer credential and yields the caller's claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier picks the Firebase verifier when credentials were loaded,
// otherwise the HS256 verifier backed by AUTH_JWT_SECRET (local/dev/tests).
func NewVerifier(cfg *config.Config) (TokenVerifier, error) {
	if utils.IsFirebaseAuthEnabled() {
		return &firebaseVerifier{client: utils.GetAuthClient()}, nil
	}
	if cfg.AuthJWTSecret != "" {
		return NewJWTVerifier(cfg.AuthJWTSecret), nil
	}
	return nil, errors.New("no token verifier available: configure Firebase credentials or AUTH_JWT_SECRET")
}

// ===========================
// 🔥 Firebase ID token verifier
type firebaseVerifier struct {
	client *fbauth.Client
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	ident := &Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		ident.DisplayName = name
	}
	return ident, nil
}

// ===========================
// 🔑 HS256 verifier for local development and tests
type jwtVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(_ context.Context, tokenStr string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return nil, errors.New("uid missing in token")
	}

	ident := &Identity{UID: uid}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		ident.DisplayName = name
	}
	return ident, nil
}

// ===========================
// 🛡 AuthMiddleware verifies the Authorization header and stores the caller's
// identity in the request context. It never touches the database; mapping the
// identity to a local user row belongs to the services.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, *ident)
		c.Next()
	}
}

// IdentityFromContext retrieves the verified identity set by AuthMiddleware.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	raw, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := raw.(Identity)
	return ident, ok
}
