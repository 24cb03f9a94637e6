package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/agenthands/distnode/internal/core/model"
)

const userIDKey = "userID"

// Claims is the access token payload. Tokens are issued elsewhere; this
// service only verifies them.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func (s *Server) parseToken(raw string, opts ...jwt.ParserOption) (*Claims, error) {
	claims := &Claims{}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.Auth.JWTSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user_id")
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid access token cookie: 403 when
// it is missing, 401 when it is expired or invalid.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(s.Auth.CookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"authError": "An access token is required for authentication"})
			return
		}

		claims, err := s.parseToken(raw)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"authError": "Expired access token"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"authError": "Invalid access token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth identifies the caller when it can and otherwise lets the
// request through as anonymous. Expiry is not enforced.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(s.Auth.CookieName); err == nil && raw != "" {
			if claims, err := s.parseToken(raw, jwt.WithoutClaimsValidation()); err == nil {
				c.Set(userIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}

func actor(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func viewer(c *gin.Context) model.Viewer {
	if id := c.GetString(userIDKey); id != "" {
		return model.Authenticated(id)
	}
	return model.Anonymous()
}
