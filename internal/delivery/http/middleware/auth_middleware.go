package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the HS256 bearer token issued by the identity
// provider and stores the caller's identity on the context. Tokens can
// arrive in the Authorization header or the auth_token cookie.
// With devBypass on, unauthenticated requests get a simulated RH identity;
// the flag must never be set in production.
func AuthMiddleware(jwtSecret string, devBypass bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" && devBypass {
			c.Set(string(domain.KeyUserID), "dev-user")
			c.Set(string(domain.KeyUserEmail), "dev@talentmatch.local")
			c.Set(string(domain.KeyUserRole), "rh")
			c.Next()
			return
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			if jwtSecret == "" {
				return nil, fmt.Errorf("JWT_SECRET is not configured")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Set(string(domain.KeyUserID), sub)
		}
		if email, _ := claims["email"].(string); email != "" {
			c.Set(string(domain.KeyUserEmail), email)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Set(string(domain.KeyUserRole), role)
		}

		c.Next()
	}
}
