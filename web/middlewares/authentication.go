package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"attendlog.com/attendlog/web/common"
)

const SessionCookie = "attendlog.SessionCookie"

func parseJwt(tokenStr string, jwtSecret []byte) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
}

// Authentication accepts a Bearer token or the session cookie and stores the
// verified claims on the context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = parts[1]
		}

		token, err := parseJwt(tokenStr, jwtSecret)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok && int64(exp) < time.Now().Unix() {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("token expired"))
				return
			}
			c.Set("claims", claims)
		}

		c.Next()
	}
}

// RequireRole gates a route group on the "role" claim set at login.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get("claims")
		if !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		claims, ok := value.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		if got, _ := claims["role"].(string); got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("insufficient role"))
			return
		}
		c.Next()
	}
}
