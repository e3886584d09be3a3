package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authsvc "github.com/alejandrorivera22/ecom-cart/internal/service/auth"
)

const claimsKey = "authClaims"

// authRequired validates the bearer token and stores its claims in the
// request context.
func authRequired(auth *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Status:  "UNAUTHORIZED",
				Code:    http.StatusUnauthorized,
				Message: "missing bearer token",
			})
			return
		}
		claims, err := auth.ParseToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Status:  "UNAUTHORIZED",
				Code:    http.StatusUnauthorized,
				Message: "invalid token",
			})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// requireRoles refuses the request unless the token carries at least one
// of the given roles. It must run after authRequired.
func requireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(claimsKey)
		claims, _ := value.(*authsvc.Claims)
		if !ok || claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Status:  "UNAUTHORIZED",
				Code:    http.StatusUnauthorized,
				Message: "missing bearer token",
			})
			return
		}
		for _, have := range claims.Roles {
			for _, want := range roles {
				if have == want {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, errorBody{
			Status:  "FORBIDDEN",
			Code:    http.StatusForbidden,
			Message: "insufficient role",
		})
	}
}
