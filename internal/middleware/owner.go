package middleware

import "github.com/gin-gonic/gin"

const ownerIDKey = "ownerID"

// OwnerResolver returns a Gin middleware that scopes each request to an
// owner. The owner is taken from the X-Owner-ID header, falling back to
// defaultOwner for single-user deployments. There is no authentication;
// the owner ID is an opaque scoping key.
func OwnerResolver(defaultOwner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader("X-Owner-ID")
		if owner == "" {
			owner = defaultOwner
		}
		c.Set(ownerIDKey, owner)
		c.Next()
	}
}
