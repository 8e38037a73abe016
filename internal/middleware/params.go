package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
)

// RequireUUIDParam rejects requests whose path parameter is not a UUID
func RequireUUIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param(name)); err != nil {
			apierrors.BadRequest(c, fmt.Sprintf("Invalid %s: must be a UUID", name))
			c.Abort()
			return
		}
		c.Next()
	}
}
