package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "forgebase.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppError supplies the status and the
// machine-readable tag; anything else collapses to a 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if e, ok := err.(*domainerrors.AppError); ok {
		appErr = e
	} else {
		appErr = domainerrors.InternalError(err)
	}
	c.JSON(appErr.Status, appErr)
}

// AbortError sends an error response and stops the handler chain
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
