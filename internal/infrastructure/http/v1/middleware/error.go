package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	"stockroom/internal/infrastructure/http/v1/dto"
	"stockroom/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Hides internal errors from clients while logging full details.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		writeError(c, log)
	}
}

// writeError renders the last error registered on c, unless a response has
// already been written.
func writeError(c *gin.Context, log *logger.Logger) {
	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	reqLog := log.WithContext(c.Request.Context())

	if appErr, ok := apperror.AsAppError(err); ok {
		if appErr.Err != nil {
			reqLog.Errorw("request error",
				"code", appErr.Code,
				"cause", appErr.Err,
			)
		}

		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	// Unknown error - log and return generic message
	reqLog.Errorw("unhandled error", "error", err)

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    apperror.CodeInternal,
		Message: "Internal server error",
		Details: map[string]any{
			"request_id": c.GetString("request_id"),
		},
	})
}
