package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quicklink-go/internal/apperrors"
	"quicklink-go/internal/i18n"
	"quicklink-go/response"
)

// GlobalErrorMiddleware 把 c.Errors 中的错误转换为 JSON 响应
// 5xx 只返回通用信息，原因写日志
func GlobalErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			appErr = apperrors.StoreErrorDefault(err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", appErr.Code),
				zap.Error(err),
			)
		}

		message := i18n.T(c.Request.Context(), appErr.Message, nil)
		c.AbortWithStatusJSON(appErr.Code, response.Error(message))
	}
}
