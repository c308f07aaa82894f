package middleware

import (
	"github.com/gin-gonic/gin"
	thirdPartyI18n "github.com/nicksnyder/go-i18n/v2/i18n"

	"quicklink-go/internal/i18n"
)

// I18nMiddleware 按 Accept-Language 选择 Localizer，未匹配时使用 bundle 的默认语言
func I18nMiddleware(bundle *thirdPartyI18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		localizer := thirdPartyI18n.NewLocalizer(bundle, c.GetHeader("Accept-Language"))
		c.Request = c.Request.WithContext(i18n.WithLocalizer(c.Request.Context(), localizer))
		c.Next()
	}
}
