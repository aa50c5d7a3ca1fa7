package middleware

import (
	"github.com/gin-gonic/gin"

	"knkadmin/internal/ui/locale"
)

const localeKey = "locale"

// Locale picks the display locale from Accept-Language, falling back to fallback.
func Locale(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		preferred := c.GetHeader("Accept-Language")
		if preferred == "" {
			preferred = fallback
		}
		c.Set(localeKey, locale.New(preferred))
		c.Next()
	}
}

// GetLocale returns the locale chosen for the request.
func GetLocale(c *gin.Context) *locale.Locale {
	if v, ok := c.Get(localeKey); ok {
		if l, ok := v.(*locale.Locale); ok {
			return l
		}
	}
	return locale.Default()
}
