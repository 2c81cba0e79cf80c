package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
)

// HeaderContentLanguage reports the language messages were rendered in.
const HeaderContentLanguage = "Content-Language"

// Locale returns middleware that negotiates the response language from
// Accept-Language and stores the localizer in the request context.
// Unsupported or missing preferences get the catalog default.
func Locale(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := catalog.Match(c.GetHeader("Accept-Language"))

		ctx := i18n.WithLocalizer(c.Request.Context(), catalog.Localizer(tag.String()))
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderContentLanguage, tag.String())

		c.Next()
	}
}
