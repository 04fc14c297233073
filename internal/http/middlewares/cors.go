package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware admits the configured browser origins. Preflights from
// unlisted origins are rejected outright instead of being waved through
// with an empty 204.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))

	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")

		// same-origin or non-browser traffic carries no Origin header
		if origin == "" {
			ctx.Next()
			return
		}

		if _, ok := allowed[origin]; !ok {
			if ctx.Request.Method == http.MethodOptions {
				ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"status":  false,
					"message": "Origin not allowed",
				})
				return
			}

			// plain requests proceed without CORS headers; the browser
			// withholds the response from the page
			ctx.Next()
			return
		}

		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Authorization,Content-Type")
		ctx.Header("Access-Control-Max-Age", "300")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
