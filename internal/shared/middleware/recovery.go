package middleware

import (
	"net/http"

	"newsapi-backend/internal/shared/apperror"
	"newsapi-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("error", err).
					Msg("Panic recovered")

				response.ErrorResponse(c, http.StatusInternalServerError, apperror.CodeInternal, "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
