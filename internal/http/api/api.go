package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// APIError is returned by handlers and rendered as {"error": Message}.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			if apiErr.Code >= http.StatusInternalServerError {
				log.Error().
					Str("path", ctx.FullPath()).
					Int("status", apiErr.Code).
					Msg(apiErr.Message)
			}
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
