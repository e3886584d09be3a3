package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	authsvc "github.com/alejandrorivera22/ecom-cart/internal/service/auth"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors onto HTTP responses. Lookups of missing
// ids answer 400, matching what API clients already expect.
func writeError(c *gin.Context, err error) {
	var (
		nf  *domain.NotFoundError
		ne  *domain.NotEnabledError
		ia  *domain.InvalidArgumentError
		it  *domain.InvalidTransitionError
		ins *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &ne):
		c.JSON(http.StatusForbidden, errorBody{Status: "FORBIDDEN", Code: http.StatusForbidden, Message: err.Error()})
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorBody{Status: "UNAUTHORIZED", Code: http.StatusUnauthorized, Message: err.Error()})
	case errors.As(err, &nf), errors.As(err, &ia), errors.As(err, &it), errors.As(err, &ins):
		badRequest(c, err.Error())
	default:
		c.JSON(http.StatusInternalServerError, errorBody{
			Status:  "INTERNAL_SERVER_ERROR",
			Code:    http.StatusInternalServerError,
			Message: "unexpected error",
		})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorBody{Status: "BAD_REQUEST", Code: http.StatusBadRequest, Message: message})
}

// pageBody builds the pagination envelope for list endpoints.
func pageBody(content any, page, size int, total int64) gin.H {
	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}
	return gin.H{
		"content":       content,
		"page":          page,
		"size":          size,
		"totalElements": total,
		"totalPages":    totalPages,
	}
}
