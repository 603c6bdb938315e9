package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newmandigital/catalog/internal/core/domain"
	"github.com/newmandigital/catalog/internal/core/logger"
	"github.com/newmandigital/catalog/internal/core/serviceerrors"
)

type ErrorResponse struct {
	Error string `json:"error" example:"Product not found: 6f1c..."`
	Code  string `json:"code,omitempty" example:"product_not_found"`
}

// HandleError writes err as JSON. Domain and service errors keep their
// message; anything else is reported as an opaque internal error.
func HandleError(c *gin.Context, err error) {
	if kind, ok := domain.KindOf(err); ok {
		c.JSON(mapDomainKindToHTTP(kind), ErrorResponse{Error: err.Error(), Code: kind.String()})
		return
	}

	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		c.JSON(mapKindToHTTP(svcErr.Kind), ErrorResponse{Error: svcErr.Message})
		return
	}

	logger.Error(c.Request.Context(), "unhandled error", err, map[string]any{
		"http.route": c.FullPath(),
	})
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func mapDomainKindToHTTP(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNullArgument, domain.KindInvalidAmount, domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindProductNotFound:
		return http.StatusNotFound
	case domain.KindDuplicateSku:
		return http.StatusConflict
	case domain.KindInsufficientStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindNotFound:
		return http.StatusNotFound
	case serviceerrors.KindConflict:
		return http.StatusConflict
	case serviceerrors.KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case serviceerrors.KindInvalidRequest:
		return http.StatusBadRequest
	case serviceerrors.KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
