package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Map converts repo/infra errors into taxonomy errors.
// Keeps the service layer clean by centralizing the conversion.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("record not found")
	case errors.Is(err, context.DeadlineExceeded):
		return Internal("request timed out", err)
	case errors.Is(err, context.Canceled):
		return Internal("request was canceled", err)
	default:
		return Internal("internal error", err)
	}
}

// HTTPStatus maps a taxonomy kind to its response status.
func HTTPStatus(err error) int {
	switch KindOf(Map(err)) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error as a JSON {message} body with the mapped status.
func Respond(c *gin.Context, err error) {
	mapped := Map(err)
	msg := "internal error"
	var e *Error
	if errors.As(mapped, &e) {
		msg = e.Message
	}
	c.AbortWithStatusJSON(HTTPStatus(mapped), gin.H{"message": msg})
}
