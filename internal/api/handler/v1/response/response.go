package response

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the wire shape of every error response: an HTTP status plus a
// single human-readable message.
type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error" example:"something went wrong"`

	// internal is the wrapped cause, logged but never rendered.
	internal error
}

func (e *Err) Error() string {
	if e.internal != nil {
		return e.internal.Error()
	}

	return e.Msg
}

func (e *Err) Unwrap() error {
	return e.internal
}

// RenderErr writes the error as JSON and aborts the request. Internal
// errors are logged with their cause; the client only sees the message.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error(err.Error())
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Msg:        err.Error(),
		internal:   err,
	}
}

func ErrUnauthorized(msg string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        msg,
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Msg:        err.Error(),
		internal:   err,
	}
}

func ErrNotFound(msg string) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Msg:        msg,
	}
}

func ErrConflict(msg string) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Msg:        msg,
	}
}

func ErrTooManyRequests(retryAfter int) *Err {
	return &Err{
		StatusCode: http.StatusTooManyRequests,
		Msg:        "too many requests, retry after " + strconv.Itoa(retryAfter) + "s",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        "something went wrong",
		internal:   fmt.Errorf("internal server error -> %w", err),
	}
}
