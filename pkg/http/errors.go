package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/liftright-data-server/pkg/liftright"
)

const (
	codeValidation    = "validation_error"
	codeNoSuchDevice  = "no_such_device"
	codeUnimplemented = "unimplemented"
	codeSerialization = "serialization_error"
	codeDatabase      = "database_error"
	codeInternal      = "internal_error"
	codeMalformedBody = "malformed_body"
	codeBodyTooLarge  = "body_too_large"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, liftright.ErrValidation):
		return http.StatusBadRequest, codeValidation
	case errors.Is(err, liftright.ErrNoSuchDevice):
		return http.StatusNotFound, codeNoSuchDevice
	case errors.Is(err, liftright.ErrUnimplemented):
		return http.StatusNotImplemented, codeUnimplemented
	case errors.Is(err, liftright.ErrSerialization):
		return http.StatusUnprocessableEntity, codeSerialization
	case errors.Is(err, liftright.ErrDatabase):
		return http.StatusServiceUnavailable, codeDatabase
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// reject turns a gateway error into an HTTP rejection.
func reject(c *gin.Context, err error) {
	status, code := statusFor(err)
	abortWithCode(c, status, code, err)
}

func abortWithCode(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}
