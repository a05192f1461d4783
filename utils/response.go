package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/services"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, success bool, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, true, "success", data)
}

// Created returns a success response for newly created resources.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusCreated, true, "success", data)
}

// Message returns a success response carrying only a message.
func Message(ctx *gin.Context, message string) {
	Respond(ctx, http.StatusOK, true, message, nil)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, message string) {
	Respond(ctx, status, false, message, nil)
}

// Fail maps a service error to its HTTP status and writes the error
// response. This is the only place error kinds meet status codes.
func Fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindUnauthenticated:
		status = http.StatusUnauthorized
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindNotFound:
		status = http.StatusNotFound
	}

	message := "internal server error"
	var se *services.Error
	if errors.As(err, &se) && se.Kind != services.KindInternal {
		message = se.Message
	}
	if status == http.StatusInternalServerError && Sugar != nil {
		Sugar.Errorf("request failed: %v", err)
	}
	Error(ctx, status, message)
}
