package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/meetscribe/errors"
)

// RespondOK sends a 200 response with ok set on the payload.
func RespondOK(c *gin.Context, payload gin.H) {
	respond(c, http.StatusOK, payload)
}

// RespondCreated sends a 201 response with ok set on the payload.
func RespondCreated(c *gin.Context, payload gin.H) {
	respond(c, http.StatusCreated, payload)
}

func respond(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["ok"] = true
	c.JSON(status, payload)
}

// RespondWithError derives the status and structured body from an AppError;
// anything else is reported as a generic 500.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}
