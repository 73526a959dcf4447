package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/api/shared/errors"
	"github.com/feral-file/ff-minter/internal/logger"
)

func respond(c *gin.Context, status int, apiErr *errors.APIError) {
	c.JSON(status, errors.ErrorResponse{Error: apiErr})
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respond(c, http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	respond(c, http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	respond(c, http.StatusUnprocessableEntity, errors.NewValidationError(message))
}

// respondUnauthorized responds when the route was reached without an authenticated caller
func respondUnauthorized(c *gin.Context) {
	respond(c, http.StatusUnauthorized, errors.NewUnauthorizedError("Authentication required"))
}

// respondDatabaseError responds with a database error and logs the cause
func respondDatabaseError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	respond(c, http.StatusInternalServerError, errors.NewDatabaseError(message))
}

// respondContractError maps an error returned by the contract to its API error.
// Errors that are not part of the contract vocabulary are logged.
func respondContractError(c *gin.Context, err error) {
	status, apiErr := errors.FromDomainError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	}
	respond(c, status, apiErr)
}
