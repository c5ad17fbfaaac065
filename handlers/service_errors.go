package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/lucasmendez/rolegate/services"
	"github.com/lucasmendez/rolegate/utils"
)

// HandleServiceError maps domain errors to HTTP responses
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsNotFoundError(err):
		_ = utils.WriteNotFound(w, domainMessage(err))

	case services.IsValidationError(err):
		_ = utils.WriteBadRequest(w, domainMessage(err))

	case services.IsUnauthorizedError(err):
		_ = utils.WriteUnauthorized(w, domainMessage(err))

	case services.IsForbiddenError(err):
		_ = utils.WriteForbidden(w, domainMessage(err))

	case services.IsConflictError(err):
		_ = utils.WriteConflict(w, domainMessage(err))

	case services.IsInternalError(err):
		// Log internal errors but return a generic message
		logger.Error("internal server error", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "An internal error occurred")

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		_ = utils.WriteInternalServerError(w, "An unexpected error occurred")
	}
}

// domainMessage returns the user-facing message of a domain error without
// the type prefix or wrapped cause.
func domainMessage(err error) string {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
