package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status and error envelope.
// Storage and empty-source failures surface the underlying message; the
// driver text carries nothing sensitive. Anything unrecognized gets a
// generic 500.
func MapDomainError(err error) (int, *dto.ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsValidation(err):
		resp := dto.NewErrorResponse(dto.ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsEmptyLoad(err):
		return http.StatusInternalServerError, dto.NewErrorResponse(
			dto.ErrorCodeEmptySource,
			err.Error(),
		)

	case domain.IsUnavailable(err):
		return http.StatusInternalServerError, dto.NewErrorResponse(
			dto.ErrorCodeStorage,
			err.Error(),
		)

	default:
		return http.StatusInternalServerError, dto.NewErrorResponse(
			dto.ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// RespondWithError maps err to the error envelope and writes it, tagging the
// response with the active trace ID when one exists. Internal errors are
// logged with the full message since the envelope hides it.
func RespondWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	if errResp.Error.Code == dto.ErrorCodeInternal {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}
