package httpapi

import (
	"context"
	"errors"
	"mime"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "club-backoffice"
)

const messageRefreshFailed = "Saved, but the list could not be refreshed."

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string   `json:"domain"`
	Reason  string   `json:"reason"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	Message    string
	Fields     []string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: mapped.Message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: mapped.Message,
					Fields:  mapped.Fields,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// mapError picks the status for err. Form and validation rejections carry
// the message the screen shows instead of the wrapped chain.
func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var formErr *signup.FormError
	var validationErr *editbuffer.ValidationError

	switch {
	case errors.As(err, &formErr):
		if formErr.Message == signup.MessageSubmitFailed {
			return mappedError{
				HTTPStatus: http.StatusInternalServerError,
				Reason:     "submitFailed",
				Status:     "INTERNAL",
				Message:    formErr.Message,
			}
		}
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "formRejected",
			Status:     "FAILED_PRECONDITION",
			Message:    formErr.Message,
		}
	case errors.As(err, &validationErr):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "validationFailed",
			Status:     "INVALID_ARGUMENT",
			Message:    validationErr.Message,
			Fields:     validationErr.Fields,
		}
	case errors.Is(err, editbuffer.ErrRefresh):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "refreshFailed",
			Status:     "UNAVAILABLE",
			Message:    messageRefreshFailed,
		}
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, editbuffer.ErrValidation),
		errors.Is(err, editbuffer.ErrConfirmationRequired),
		errors.Is(err, editbuffer.ErrUnsupportedField):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, editbuffer.ErrUnknownRecord):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
			Message:    err.Error(),
		}
	case errors.Is(err, editbuffer.ErrNotEditing),
		errors.Is(err, editbuffer.ErrSaveInProgress),
		errors.Is(err, editbuffer.ErrDraftRecord),
		errors.Is(err, usecase.ErrConflict):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "conflict",
			Status:     "ABORTED",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
			Message:    usecase.MessageNotAdmin,
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
			Message:    err.Error(),
		}
	case errors.Is(err, editbuffer.ErrStore):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Reason:     "storeFailure",
			Status:     "UNAVAILABLE",
			Message:    err.Error(),
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
			Message:    err.Error(),
		}
	}
}

// writeCSV sends body as a file download.
func writeCSV(ctx context.Context, w http.ResponseWriter, filename string, body []byte) {
	_, span := startSpan(ctx, "httpapi.writeCSV")
	defer span.End()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
