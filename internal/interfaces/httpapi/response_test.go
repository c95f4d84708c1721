package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_FormRejection(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, &signup.FormError{Message: signup.MessageContact})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || body.Error.Message != signup.MessageContact {
		t.Fatalf("expected form message, got %+v", body.Error)
	}
}

func TestMapError_EditBufferErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{name: "validation", err: &editbuffer.ValidationError{Message: "Name is required.", Fields: []string{"name"}}, status: http.StatusBadRequest, msg: "Name is required."},
		{name: "refresh", err: fmt.Errorf("%w: list failed", editbuffer.ErrRefresh), status: http.StatusServiceUnavailable, msg: messageRefreshFailed},
		{name: "confirmation", err: editbuffer.ErrConfirmationRequired, status: http.StatusBadRequest},
		{name: "unknown record", err: editbuffer.ErrUnknownRecord, status: http.StatusNotFound},
		{name: "not editing", err: editbuffer.ErrNotEditing, status: http.StatusConflict},
		{name: "save in progress", err: editbuffer.ErrSaveInProgress, status: http.StatusConflict},
		{name: "store", err: fmt.Errorf("%w: timeout", editbuffer.ErrStore), status: http.StatusBadGateway},
		{name: "forbidden", err: usecase.ErrForbidden, status: http.StatusForbidden, msg: usecase.MessageNotAdmin},
		{name: "submit failed", err: &signup.FormError{Message: signup.MessageSubmitFailed}, status: http.StatusInternalServerError, msg: signup.MessageSubmitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.status {
				t.Fatalf("status=%d want=%d", got.HTTPStatus, tt.status)
			}
			if tt.msg != "" && got.Message != tt.msg {
				t.Fatalf("message=%q want=%q", got.Message, tt.msg)
			}
		})
	}
}
