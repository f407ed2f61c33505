package errors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewParsingError("failed to parse accounts csv", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "PARSING")
	assert.Contains(t, err.Error(), "boom")
}

func TestDatasetTooLargeError(t *testing.T) {
	err := DatasetTooLargeError("accounts", 300001, 250000)

	assert.Equal(t, http.StatusRequestEntityTooLarge, err.StatusCode)
	assert.Equal(t, "DATASET_TOO_LARGE", err.ErrorCode)
	assert.Contains(t, err.Message, "accounts")
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	handler := NewErrorHandler(slog.Default(), false)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "api error maps status and type",
			err:        MissingDatasetError("jotform"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeDatasetMissing,
		},
		{
			name:       "app parsing error is a 400",
			err:        NewParsingError("bad csv", nil),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "context deadline is a timeout",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unknown error is opaque 500",
			err:        fmt.Errorf("surprise"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)
			problem := handler.ErrorToProblem(tt.err, r)

			require.NotNil(t, problem)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/analysis", problem.Instance)
		})
	}
}

func TestErrorHandler_HandleError(t *testing.T) {
	handler := NewErrorHandler(slog.Default(), false)

	r := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, r, MalformedDatasetError("financial", fmt.Errorf("bad quoting")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), TypeDatasetMalformed)
	assert.Contains(t, rec.Body.String(), "financial")
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "broken", "/x")
	problem.WithExtension("trace_id", "abc")

	data, err := problem.MarshalJSON()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"trace_id":"abc"`)
	assert.Contains(t, string(data), `"status":400`)
}
