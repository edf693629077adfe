package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_PARAMETER", "bad metric")

	assert.Equal(t, "bad metric", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_PARAMETER", err.ErrorCode)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("metric", "unsupported metric")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "metric", detail.Field)
}

func TestUpstreamFetchError(t *testing.T) {
	err := UpstreamFetchError(assert.AnError)

	assert.Equal(t, http.StatusBadGateway, err.StatusCode)
	assert.Equal(t, "UPSTREAM_FETCH_FAILED", err.ErrorCode)
	assert.Equal(t, assert.AnError.Error(), err.Details)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrDataNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "DATA_NOT_FOUND", resp.Error.ErrorCode)
}

func TestProblemDetailsMarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Resource Not Found", "no snapshot", "/api/analytics/summary").
		WithExtension("trace_id", "abc-123")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeNotFound, decoded["type"])
	assert.Equal(t, float64(http.StatusNotFound), decoded["status"])
	assert.Equal(t, "abc-123", decoded["trace_id"])
}
