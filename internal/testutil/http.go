package testutil

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms3pl/backend/internal/interfaces/http/dto"
)

// DecodeResponse parses the response envelope
func DecodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

// DecodeData parses the envelope and decodes its data into T
func DecodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	require.True(t, envelope.Success, rec.Body.String())

	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

// AssertErrorResponse checks the status and error code of a failed request
func AssertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, rec.Body.String())
	resp := DecodeResponse(t, rec)
	assert.False(t, resp.Success)
	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, code, resp.Error.Code)
	}
}
