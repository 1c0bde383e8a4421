package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/khullasher1256-hash/Evercart/pkg/errors"
)

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func TestWriteSuccessWrapsDataEnvelope(t *testing.T) {
	resp := httptest.NewRecorder()

	WriteSuccess(resp, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestWriteSuccessStatusUsesProvidedCode(t *testing.T) {
	resp := httptest.NewRecorder()

	WriteSuccessStatus(resp, http.StatusCreated, map[string]string{"id": "123"})

	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestWriteErrorExposesValidationMessageAndDetails(t *testing.T) {
	resp := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
		WithDetails(map[string]any{"field": "quantity"})

	WriteError(context.Background(), nil, resp, err)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	body := decodeBody(t, resp)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(pkgerrors.CodeValidation), errBody["code"])
	assert.Equal(t, "quantity must be positive", errBody["message"])
	details, ok := errBody["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "quantity", details["field"])
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	resp := httptest.NewRecorder()
	err := pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: connection refused"), "loading cart")

	WriteError(context.Background(), nil, resp, err)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	body := decodeBody(t, resp)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(pkgerrors.CodeInternal), errBody["code"])
	assert.NotContains(t, errBody["message"], "connection refused")
	assert.NotContains(t, errBody["message"], "loading cart")
	assert.Nil(t, errBody["details"])
}

func TestWriteErrorWrapsUntypedErrorAsInternal(t *testing.T) {
	resp := httptest.NewRecorder()

	WriteError(context.Background(), nil, resp, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	body := decodeBody(t, resp)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(pkgerrors.CodeInternal), errBody["code"])
}
