package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavideLicci/MindGarden/internal/model"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{model.Validationf("text is required"), http.StatusBadRequest},
		{fmt.Errorf("login: %w", model.ErrUnauthorized), http.StatusUnauthorized},
		{model.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("plant p1: %w", model.ErrNotFound), http.StatusNotFound},
		{model.ErrConflict, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		FromError(rr, tc.err)
		require.Equal(t, tc.status, rr.Code, tc.err.Error())

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, tc.status, body.Code)
		assert.Equal(t, http.StatusText(tc.status), body.Error)
		if tc.status == http.StatusInternalServerError {
			assert.NotContains(t, body.Message, "disk")
		}
	}
}

func TestWriteErrorCode(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteErrorCode(rr, http.StatusBadRequest, "MESSAGE_TOO_LONG", "too long")

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Bad Request","code":400,"message":"too long","errorCode":"MESSAGE_TOO_LONG"}`, rr.Body.String())
}
