package render

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lendvault/core"

	"github.com/stretchr/testify/assert"
)

func TestWrapResponse(t *testing.T) {
	h := WrapResponse(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, H{"id": 1})
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"id":1}}`, rec.Body.String())
}

func TestError(t *testing.T) {
	h := WrapResponse(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Error(w, core.ErrVaultPaused)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"code":100113,"msg":"vault paused"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Error(rec, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":500,"msg":"internal error"}`, rec.Body.String())
}
