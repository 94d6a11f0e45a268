package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendVerification_EmailsCodeWithoutReturningIt(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON(t, "/api/auth/send-verification", map[string]any{"email": "new@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case to := <-env.sender.emails:
		assert.Equal(t, "new@example.com", to)
	case <-time.After(time.Second):
		t.Fatal("no verification email was dispatched")
	}
	code := <-env.sender.codes
	require.Len(t, code, 6)

	// The code must never appear in the HTTP response.
	assert.NotContains(t, w.Body.String(), code)
}

func TestSendVerification_RejectsBadEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON(t, "/api/auth/send-verification", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyCode_ConsumesOnSuccess(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.postJSON(t, "/api/auth/send-verification", map[string]any{"email": "v@example.com"}).Code)
	code := <-env.sender.codes

	w := env.postJSON(t, "/api/auth/verify-code", map[string]any{"email": "v@example.com", "code": code})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email verified successfully", decodeBody(t, w)["message"])

	// Replaying the consumed code fails.
	w = env.postJSON(t, "/api/auth/verify-code", map[string]any{"email": "v@example.com", "code": code})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyCode_ResendInvalidatesOldCode(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.postJSON(t, "/api/auth/send-verification", map[string]any{"email": "r@example.com"}).Code)
	oldCode := <-env.sender.codes

	require.Equal(t, http.StatusOK, env.postJSON(t, "/api/auth/send-verification", map[string]any{"email": "r@example.com"}).Code)
	newCode := <-env.sender.codes

	if oldCode != newCode {
		w := env.postJSON(t, "/api/auth/verify-code", map[string]any{"email": "r@example.com", "code": oldCode})
		assert.Equal(t, http.StatusBadRequest, w.Code, "replaced code must no longer verify")
	}

	w := env.postJSON(t, "/api/auth/verify-code", map[string]any{"email": "r@example.com", "code": newCode})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyCode_WrongCode(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.postJSON(t, "/api/auth/send-verification", map[string]any{"email": "w@example.com"}).Code)
	code := <-env.sender.codes

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	w := env.postJSON(t, "/api/auth/verify-code", map[string]any{"email": "w@example.com", "code": wrong})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid code", decodeBody(t, w)["error"])

	// Never-issued email looks like an expired code.
	w = env.postJSON(t, "/api/auth/verify-code", map[string]any{"email": "nobody@example.com", "code": "123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
